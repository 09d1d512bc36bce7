package service

import (
	"time"

	"go.uber.org/zap"

	"werewolf_web/internal/models"
)

// Clock 抽象牆上時鐘，測試時注入假時鐘讓階段推進可以被確定性驅動
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// NewRealClock 回傳使用系統時間的時鐘
func NewRealClock() Clock { return realClock{} }

// schedulePhaseTimer 為房間排定一個階段倒數計時器
// 每個房間同一時間最多只有一個計時器，新的排定會取消舊的
func (s *RoomService) schedulePhaseTimer(code string, d time.Duration) {
	s.timersMux.Lock()
	if cancel, ok := s.timers[code]; ok {
		close(cancel)
	}
	cancel := make(chan struct{})
	s.timers[code] = cancel
	s.timersMux.Unlock()

	go func() {
		select {
		case <-s.clock.After(d):
			s.handlePhaseTick(code)
		case <-cancel:
		}
	}()
}

// cancelPhaseTimer 取消房間的計時器，房間刪除或遊戲結束時呼叫
func (s *RoomService) cancelPhaseTimer(code string) {
	s.timersMux.Lock()
	defer s.timersMux.Unlock()

	if cancel, ok := s.timers[code]; ok {
		close(cancel)
		delete(s.timers, code)
	}
}

// handlePhaseTick 處理倒數結束的階段推進
// 與玩家提交的事件競爭同一把房間鎖，保證互不交錯
func (s *RoomService) handlePhaseTick(code string) {
	mu := s.lockFor(code)
	mu.Lock()
	defer mu.Unlock()

	room, err := s.roomRepo.FindByCode(code)
	if err != nil {
		// 房間已被刪除，靜默丟棄這次觸發
		s.logger.Debug("phase tick on missing room", zap.String("room", code))
		return
	}

	if room.Status != models.RoomStatusPlaying {
		return
	}

	s.advancePhase(room)

	if err := s.roomRepo.Update(room); err != nil {
		s.logger.Error("failed to save room after phase tick",
			zap.String("room", code), zap.Error(err))
	}
}

// advancePhase 執行當前階段的退出動作並轉移到下一個階段
func (s *RoomService) advancePhase(room *models.Room) {
	switch room.Phase {
	case models.PhaseNight:
		s.resolveNight(room)
		if s.checkGameEnd(room) {
			return
		}
		s.enterPhase(room, models.PhaseMorning)

	case models.PhaseMorning:
		// 清除早晨專用的顯示狀態
		for i := range room.Players {
			room.Players[i].DiedAtNight = false
		}
		if s.checkGameEnd(room) {
			return
		}
		s.enterPhase(room, models.PhaseDay)

	case models.PhaseDay:
		if s.checkGameEnd(room) {
			return
		}
		s.enterPhase(room, models.PhaseVoting)

	case models.PhaseVoting:
		s.resolveVotes(room)
	}
}

// enterPhase 進入新階段：記錄截止時間並啟動倒數
func (s *RoomService) enterPhase(room *models.Room, phase models.GamePhase) {
	now := s.clock.Now()
	room.Phase = phase
	room.PhaseDeadline = now.Add(s.cfg.PhaseDuration(string(phase)))

	switch phase {
	case models.PhaseNight:
		// 夜晚開始時清空上一晚的行動
		room.PendingActions = nil
		room.AppendLog(now, "夜晚降臨，擁有能力的玩家請行動")
	case models.PhaseMorning:
		s.announceMorning(room)
	case models.PhaseDay:
		room.AppendLog(now, "白天討論開始")
	case models.PhaseVoting:
		// 重置投票，如果是平票重投則保留排除名單
		room.Votes = make(map[string]string)
		if room.Revote != nil {
			room.AppendLog(now, "平票重新投票，平票玩家本輪不能投票")
		} else {
			room.AppendLog(now, "投票階段開始，請選擇要放逐的玩家")
		}
	}

	s.logger.Info("phase transition",
		zap.String("room", room.Code),
		zap.String("phase", string(phase)),
		zap.Int("round", room.Round))
	s.broadcastSystem(room.Code, "階段切換："+string(phase))

	s.schedulePhaseTimer(room.Code, s.cfg.PhaseDuration(string(phase)))
}

// endGame 宣告遊戲結束並永久取消房間的計時器
func (s *RoomService) endGame(room *models.Room, winner, message string) {
	now := s.clock.Now()
	room.Status = models.RoomStatusEnded
	room.Phase = models.PhaseEnded
	room.Winner = &models.GameResult{Winner: winner, Message: message}
	room.AppendLog(now, message)

	s.cancelPhaseTimer(room.Code)
	s.logger.Info("game ended",
		zap.String("room", room.Code),
		zap.String("winner", winner))
	s.broadcastSystem(room.Code, message)
}

// announceMorning 公告昨晚的死亡名單
func (s *RoomService) announceMorning(room *models.Room) {
	now := s.clock.Now()
	dead := make([]string, 0)
	for i := range room.Players {
		if room.Players[i].DiedAtNight {
			dead = append(dead, room.Players[i].Username)
		}
	}
	if len(dead) == 0 {
		room.AppendLog(now, "昨晚是平安夜，沒有人死亡")
		return
	}
	text := "昨晚死亡的玩家："
	for i, name := range dead {
		if i > 0 {
			text += "、"
		}
		text += name
	}
	room.AppendLog(now, text)
}
