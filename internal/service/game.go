package service

import (
	"go.uber.org/zap"

	"werewolf_web/internal/models"
)

// StartGame 開始遊戲：進入第一個夜晚並啟動階段時鐘
func (s *RoomService) StartGame(code string) error {
	err := s.withRoom(code, func(room *models.Room) error {
		if room.Status != models.RoomStatusReady {
			return ErrNotReady
		}

		room.Status = models.RoomStatusPlaying
		room.Round = 1
		room.AppendLog(s.clock.Now(), "遊戲開始")
		s.enterPhase(room, models.PhaseNight)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("game started", zap.String("room", code))
	return nil
}

// SubmitNightAction 記錄玩家的夜晚行動
// 同一位玩家在同一個夜晚重複提交時覆蓋原有目標，不會重複記錄
func (s *RoomService) SubmitNightAction(code, actorID string, kind models.ActionKind, targetID string) error {
	return s.withRoom(code, func(room *models.Room) error {
		if room.Phase != models.PhaseNight {
			return ErrWrongPhase
		}

		actor := room.FindPlayer(actorID)
		if actor == nil {
			return ErrPlayerNotFound
		}
		if !actor.Alive {
			return ErrDeadActor
		}
		if actor.Subrole != kind.SubroleFor() {
			return ErrRoleMismatch
		}
		if room.FindPlayer(targetID) == nil {
			return ErrPlayerNotFound
		}

		// 覆蓋同一位玩家先前的提交，保留原本的提交順序
		for i := range room.PendingActions {
			if room.PendingActions[i].ActorID == actorID {
				room.PendingActions[i].Kind = kind
				room.PendingActions[i].TargetID = targetID
				return nil
			}
		}

		seq := 0
		for i := range room.PendingActions {
			if room.PendingActions[i].Seq >= seq {
				seq = room.PendingActions[i].Seq + 1
			}
		}
		room.PendingActions = append(room.PendingActions, models.NightAction{
			Kind:     kind,
			ActorID:  actorID,
			TargetID: targetID,
			Seq:      seq,
		})
		return nil
	})
}

// SubmitVote 記錄白天的投票，targetID 為空字串表示棄票
func (s *RoomService) SubmitVote(code, voterID, targetID string) error {
	return s.withRoom(code, func(room *models.Room) error {
		if room.Phase != models.PhaseVoting {
			return ErrWrongPhase
		}

		voter := room.FindPlayer(voterID)
		if voter == nil {
			return ErrPlayerNotFound
		}
		if !voter.Alive {
			return ErrDeadVoter
		}
		if room.IsExcluded(voterID) {
			return ErrExcluded
		}
		if targetID != "" && room.FindPlayer(targetID) == nil {
			return ErrPlayerNotFound
		}

		if room.Votes == nil {
			room.Votes = make(map[string]string)
		}
		room.Votes[voterID] = targetID
		return nil
	})
}

// SendChatMessage 在白天討論階段廣播聊天消息，消息不做持久化
func (s *RoomService) SendChatMessage(code, playerID, content string) error {
	mu := s.lockFor(code)
	mu.Lock()
	defer mu.Unlock()

	room, err := s.roomRepo.FindByCode(code)
	if err != nil {
		return ErrRoomNotFound
	}
	if room.Phase != models.PhaseDay {
		return ErrWrongPhase
	}
	player := room.FindPlayer(playerID)
	if player == nil {
		return ErrPlayerNotFound
	}

	if s.wsManager != nil {
		msg := models.NewChatMessage(code, playerID, content)
		s.wsManager.BroadcastToRoom(code, &msg)
	}
	return nil
}
