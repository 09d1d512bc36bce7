package service

import (
	"werewolf_web/internal/models"
)

// resolveVotes 在投票階段結束時結算票數
// 得票最高的唯一玩家被放逐；平票時重新投票並排除平票玩家投票權；
// 無人得票時直接進入夜晚
func (s *RoomService) resolveVotes(room *models.Room) {
	now := s.clock.Now()

	tally := make(map[string]int)
	for voterID, targetID := range room.Votes {
		if targetID == "" {
			continue // 棄票
		}
		if room.IsExcluded(voterID) {
			continue
		}
		voter := room.FindPlayer(voterID)
		if voter == nil || !voter.Alive {
			continue
		}
		tally[targetID]++
	}

	if len(tally) == 0 {
		room.AppendLog(now, "無人得票，今天沒有玩家被放逐")
		s.nextNight(room)
		return
	}

	best := 0
	for _, count := range tally {
		if count > best {
			best = count
		}
	}
	topTargets := make([]string, 0, 1)
	for id, count := range tally {
		if count == best {
			topTargets = append(topTargets, id)
		}
	}

	if len(topTargets) > 1 {
		s.startRevote(room, topTargets)
		return
	}

	targetID := topTargets[0]
	if targetID == room.WitchHelperID {
		// 女巫助手完全免疫投票放逐
		room.AppendLog(now, "投票的目標受到保護，放逐無效")
		room.Revote = nil
		s.nextNight(room)
		return
	}

	target := room.FindPlayer(targetID)
	if target != nil && target.Alive {
		s.killPlayer(room, target, now, target.Username+" 被投票放逐")
	}

	// 放逐成功，清除重投狀態
	room.Revote = nil

	if s.checkGameEnd(room) {
		return
	}
	s.nextNight(room)
}

// startRevote 平票時重新進入投票階段
// 平票玩家被加入持久的排除名單：不能投票，但仍然可以被投
func (s *RoomService) startRevote(room *models.Room, tied []string) {
	if room.Revote == nil {
		room.Revote = &models.RevoteState{}
	}
	for _, id := range tied {
		if !room.IsExcluded(id) {
			room.Revote.ExcludedVoters = append(room.Revote.ExcludedVoters, id)
		}
	}
	room.Revote.Candidates = tied

	names := ""
	for i, id := range tied {
		if p := room.FindPlayer(id); p != nil {
			if i > 0 {
				names += "、"
			}
			names += p.Username
		}
	}
	room.AppendLog(s.clock.Now(), "平票："+names+"，重新投票")
	s.enterPhase(room, models.PhaseVoting)
}

// nextNight 進入下一個夜晚並累加回合數
func (s *RoomService) nextNight(room *models.Room) {
	room.Revote = nil
	room.Round++
	s.enterPhase(room, models.PhaseNight)
}
