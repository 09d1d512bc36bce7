package service

import (
	"werewolf_web/internal/models"
)

// factionCounts 是各人數對應的陣營組成
// 每個陣營隨人數單調不減、總和等於人數、狼人和中立至少一人，
// 且沒有任何陣營能在分配當下就達到勝利條件
type factionCounts struct {
	innocent int
	neutral  int
	werewolf int
}

var factionTable = map[int]factionCounts{
	5:  {innocent: 3, neutral: 1, werewolf: 1},
	6:  {innocent: 3, neutral: 2, werewolf: 1},
	7:  {innocent: 4, neutral: 2, werewolf: 1},
	8:  {innocent: 4, neutral: 2, werewolf: 2},
	9:  {innocent: 5, neutral: 2, werewolf: 2},
	10: {innocent: 5, neutral: 3, werewolf: 2},
}

// AssignRoles 為房間內的玩家分配陣營和角色，整場遊戲只執行一次
func (s *RoomService) AssignRoles(code string) error {
	return s.withRoom(code, func(room *models.Room) error {
		switch room.Status {
		case models.RoomStatusWaiting:
			// 允許分配
		case models.RoomStatusReady:
			return ErrRoomNotReady
		default:
			return ErrAlreadyStarted
		}

		if len(room.Players) < models.MinPlayers || len(room.Players) > models.MaxPlayers {
			return ErrInvalidPlayerCount
		}
		counts := factionTable[len(room.Players)]

		// 整體洗牌一次，之後按照區段切分陣營，
		// 讓每位玩家獲得任一角色的機率相等
		order := make([]int, len(room.Players))
		for i := range order {
			order[i] = i
		}
		s.rngMu.Lock()
		s.rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		singleNeutralBandit := s.rng.Intn(2) == 0
		s.rngMu.Unlock()

		innocents := order[:counts.innocent]
		neutrals := order[counts.innocent : counts.innocent+counts.neutral]
		werewolves := order[counts.innocent+counts.neutral:]

		for rank, idx := range innocents {
			p := &room.Players[idx]
			p.Faction = models.FactionInnocent
			switch rank {
			case 0:
				p.Subrole = models.SubroleGuard
			case 1:
				p.Subrole = models.SubroleHunter
			case 2:
				p.Subrole = models.SubroleSeer
				p.SeerUses = s.cfg.SeerUses
			default:
				p.Subrole = models.SubroleVillager
			}
		}

		for rank, idx := range neutrals {
			p := &room.Players[idx]
			p.Faction = models.FactionNeutral
			if len(neutrals) == 1 {
				// 只有一位中立玩家時，在強盜和女巫之間均勻抽選
				if singleNeutralBandit {
					p.Subrole = models.SubroleBandit
					p.BanditMarks = s.cfg.BanditMarks
				} else {
					p.Subrole = models.SubroleWitch
				}
				continue
			}
			switch rank {
			case 1:
				p.Subrole = models.SubroleWitch
			default:
				// 第一位和溢出的中立玩家都是強盜
				p.Subrole = models.SubroleBandit
				p.BanditMarks = s.cfg.BanditMarks
			}
		}

		for _, idx := range werewolves {
			p := &room.Players[idx]
			p.Faction = models.FactionWerewolf
			p.Subrole = models.SubroleWerewolf
		}

		room.Status = models.RoomStatusReady
		room.AppendLog(s.clock.Now(), "角色分配完成，等待房主開始遊戲")
		return nil
	})
}
