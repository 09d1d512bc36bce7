package service

import (
	"strconv"

	"werewolf_web/internal/models"
)

// checkGameEnd 檢查勝利條件，遊戲結束時回傳 true
// 判定順序固定：強盜和女巫的個人勝利必須先於陣營勝利檢查，
// 只有第一個符合的條件會生效
func (s *RoomService) checkGameEnd(room *models.Room) bool {
	if room.Status != models.RoomStatusPlaying {
		return room.Status == models.RoomStatusEnded
	}

	// 一、存活的強盜達到擊殺門檻，個人獲勝
	for i := range room.Players {
		p := &room.Players[i]
		if p.Alive && p.Subrole == models.SubroleBandit && p.BanditKills >= s.cfg.BanditWinKills {
			s.endGame(room, p.Username,
				p.Username+"（強盜）獲勝！成功擊殺 "+strconv.Itoa(s.cfg.BanditWinKills)+" 名目標")
			return true
		}
	}

	// 二、存活的女巫身邊只剩下自己的助手，個人獲勝
	if room.WitchHelperID != "" {
		var witch *models.Player
		othersAlive := 0
		helperAlive := false
		for i := range room.Players {
			p := &room.Players[i]
			if !p.Alive {
				continue
			}
			switch {
			case p.Subrole == models.SubroleWitch:
				witch = p
			case p.ID == room.WitchHelperID:
				helperAlive = true
			default:
				othersAlive++
			}
		}
		if witch != nil && helperAlive && othersAlive == 0 {
			s.endGame(room, witch.Username,
				witch.Username+"（女巫）獲勝！和助手一起支配了村莊")
			return true
		}
	}

	werewolves := room.AliveCount(models.FactionWerewolf)
	innocents := room.AliveCount(models.FactionInnocent)

	// 三、狼人數量達到好人數量，狼人陣營獲勝
	if werewolves >= innocents && werewolves >= 1 {
		s.endGame(room, string(models.FactionWerewolf), "狼人獲勝！村莊已被狼人支配")
		return true
	}

	// 四、狼人全滅，好人陣營獲勝
	if werewolves == 0 {
		s.endGame(room, string(models.FactionInnocent), "好人獲勝！所有狼人都被消滅了")
		return true
	}

	return false
}
