package service

import (
	"time"

	"werewolf_web/internal/models"
)

// resolveNight 在夜晚結束時執行一次夜晚行動的結算
// 八個步驟的順序固定不可調換，因為前面的步驟會讓後面的步驟失效：
//  1. 守衛保護  2. 強盜標記  3. 狼人擊殺  4. 獵人射擊
//  5. 預言家占卜  6. 女巫復活  7. 標記發動  8. 強盜標記耗盡
// 結算完畢後清空所有待處理的行動
func (s *RoomService) resolveNight(room *models.Room) {
	now := s.clock.Now()
	actions := room.PendingActions

	// 重置昨晚死亡標記
	for i := range room.Players {
		room.Players[i].DiedAtNight = false
	}

	// 步驟一：收集存活守衛的保護目標
	protected := make(map[string]bool)
	for _, a := range actions {
		if a.Kind != models.ActionProtect {
			continue
		}
		actor := room.FindPlayer(a.ActorID)
		if actor == nil || !actor.Alive || actor.Subrole != models.SubroleGuard {
			continue
		}
		protected[a.TargetID] = true
	}

	// 步驟二：強盜標記，記錄每位被標記玩家對應的強盜
	markedBy := make(map[string]string)
	for _, a := range actions {
		if a.Kind != models.ActionMark {
			continue
		}
		actor := room.FindPlayer(a.ActorID)
		if actor == nil || !actor.Alive || actor.Subrole != models.SubroleBandit {
			continue
		}
		if actor.BanditMarks > 0 {
			actor.BanditMarks--
		}
		markedBy[a.TargetID] = a.ActorID
	}

	// 步驟三：狼人擊殺
	// 多位狼人提交時取最多狼選擇的目標，平票取最早提交的
	s.resolveWerewolfKill(room, actions, protected, now)

	// usedAbility 記錄本晚實際使用過觸發型能力的玩家（射擊、占卜、復活）
	// 狼人擊殺、守衛保護和強盜標記都不會觸發標記
	usedAbility := make(map[string]bool)

	// 步驟四：獵人射擊
	for _, a := range actions {
		if a.Kind != models.ActionShoot {
			continue
		}
		actor := room.FindPlayer(a.ActorID)
		if actor == nil || !actor.Alive || actor.Subrole != models.SubroleHunter {
			continue
		}
		usedAbility[a.ActorID] = true

		target := room.FindPlayer(a.TargetID)
		if target == nil || !target.Alive || protected[a.TargetID] {
			continue
		}
		// 誤傷懲罰以射擊當下目標的陣營判定
		friendlyFire := target.Faction == models.FactionInnocent
		s.killPlayer(room, target, now, target.Username+" 昨晚被射殺")
		if friendlyFire && actor.Alive {
			s.killPlayer(room, actor, now, actor.Username+" 因誤傷好人而死")
		}
	}

	// 步驟五：預言家占卜，結果只讓本人看到
	for _, a := range actions {
		if a.Kind != models.ActionRead {
			continue
		}
		actor := room.FindPlayer(a.ActorID)
		if actor == nil || !actor.Alive || actor.Subrole != models.SubroleSeer {
			continue
		}
		usedAbility[a.ActorID] = true

		if actor.SeerUses <= 0 {
			continue
		}
		target := room.FindPlayer(a.TargetID)
		if target == nil {
			continue
		}
		actor.SeerUses--
		actor.LastVision = target.Username + " 的陣營是 " + string(target.Faction)
	}

	// 步驟六：女巫復活，整個房間最多只能有一位女巫助手
	for _, a := range actions {
		if a.Kind != models.ActionRevive {
			continue
		}
		actor := room.FindPlayer(a.ActorID)
		if actor == nil || !actor.Alive || actor.Subrole != models.SubroleWitch {
			continue
		}
		usedAbility[a.ActorID] = true

		if room.WitchHelperID != "" {
			continue
		}
		target := room.FindPlayer(a.TargetID)
		if target == nil || target.Alive {
			// 只能復活已死亡的玩家
			continue
		}
		target.Alive = true
		target.Faction = models.FactionNeutral
		target.Subrole = models.SubroleWitchHelper
		target.RevivedBy = a.ActorID
		room.WitchHelperID = target.ID
		room.AppendLog(now, target.Username+" 被女巫復活，成為女巫助手")
	}

	// 步驟七：標記發動
	// 被標記的玩家若在本晚使用了特殊能力就會死亡，沒有能力的角色免疫
	// 成功發動讓強盜獲得一次額外標記並累計擊殺數
	for targetID, banditID := range markedBy {
		target := room.FindPlayer(targetID)
		if target == nil || !usedAbility[targetID] {
			continue
		}
		if !target.Subrole.HasNightAbility() {
			continue
		}
		if !target.Alive {
			// 已在前面的步驟死亡，不會再死一次
			continue
		}
		s.killPlayer(room, target, now, target.Username+" 因使用能力觸發了標記而死")
		if bandit := room.FindPlayer(banditID); bandit != nil {
			bandit.BanditMarks++
			bandit.BanditKills++
		}
	}

	// 步驟八：標記耗盡的強盜死亡
	for i := range room.Players {
		p := &room.Players[i]
		if p.Alive && p.Subrole == models.SubroleBandit && p.BanditMarks <= 0 {
			s.killPlayer(room, p, now, p.Username+" 因標記耗盡而死")
		}
	}

	room.PendingActions = nil
}

// resolveWerewolfKill 決定狼人的共同擊殺目標並執行
// 取最多狼人選擇的目標，平票時取最早提交的行動
func (s *RoomService) resolveWerewolfKill(room *models.Room, actions []models.NightAction,
	protected map[string]bool, now time.Time) {
	votes := make(map[string]int)
	firstSeq := make(map[string]int)
	for _, a := range actions {
		if a.Kind != models.ActionKill {
			continue
		}
		actor := room.FindPlayer(a.ActorID)
		if actor == nil || !actor.Alive || actor.Subrole != models.SubroleWerewolf {
			continue
		}
		votes[a.TargetID]++
		if _, ok := firstSeq[a.TargetID]; !ok {
			firstSeq[a.TargetID] = a.Seq
		}
	}

	targetID := ""
	best := 0
	for id, count := range votes {
		if count > best || (count == best && firstSeq[id] < firstSeq[targetID]) {
			targetID = id
			best = count
		}
	}
	if targetID == "" {
		return
	}

	if protected[targetID] {
		room.AppendLog(now, "狼人的獵物受到保護，逃過一劫")
		return
	}
	if targetID == room.WitchHelperID {
		// 女巫助手永久免疫狼人擊殺
		room.AppendLog(now, "狼人的獵物不受傷害")
		return
	}

	target := room.FindPlayer(targetID)
	if target == nil || !target.Alive {
		return
	}
	s.killPlayer(room, target, now, target.Username+" 昨晚被狼人殺害")
}

// killPlayer 把玩家標記為死亡並記錄日誌，已死亡的玩家不會重複觸發
func (s *RoomService) killPlayer(room *models.Room, target *models.Player, now time.Time, text string) {
	if !target.Alive {
		return
	}
	target.Alive = false
	target.DiedAtNight = room.Phase == models.PhaseNight
	room.AppendLog(now, text)
}
