package models

// ActionKind 定義夜晚行動的種類
type ActionKind string

const (
	ActionProtect ActionKind = "protect" // 守衛保護
	ActionMark    ActionKind = "mark"    // 強盜標記
	ActionKill    ActionKind = "kill"    // 狼人擊殺
	ActionShoot   ActionKind = "shoot"   // 獵人射擊
	ActionRead    ActionKind = "read"    // 預言家占卜
	ActionRevive  ActionKind = "revive"  // 女巫復活
)

// NightAction 表示一位玩家在夜晚提交的行動
// 同一位玩家在同一個夜晚重複提交時，後來的提交會覆蓋先前的目標，
// Seq 保留最初提交的順序，作為狼人擊殺平票時的決定性依據
type NightAction struct {
	Kind     ActionKind `json:"kind"`
	ActorID  string     `json:"actor_id"`
	TargetID string     `json:"target_id"`
	Seq      int        `json:"seq"`
}

// SubroleFor 回傳某種夜晚行動對應的角色
func (k ActionKind) SubroleFor() Subrole {
	switch k {
	case ActionProtect:
		return SubroleGuard
	case ActionMark:
		return SubroleBandit
	case ActionKill:
		return SubroleWerewolf
	case ActionShoot:
		return SubroleHunter
	case ActionRead:
		return SubroleSeer
	case ActionRevive:
		return SubroleWitch
	default:
		return SubroleUnassigned
	}
}
