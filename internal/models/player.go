package models

// Player 表示房間內的一位玩家
type Player struct {
	ID       string  `json:"id"`       // 玩家 ID，房間內唯一
	Username string  `json:"username"` // 3-10 個字元，房間內不可重複
	Alive    bool    `json:"alive"`
	Faction  Faction `json:"faction"` // 陣營，決定勝利條件歸屬
	Subrole  Subrole `json:"subrole"` // 陣營內的特化角色

	// 角色能力狀態
	SeerUses    int    `json:"seer_uses"`    // 預言家剩餘占卜次數
	BanditMarks int    `json:"bandit_marks"` // 強盜剩餘標記次數
	BanditKills int    `json:"bandit_kills"` // 強盜透過標記成功擊殺的次數
	LastVision  string `json:"last_vision,omitempty"` // 預言家最近一次占卜結果，只有本人看得到
	RevivedBy   string `json:"revived_by,omitempty"`  // 復活此玩家的女巫 ID

	DiedAtNight bool `json:"died_at_night"` // 昨晚死亡的標記，供早晨公告用
}

// Faction 定義玩家陣營的類型
type Faction string

const (
	FactionUnassigned Faction = "unassigned"
	FactionInnocent   Faction = "innocent"
	FactionNeutral    Faction = "neutral"
	FactionWerewolf   Faction = "werewolf"
)

// Subrole 定義陣營內特化角色的類型
type Subrole string

const (
	SubroleUnassigned  Subrole = "unassigned"
	SubroleVillager    Subrole = "villager" // 平民，沒有夜晚能力
	SubroleGuard       Subrole = "guard"
	SubroleHunter      Subrole = "hunter"
	SubroleSeer        Subrole = "seer"
	SubroleBandit      Subrole = "bandit"
	SubroleWitch       Subrole = "witch"
	SubroleWitchHelper Subrole = "witch_helper" // 被女巫復活的玩家
	SubroleWerewolf    Subrole = "werewolf"
)

// HasNightAbility 回傳此角色是否擁有特殊夜晚能力
// 平民和女巫助手沒有能力，所以對強盜的標記免疫
func (s Subrole) HasNightAbility() bool {
	switch s {
	case SubroleGuard, SubroleHunter, SubroleSeer, SubroleBandit, SubroleWitch, SubroleWerewolf:
		return true
	default:
		return false
	}
}
