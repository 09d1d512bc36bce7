package models

import (
	"time"

	"gorm.io/gorm"
)

// Room 表示一個狼人殺遊戲房間
// 巢狀欄位（玩家、夜晚行動、投票等）以 JSON 序列化存入資料庫，
// 讓房間快照可以完整寫入再讀出而不遺失任何欄位
type Room struct {
	gorm.Model
	Code           string            `gorm:"uniqueIndex;not null" json:"code"` // 房間代碼，建立後不可變更
	HostID         string            `json:"host_id"`                          // 房主的玩家 ID，房主離開時會轉移
	Status         RoomStatus        `gorm:"not null" json:"status"`
	Phase          GamePhase         `gorm:"not null" json:"phase"`
	Round          int               `json:"round"`          // 完成一次夜晚→白天循環加一
	PhaseDeadline  time.Time         `json:"phase_deadline"` // 當前階段自動推進的絕對時間
	Players        []Player          `gorm:"serializer:json" json:"players"` // 依加入順序排列
	PendingActions []NightAction     `gorm:"serializer:json" json:"pending_actions"`
	Votes          map[string]string `gorm:"serializer:json" json:"votes"` // 投票者 ID -> 目標 ID（空字串表示棄票）
	Revote         *RevoteState      `gorm:"serializer:json" json:"revote,omitempty"`
	WitchHelperID  string            `json:"witch_helper_id"` // 被女巫復活的玩家 ID，一個房間最多一位
	Logs           []LogEntry        `gorm:"serializer:json" json:"logs"` // 只能追加，不能修改
	Winner         *GameResult       `gorm:"serializer:json" json:"winner,omitempty"`
}

// RoomStatus 定義房間狀態的類型
type RoomStatus string

const (
	RoomStatusWaiting RoomStatus = "waiting" // 等待玩家加入
	RoomStatusReady   RoomStatus = "ready"   // 角色已分配，等待開始
	RoomStatusPlaying RoomStatus = "playing" // 遊戲進行中
	RoomStatusEnded   RoomStatus = "ended"   // 遊戲結束
)

// GamePhase 定義遊戲階段的類型
type GamePhase string

const (
	PhaseWaiting GamePhase = "waiting"
	PhaseNight   GamePhase = "night"
	PhaseMorning GamePhase = "morning"
	PhaseDay     GamePhase = "day"
	PhaseVoting  GamePhase = "voting"
	PhaseEnded   GamePhase = "ended"
)

// MinPlayers 和 MaxPlayers 是開始遊戲所需的玩家人數範圍
const (
	MinPlayers = 5
	MaxPlayers = 10
)

// RevoteState 記錄平票重投時的狀態，只在重投期間存在
type RevoteState struct {
	ExcludedVoters []string `json:"excluded_voters"` // 平票玩家不能投票
	Candidates     []string `json:"candidates"`      // 平票的候選人，仍然可以被投
}

// LogEntry 是房間日誌的一筆記錄
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
}

// GameResult 記錄遊戲的最終結果，整場遊戲只會設置一次
type GameResult struct {
	Winner  string `json:"winner"` // 獲勝陣營或個人獲勝玩家
	Message string `json:"message"`
}

// FindPlayer 依 ID 搜尋房間內的玩家，找不到時回傳 nil
func (r *Room) FindPlayer(id string) *Player {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i]
		}
	}
	return nil
}

// AliveCount 計算指定陣營目前存活的玩家數
func (r *Room) AliveCount(faction Faction) int {
	count := 0
	for i := range r.Players {
		if r.Players[i].Alive && r.Players[i].Faction == faction {
			count++
		}
	}
	return count
}

// AppendLog 追加一筆日誌記錄
func (r *Room) AppendLog(now time.Time, text string) {
	r.Logs = append(r.Logs, LogEntry{Timestamp: now, Text: text})
}

// IsExcluded 檢查玩家是否在重投排除名單中
func (r *Room) IsExcluded(playerID string) bool {
	if r.Revote == nil {
		return false
	}
	for _, id := range r.Revote.ExcludedVoters {
		if id == playerID {
			return true
		}
	}
	return false
}
