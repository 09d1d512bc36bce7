package models

import (
	"time"
)

// Message 代表一個透過 WebSocket 推送給房間內客戶端的消息
type Message struct {
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	PlayerID  string    `json:"player_id,omitempty"`
	RoomCode  string    `json:"room_code"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChatMessage 創建一條白天討論的聊天消息
func NewChatMessage(roomCode, playerID, content string) Message {
	return Message{
		Type:      "chat_message",
		Content:   content,
		PlayerID:  playerID,
		RoomCode:  roomCode,
		Timestamp: time.Now(),
	}
}

// NewSystemMessage 創建一條系統消息
func NewSystemMessage(roomCode, content string) Message {
	return Message{
		Type:      "system_message",
		Content:   content,
		RoomCode:  roomCode,
		Timestamp: time.Now(),
	}
}
