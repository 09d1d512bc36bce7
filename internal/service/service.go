package service

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"werewolf_web/internal/repository"
	"werewolf_web/pkg/config"
)

type Services struct {
	RoomService      *RoomService
	WebSocketManager *WebSocketManager
}

func NewServices(repos *repository.Repositories, cfg config.GameConfig, logger *zap.Logger) *Services {
	wsManager := NewWebSocketManager()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	roomService := NewRoomService(repos.Room, wsManager, cfg, NewRealClock(), rng, logger)
	return &Services{
		RoomService:      roomService,
		WebSocketManager: wsManager,
	}
}
