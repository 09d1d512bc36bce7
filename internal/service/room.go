package service

import (
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"werewolf_web/internal/models"
	"werewolf_web/internal/repository"
	"werewolf_web/pkg/config"
)

// RoomService 管理房間的生命週期並驅動遊戲引擎
// 同一個房間的所有讀寫（玩家事件和計時器觸發）都透過 per-room 鎖序列化，
// 不同房間之間完全獨立，可以並行處理
type RoomService struct {
	roomRepo  repository.RoomRepository
	wsManager *WebSocketManager
	cfg       config.GameConfig
	clock     Clock
	logger    *zap.Logger

	rng   *rand.Rand
	rngMu sync.Mutex

	locks    map[string]*sync.Mutex
	locksMux sync.Mutex

	timers    map[string]chan struct{}
	timersMux sync.Mutex
}

func NewRoomService(roomRepo repository.RoomRepository, wsManager *WebSocketManager,
	cfg config.GameConfig, clock Clock, rng *rand.Rand, logger *zap.Logger) *RoomService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{
		roomRepo:  roomRepo,
		wsManager: wsManager,
		cfg:       cfg,
		clock:     clock,
		logger:    logger,
		rng:       rng,
		locks:     make(map[string]*sync.Mutex),
		timers:    make(map[string]chan struct{}),
	}
}

// lockFor 取得房間專用的互斥鎖
func (s *RoomService) lockFor(code string) *sync.Mutex {
	s.locksMux.Lock()
	defer s.locksMux.Unlock()

	mu, ok := s.locks[code]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[code] = mu
	}
	return mu
}

// withRoom 在房間鎖內載入、修改並保存房間
// fn 回傳錯誤時不保存，房間狀態保持不變
func (s *RoomService) withRoom(code string, fn func(room *models.Room) error) error {
	mu := s.lockFor(code)
	mu.Lock()
	defer mu.Unlock()

	room, err := s.roomRepo.FindByCode(code)
	if err != nil {
		return ErrRoomNotFound
	}
	if err := fn(room); err != nil {
		return err
	}
	return s.roomRepo.Update(room)
}

const roomCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateRoomCode 產生 5 位大寫英數字的房間代碼
func (s *RoomService) generateRoomCode() string {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()

	code := make([]byte, 5)
	for i := range code {
		code[i] = roomCodeChars[s.rng.Intn(len(roomCodeChars))]
	}
	return string(code)
}

func validUsername(username string) bool {
	n := len([]rune(username))
	return n >= 3 && n <= 10
}

// CreateRoom 創建一個新房間，創建者成為房主也是第一位玩家
func (s *RoomService) CreateRoom(username string) (*models.Room, error) {
	if !validUsername(username) {
		return nil, ErrInvalidUsername
	}

	player := models.Player{
		ID:       uuid.NewString(),
		Username: username,
		Alive:    true,
		Faction:  models.FactionUnassigned,
		Subrole:  models.SubroleUnassigned,
	}

	room := &models.Room{
		Code:    s.generateRoomCode(),
		HostID:  player.ID,
		Status:  models.RoomStatusWaiting,
		Phase:   models.PhaseWaiting,
		Players: []models.Player{player},
		Votes:   make(map[string]string),
	}
	room.AppendLog(s.clock.Now(), username+" 創建了房間")

	if err := s.roomRepo.Create(room); err != nil {
		return nil, err
	}

	s.logger.Info("room created",
		zap.String("room", room.Code),
		zap.String("host", username))
	return room, nil
}

// JoinRoom 讓玩家加入房間，回傳新加入的玩家
func (s *RoomService) JoinRoom(code, username string) (*models.Player, error) {
	if !validUsername(username) {
		return nil, ErrInvalidUsername
	}

	var joined models.Player
	err := s.withRoom(code, func(room *models.Room) error {
		if room.Status != models.RoomStatusWaiting && room.Status != models.RoomStatusReady {
			return ErrAlreadyStarted
		}
		if len(room.Players) >= models.MaxPlayers {
			return ErrRoomFull
		}
		for i := range room.Players {
			if room.Players[i].Username == username {
				return ErrUsernameTaken
			}
		}

		// 角色分配後名單又變動，分配作廢，房間退回等待狀態
		if room.Status == models.RoomStatusReady {
			s.resetRoles(room)
		}

		joined = models.Player{
			ID:       uuid.NewString(),
			Username: username,
			Alive:    true,
			Faction:  models.FactionUnassigned,
			Subrole:  models.SubroleUnassigned,
		}
		room.Players = append(room.Players, joined)
		room.AppendLog(s.clock.Now(), username+" 加入了房間")
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastSystem(code, username+" 加入了房間")
	return &joined, nil
}

// LeaveRoom 讓玩家離開房間
// 房主離開時轉移房主給最早加入的玩家，房間空了就刪除
func (s *RoomService) LeaveRoom(code, playerID string) error {
	var (
		deleted  bool
		username string
	)
	err := s.withRoom(code, func(room *models.Room) error {
		idx := -1
		for i := range room.Players {
			if room.Players[i].ID == playerID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrPlayerNotFound
		}
		username = room.Players[idx].Username
		room.Players = append(room.Players[:idx], room.Players[idx+1:]...)

		if len(room.Players) == 0 {
			deleted = true
			return nil
		}

		if room.HostID == playerID {
			room.HostID = room.Players[0].ID
			room.AppendLog(s.clock.Now(), room.Players[0].Username+" 成為新房主")
		}

		switch room.Status {
		case models.RoomStatusReady:
			// 名單變動讓已分配的角色作廢
			s.resetRoles(room)
		case models.RoomStatusPlaying:
			// 名單縮小可能直接觸發勝利條件
			s.checkGameEnd(room)
		}

		room.AppendLog(s.clock.Now(), username+" 離開了房間")
		return nil
	})
	if err != nil {
		return err
	}

	if deleted {
		s.cancelPhaseTimer(code)
		if err := s.roomRepo.Delete(code); err != nil {
			return err
		}
		s.logger.Info("room deleted", zap.String("room", code))
		return nil
	}

	s.broadcastSystem(code, username+" 離開了房間")
	return nil
}

// resetRoles 清除已分配的角色並讓房間退回等待狀態
func (s *RoomService) resetRoles(room *models.Room) {
	for i := range room.Players {
		p := &room.Players[i]
		p.Faction = models.FactionUnassigned
		p.Subrole = models.SubroleUnassigned
		p.SeerUses = 0
		p.BanditMarks = 0
		p.BanditKills = 0
	}
	room.Status = models.RoomStatusWaiting
	room.AppendLog(s.clock.Now(), "玩家名單變動，角色分配作廢")
}

// RoomSnapshot 是回傳給客戶端的房間快照
// 附帶計算出的階段剩餘秒數和目前在線的連接數
type RoomSnapshot struct {
	*models.Room
	RemainingSeconds int `json:"remaining_seconds"`
	Online           int `json:"online"`
}

// GetRoomSnapshot 取得房間當前狀態的快照
func (s *RoomService) GetRoomSnapshot(code string) (*RoomSnapshot, error) {
	mu := s.lockFor(code)
	mu.Lock()
	defer mu.Unlock()

	room, err := s.roomRepo.FindByCode(code)
	if err != nil {
		return nil, ErrRoomNotFound
	}

	remaining := 0
	if room.Status == models.RoomStatusPlaying {
		if d := room.PhaseDeadline.Sub(s.clock.Now()); d > 0 {
			remaining = int(d.Seconds())
		}
	}

	online := 0
	if s.wsManager != nil {
		online = s.wsManager.GetRoomClients(code)
	}

	return &RoomSnapshot{Room: room, RemainingSeconds: remaining, Online: online}, nil
}

// ListRooms 查詢所有房間
func (s *RoomService) ListRooms() ([]models.Room, error) {
	return s.roomRepo.FindAll()
}

// broadcastSystem 向房間廣播系統消息，沒有接上 WebSocket 管理器時跳過
func (s *RoomService) broadcastSystem(code, content string) {
	if s.wsManager != nil {
		s.wsManager.BroadcastSystemMessage(code, content)
	}
}
