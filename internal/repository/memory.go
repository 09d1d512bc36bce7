package repository

import (
	"encoding/json"
	"errors"
	"sync"

	"werewolf_web/internal/models"
)

// ErrNotFound 表示查詢的記錄不存在
var ErrNotFound = errors.New("記錄不存在")

// memoryRoomRepository 是 RoomRepository 的記憶體實作，主要供測試使用
// 存取時以 JSON 深拷貝，模擬資料庫讀寫的序列化行為
type memoryRoomRepository struct {
	rooms map[string]*models.Room
	mu    sync.RWMutex
}

func NewMemoryRoomRepository() RoomRepository {
	return &memoryRoomRepository{
		rooms: make(map[string]*models.Room),
	}
}

func (r *memoryRoomRepository) Create(room *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[room.Code]; exists {
		return errors.New("房間代碼已存在")
	}
	copied, err := cloneRoom(room)
	if err != nil {
		return err
	}
	r.rooms[room.Code] = copied
	return nil
}

func (r *memoryRoomRepository) FindByCode(code string) (*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, exists := r.rooms[code]
	if !exists {
		return nil, ErrNotFound
	}
	return cloneRoom(room)
}

func (r *memoryRoomRepository) Update(room *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[room.Code]; !exists {
		return ErrNotFound
	}
	copied, err := cloneRoom(room)
	if err != nil {
		return err
	}
	r.rooms[room.Code] = copied
	return nil
}

func (r *memoryRoomRepository) Delete(code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rooms, code)
	return nil
}

func (r *memoryRoomRepository) FindAll() ([]models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]models.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		copied, err := cloneRoom(room)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *copied)
	}
	return rooms, nil
}

func cloneRoom(room *models.Room) (*models.Room, error) {
	data, err := json.Marshal(room)
	if err != nil {
		return nil, err
	}
	var copied models.Room
	if err := json.Unmarshal(data, &copied); err != nil {
		return nil, err
	}
	copied.ID = room.ID
	return &copied, nil
}
