package repository

import (
	"werewolf_web/internal/models"
	"werewolf_web/internal/storage"
)

// RoomRepository 定義房間持久化的介面
// 遊戲核心只透過這個介面存取房間，測試時可以換成記憶體實作
type RoomRepository interface {
	Create(room *models.Room) error
	FindByCode(code string) (*models.Room, error)
	Update(room *models.Room) error
	Delete(code string) error
	FindAll() ([]models.Room, error) // 簡單的列表查詢
}

type roomRepository struct {
	db *storage.PostgresDB
}

func NewRoomRepository(db *storage.PostgresDB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(room *models.Room) error {
	return r.db.Create(room).Error
}

func (r *roomRepository) FindByCode(code string) (*models.Room, error) {
	var room models.Room
	err := r.db.Where("code = ?", code).First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) Update(room *models.Room) error {
	return r.db.Save(room).Error
}

func (r *roomRepository) Delete(code string) error {
	return r.db.Where("code = ?", code).Delete(&models.Room{}).Error
}

// FindAll 查詢所有房間
func (r *roomRepository) FindAll() ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.Order("created_at DESC").Find(&rooms).Error
	return rooms, err
}
