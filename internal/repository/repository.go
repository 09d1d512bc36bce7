package repository

import "werewolf_web/internal/storage"

type Repositories struct {
	Room RoomRepository
}

func NewRepositories(db *storage.PostgresDB) *Repositories {
	return &Repositories{
		Room: NewRoomRepository(db),
	}
}
