package postgres

import (
	"database/sql"

	"medishare-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.EquipmentRepository
	repository.OrderRepository
	repository.FavoriteRepository
	repository.MessageRepository
	repository.SettingsRepository
	repository.SubscriberRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                   db,
		UserRepository:       NewUserRepository(db),
		EquipmentRepository:  NewEquipmentRepository(db),
		OrderRepository:      NewOrderRepository(db),
		FavoriteRepository:   NewFavoriteRepository(db),
		MessageRepository:    NewMessageRepository(db),
		SettingsRepository:   NewSettingsRepository(db),
		SubscriberRepository: NewSubscriberRepository(db),
	}
}
