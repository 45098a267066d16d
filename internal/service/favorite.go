package service

import (
	"context"
	"errors"

	"medishare-backend/internal/domain"
	"medishare-backend/internal/repository"
)

type favoriteService struct {
	favoriteRepo  repository.FavoriteRepository
	equipmentRepo repository.EquipmentRepository
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, equipmentRepo repository.EquipmentRepository) FavoriteService {
	return &favoriteService{favoriteRepo: favoriteRepo, equipmentRepo: equipmentRepo}
}

func (s *favoriteService) Add(ctx context.Context, userID, equipmentID int32) (*domain.Favorite, error) {
	if _, err := s.equipmentRepo.GetByID(ctx, equipmentID); err != nil {
		return nil, err
	}
	fav := &domain.Favorite{UserID: userID, EquipmentID: equipmentID}
	if err := s.favoriteRepo.Create(ctx, fav); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return s.favoriteRepo.Get(ctx, userID, equipmentID)
		}
		return nil, err
	}
	return fav, nil
}

func (s *favoriteService) List(ctx context.Context, userID int32) ([]domain.Favorite, error) {
	return s.favoriteRepo.ListByUser(ctx, userID)
}

func (s *favoriteService) Remove(ctx context.Context, userID, equipmentID int32) error {
	return s.favoriteRepo.Delete(ctx, userID, equipmentID)
}
