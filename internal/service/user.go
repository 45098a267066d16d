package service

import (
	"context"

	"medishare-backend/internal/domain"
	"medishare-backend/internal/repository"
)

type userService struct {
	userRepo      repository.UserRepository
	equipmentRepo repository.EquipmentRepository
}

func NewUserService(userRepo repository.UserRepository, equipmentRepo repository.EquipmentRepository) UserService {
	return &userService{userRepo: userRepo, equipmentRepo: equipmentRepo}
}

func (s *userService) GetProfile(ctx context.Context, userID int32) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// GetMembership returns the minimal public record used to show how long a
// user has been on the platform.
func (s *userService) GetMembership(ctx context.Context, userID int32) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.User{ID: user.ID, Email: user.Email, CreatedOn: user.CreatedOn}, nil
}

func (s *userService) OwnerStats(ctx context.Context, userID int32) (*domain.OwnerStats, error) {
	total, err := s.equipmentRepo.CountByOwner(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	active, err := s.equipmentRepo.CountByOwner(ctx, userID, domain.ListingStatusActive)
	if err != nil {
		return nil, err
	}
	pending, err := s.equipmentRepo.CountByOwner(ctx, userID, domain.ListingStatusPending)
	if err != nil {
		return nil, err
	}
	value, err := s.equipmentRepo.OwnerListingValue(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.OwnerStats{
		TotalEquipment: total,
		Active:         active,
		Pending:        pending,
		ListingValue:   value,
	}, nil
}
