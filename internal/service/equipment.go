package service

import (
	"context"
	"strings"

	"medishare-backend/internal/domain"
	"medishare-backend/internal/logger"
	"medishare-backend/internal/repository"
	"medishare-backend/internal/storage"
)

type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
	favoriteRepo  repository.FavoriteRepository
	artifacts     storage.ArtifactStore
}

func NewEquipmentService(equipmentRepo repository.EquipmentRepository, favoriteRepo repository.FavoriteRepository, artifacts storage.ArtifactStore) EquipmentService {
	return &equipmentService{equipmentRepo: equipmentRepo, favoriteRepo: favoriteRepo, artifacts: artifacts}
}

func (s *equipmentService) Create(ctx context.Context, eq *domain.Equipment) error {
	if err := validateEquipment(eq); err != nil {
		return err
	}
	if eq.Availability == "" {
		eq.Availability = domain.AvailabilityAvailable
	}
	if eq.RentalPeriod == "" {
		eq.RentalPeriod = domain.RentalPeriodDay
	}
	if eq.Status == "" {
		eq.Status = domain.ListingStatusActive
	}
	return s.equipmentRepo.Create(ctx, eq)
}

func (s *equipmentService) Get(ctx context.Context, id int32) (*domain.Equipment, error) {
	return s.equipmentRepo.GetByID(ctx, id)
}

func (s *equipmentService) List(ctx context.Context) ([]domain.Equipment, error) {
	return s.equipmentRepo.List(ctx)
}

func (s *equipmentService) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Equipment, error) {
	return s.equipmentRepo.ListByOwner(ctx, ownerID)
}

// Update applies a partial update on behalf of ownerID. Only the listing's
// owner may change it; availability is excluded from the patch because the
// order workflow owns that field.
func (s *equipmentService) Update(ctx context.Context, ownerID, id int32, patch domain.EquipmentPatch) (*domain.Equipment, error) {
	eq, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if eq.OwnerID != ownerID {
		return nil, domain.ErrUnauthorized
	}

	oldImage := eq.Image
	patch.Apply(eq)
	if err := validateEquipment(eq); err != nil {
		return nil, err
	}
	if err := s.equipmentRepo.Update(ctx, eq); err != nil {
		return nil, err
	}
	if patch.Image != nil && oldImage != "" && oldImage != eq.Image {
		s.deleteArtifact(ctx, oldImage)
	}
	return eq, nil
}

func (s *equipmentService) Delete(ctx context.Context, ownerID, id int32) error {
	eq, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if eq.OwnerID != ownerID {
		return domain.ErrUnauthorized
	}
	if err := s.favoriteRepo.DeleteByEquipment(ctx, id); err != nil {
		return err
	}
	if err := s.equipmentRepo.Delete(ctx, id); err != nil {
		return err
	}
	if eq.Image != "" {
		s.deleteArtifact(ctx, eq.Image)
	}
	return nil
}

// deleteArtifact removes a stored image. Failures are logged, not surfaced;
// the listing change already committed.
func (s *equipmentService) deleteArtifact(ctx context.Context, reference string) {
	if s.artifacts == nil {
		return
	}
	if err := s.artifacts.Delete(ctx, reference); err != nil {
		logger.ErrorContext(ctx, "failed to delete equipment image", "reference", reference, "error", err)
	}
}

func validateEquipment(eq *domain.Equipment) error {
	fields := make(map[string]string)
	if strings.TrimSpace(eq.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(eq.Category) == "" {
		fields["category"] = "category is required"
	}
	if eq.Price <= 0 {
		fields["price"] = "price must be positive"
	}
	if eq.RentalPeriod != "" && eq.RentalPeriod != domain.RentalPeriodDay && eq.RentalPeriod != domain.RentalPeriodMonth {
		fields["rental_period"] = "rental period must be day or month"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
