package service

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"medishare-backend/internal/domain"
)

// MockArtifactStore
type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) Save(ctx context.Context, filename string, reader io.Reader) (string, error) {
	args := m.Called(ctx, filename, reader)
	return args.String(0), args.Error(1)
}
func (m *MockArtifactStore) Open(ctx context.Context, reference string) (io.ReadCloser, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
func (m *MockArtifactStore) Delete(ctx context.Context, reference string) error {
	args := m.Called(ctx, reference)
	return args.Error(0)
}

func TestEquipmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults Applied", func(t *testing.T) {
		equipmentRepo := new(MockEquipmentRepo)
		svc := NewEquipmentService(equipmentRepo, new(MockFavoriteRepo), new(MockArtifactStore))
		equipmentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Equipment")).Return(nil)

		eq := &domain.Equipment{OwnerID: 1, Name: "Oxygen Concentrator", Category: "Respiratory", Price: 80}
		err := svc.Create(ctx, eq)
		assert.NoError(t, err)
		assert.Equal(t, domain.AvailabilityAvailable, eq.Availability)
		assert.Equal(t, domain.RentalPeriodDay, eq.RentalPeriod)
		assert.Equal(t, domain.ListingStatusActive, eq.Status)
	})

	t.Run("Validation", func(t *testing.T) {
		svc := NewEquipmentService(new(MockEquipmentRepo), new(MockFavoriteRepo), new(MockArtifactStore))
		err := svc.Create(ctx, &domain.Equipment{Price: -1})
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "name")
		assert.Contains(t, vErr.Fields, "category")
		assert.Contains(t, vErr.Fields, "price")
	})
}

func TestEquipmentService_Update(t *testing.T) {
	ctx := context.Background()
	stored := &domain.Equipment{
		ID: 1, OwnerID: 10, Name: "Hospital Bed", Category: "Furniture",
		Price: 120, Image: "/uploads/old.jpg", Availability: domain.AvailabilityAvailable,
	}

	t.Run("Owner Updates And Old Image Is Removed", func(t *testing.T) {
		equipmentRepo := new(MockEquipmentRepo)
		artifacts := new(MockArtifactStore)
		svc := NewEquipmentService(equipmentRepo, new(MockFavoriteRepo), artifacts)

		eq := *stored
		equipmentRepo.On("GetByID", ctx, int32(1)).Return(&eq, nil)
		equipmentRepo.On("Update", ctx, mock.AnythingOfType("*domain.Equipment")).Return(nil)
		artifacts.On("Delete", ctx, "/uploads/old.jpg").Return(nil)

		newImage := "/uploads/new.jpg"
		price := 150.0
		updated, err := svc.Update(ctx, 10, 1, domain.EquipmentPatch{Image: &newImage, Price: &price})
		assert.NoError(t, err)
		assert.Equal(t, "/uploads/new.jpg", updated.Image)
		assert.Equal(t, 150.0, updated.Price)
		artifacts.AssertExpectations(t)
	})

	t.Run("Non-Owner Denied", func(t *testing.T) {
		equipmentRepo := new(MockEquipmentRepo)
		svc := NewEquipmentService(equipmentRepo, new(MockFavoriteRepo), new(MockArtifactStore))
		eq := *stored
		equipmentRepo.On("GetByID", ctx, int32(1)).Return(&eq, nil)

		price := 1.0
		_, err := svc.Update(ctx, 99, 1, domain.EquipmentPatch{Price: &price})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		equipmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestEquipmentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner Deletes With Image And Favorite Cleanup", func(t *testing.T) {
		equipmentRepo := new(MockEquipmentRepo)
		favoriteRepo := new(MockFavoriteRepo)
		artifacts := new(MockArtifactStore)
		svc := NewEquipmentService(equipmentRepo, favoriteRepo, artifacts)

		equipmentRepo.On("GetByID", ctx, int32(1)).Return(&domain.Equipment{ID: 1, OwnerID: 10, Image: "/uploads/x.jpg"}, nil)
		favoriteRepo.On("DeleteByEquipment", ctx, int32(1)).Return(nil)
		equipmentRepo.On("Delete", ctx, int32(1)).Return(nil)
		artifacts.On("Delete", ctx, "/uploads/x.jpg").Return(nil)

		assert.NoError(t, svc.Delete(ctx, 10, 1))
		favoriteRepo.AssertExpectations(t)
		artifacts.AssertExpectations(t)
	})

	t.Run("Non-Owner Denied", func(t *testing.T) {
		equipmentRepo := new(MockEquipmentRepo)
		svc := NewEquipmentService(equipmentRepo, new(MockFavoriteRepo), new(MockArtifactStore))
		equipmentRepo.On("GetByID", ctx, int32(1)).Return(&domain.Equipment{ID: 1, OwnerID: 10}, nil)

		assert.ErrorIs(t, svc.Delete(ctx, 99, 1), domain.ErrUnauthorized)
	})
}
