package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"medishare-backend/internal/domain"
)

func equipmentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "owner_id", "name", "description", "category", "price", "rental_period", "condition", "availability", "location", "image", "status", "created_on"})
}

func TestEquipmentRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewEquipmentRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM equipment WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(equipmentRows().
				AddRow(1, 10, "Wheelchair", "Standard", "Mobility", 50.0, "day", "good", "available", "Casablanca", "", "active", time.Now()))

		eq, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, int32(10), eq.OwnerID)
		assert.Equal(t, domain.AvailabilityAvailable, eq.Availability)
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM equipment WHERE id = \\$1").
			WithArgs(int32(99)).
			WillReturnRows(equipmentRows())

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEquipmentRepository_SetAvailabilityIf(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewEquipmentRepository(db)
	ctx := context.Background()

	t.Run("Flip Applied", func(t *testing.T) {
		mock.ExpectExec("UPDATE equipment SET availability").
			WithArgs(domain.AvailabilityRented, int32(1), domain.AvailabilityAvailable).
			WillReturnResult(sqlmock.NewResult(0, 1))

		applied, err := repo.SetAvailabilityIf(ctx, 1, domain.AvailabilityAvailable, domain.AvailabilityRented)
		assert.NoError(t, err)
		assert.True(t, applied)
	})

	t.Run("State Already Changed", func(t *testing.T) {
		mock.ExpectExec("UPDATE equipment SET availability").
			WithArgs(domain.AvailabilityAvailable, int32(1), domain.AvailabilityRented).
			WillReturnResult(sqlmock.NewResult(0, 0))

		applied, err := repo.SetAvailabilityIf(ctx, 1, domain.AvailabilityRented, domain.AvailabilityAvailable)
		assert.NoError(t, err)
		assert.False(t, applied)
	})
}

func TestEquipmentRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewEquipmentRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM equipment WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, 1))
	})

	t.Run("Missing Row", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM equipment WHERE id = \\$1").
			WithArgs(int32(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, 99), domain.ErrNotFound)
	})
}

func TestEquipmentRepository_CountByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewEquipmentRepository(db)
	ctx := context.Background()

	t.Run("All Statuses", func(t *testing.T) {
		mock.ExpectQuery("SELECT count").
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

		count, err := repo.CountByOwner(ctx, 10, "")
		assert.NoError(t, err)
		assert.Equal(t, int32(4), count)
	})

	t.Run("Filtered By Status", func(t *testing.T) {
		mock.ExpectQuery("SELECT count").
			WithArgs(int32(10), domain.ListingStatusActive).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.CountByOwner(ctx, 10, domain.ListingStatusActive)
		assert.NoError(t, err)
		assert.Equal(t, int32(3), count)
	})
}
