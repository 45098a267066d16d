package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"medishare-backend/internal/domain"
	"medishare-backend/internal/repository"

	"github.com/lib/pq"
)

type favoriteRepository struct {
	db *sql.DB
}

func NewFavoriteRepository(db *sql.DB) repository.FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(ctx context.Context, f *domain.Favorite) error {
	query := `INSERT INTO favorites (user_id, equipment_id, created_on) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, f.UserID, f.EquipmentID, time.Now()).Scan(&f.ID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return domain.ErrAlreadyExists
	}
	return err
}

func (r *favoriteRepository) Get(ctx context.Context, userID, equipmentID int32) (*domain.Favorite, error) {
	f := &domain.Favorite{}
	query := `SELECT id, user_id, equipment_id, created_on FROM favorites WHERE user_id = $1 AND equipment_id = $2`
	err := r.db.QueryRowContext(ctx, query, userID, equipmentID).Scan(&f.ID, &f.UserID, &f.EquipmentID, &f.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Favorite, error) {
	query := `SELECT f.id, f.user_id, f.equipment_id, f.created_on, ` + prefixedEquipmentColumns("e") + `
	          FROM favorites f JOIN equipment e ON e.id = f.equipment_id
	          WHERE f.user_id = $1 ORDER BY f.created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []domain.Favorite
	for rows.Next() {
		var f domain.Favorite
		var e domain.Equipment
		if err := rows.Scan(&f.ID, &f.UserID, &f.EquipmentID, &f.CreatedOn,
			&e.ID, &e.OwnerID, &e.Name, &e.Description, &e.Category, &e.Price, &e.RentalPeriod,
			&e.Condition, &e.Availability, &e.Location, &e.Image, &e.Status, &e.CreatedOn); err != nil {
			return nil, err
		}
		f.Equipment = &e
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

func (r *favoriteRepository) Delete(ctx context.Context, userID, equipmentID int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = $1 AND equipment_id = $2`, userID, equipmentID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByEquipment clears every user's favorite for a listing; used when the
// listing itself is removed. Zero rows is fine here.
func (r *favoriteRepository) DeleteByEquipment(ctx context.Context, equipmentID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE equipment_id = $1`, equipmentID)
	return err
}

func prefixedEquipmentColumns(alias string) string {
	return alias + `.id, ` + alias + `.owner_id, ` + alias + `.name, ` + alias + `.description, ` +
		alias + `.category, ` + alias + `.price, ` + alias + `.rental_period, ` + alias + `.condition, ` +
		alias + `.availability, ` + alias + `.location, COALESCE(` + alias + `.image, ''), ` + alias + `.status, ` + alias + `.created_on`
}
