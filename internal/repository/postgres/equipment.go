package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"medishare-backend/internal/domain"
	"medishare-backend/internal/repository"
)

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

const equipmentColumns = `id, owner_id, name, description, category, price, rental_period, condition, availability, location, COALESCE(image, ''), status, created_on`

func scanEquipment(row interface{ Scan(...any) error }, e *domain.Equipment) error {
	return row.Scan(&e.ID, &e.OwnerID, &e.Name, &e.Description, &e.Category, &e.Price, &e.RentalPeriod, &e.Condition, &e.Availability, &e.Location, &e.Image, &e.Status, &e.CreatedOn)
}

func (r *equipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	query := `INSERT INTO equipment (owner_id, name, description, category, price, rental_period, condition, availability, location, image, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	return r.db.QueryRowContext(ctx, query, e.OwnerID, e.Name, e.Description, e.Category, e.Price, e.RentalPeriod, e.Condition, e.Availability, e.Location, e.Image, e.Status, time.Now()).Scan(&e.ID)
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	e := &domain.Equipment{}
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	err := scanEquipment(r.db.QueryRowContext(ctx, query, id), e)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *equipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	query := `UPDATE equipment SET name=$1, description=$2, category=$3, price=$4, rental_period=$5, condition=$6, location=$7, image=$8, status=$9 WHERE id=$10`
	_, err := r.db.ExecContext(ctx, query, e.Name, e.Description, e.Category, e.Price, e.RentalPeriod, e.Condition, e.Location, e.Image, e.Status, e.ID)
	return err
}

func (r *equipmentRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, id)
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

func (r *equipmentRepository) List(ctx context.Context) ([]domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment ORDER BY created_on DESC`
	return r.queryEquipment(ctx, query)
}

func (r *equipmentRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE owner_id = $1 ORDER BY created_on DESC`
	return r.queryEquipment(ctx, query, ownerID)
}

func (r *equipmentRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE created_on >= $1 ORDER BY created_on DESC`
	return r.queryEquipment(ctx, query, since)
}

func (r *equipmentRepository) queryEquipment(ctx context.Context, query string, args ...any) ([]domain.Equipment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		var e domain.Equipment
		if err := scanEquipment(rows, &e); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// SetAvailabilityIf is the conditional write that guards against two
// checkouts racing for the same equipment: the update only lands when the
// row's availability still matches expected.
func (r *equipmentRepository) SetAvailabilityIf(ctx context.Context, id int32, expected, next domain.Availability) (bool, error) {
	query := `UPDATE equipment SET availability = $1 WHERE id = $2 AND availability = $3`
	res, err := r.db.ExecContext(ctx, query, next, id, expected)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *equipmentRepository) Count(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM equipment`).Scan(&count)
	return count, err
}

func (r *equipmentRepository) CountByOwner(ctx context.Context, ownerID int32, status domain.ListingStatus) (int32, error) {
	var count int32
	if status == "" {
		err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM equipment WHERE owner_id = $1`, ownerID).Scan(&count)
		return count, err
	}
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM equipment WHERE owner_id = $1 AND status = $2`, ownerID, status).Scan(&count)
	return count, err
}

func (r *equipmentRepository) StatusCounts(ctx context.Context) (map[string]int32, error) {
	return r.groupCounts(ctx, `SELECT status, count(*) FROM equipment GROUP BY status`)
}

func (r *equipmentRepository) CategoryCounts(ctx context.Context) (map[string]int32, error) {
	return r.groupCounts(ctx, `SELECT category, count(*) FROM equipment GROUP BY category`)
}

func (r *equipmentRepository) groupCounts(ctx context.Context, query string) (map[string]int32, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int32)
	for rows.Next() {
		var key string
		var count int32
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		counts[key] = count
	}
	return counts, rows.Err()
}

func (r *equipmentRepository) OwnerListingValue(ctx context.Context, ownerID int32) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(sum(price), 0) FROM equipment WHERE owner_id = $1`, ownerID).Scan(&total)
	return total, err
}
