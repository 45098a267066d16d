package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"medishare-backend/internal/domain"
	"medishare-backend/internal/repository"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, user_id, owner_id, payment_method, COALESCE(payment_proof, ''), first_name, last_name, email, cin, address, city, phone, total_amount, deposit_amount, status, created_on`

func scanOrder(row interface{ Scan(...any) error }, o *domain.Order) error {
	return row.Scan(&o.ID, &o.UserID, &o.OwnerID, &o.PaymentMethod, &o.PaymentProof,
		&o.PersonalInfo.FirstName, &o.PersonalInfo.LastName, &o.PersonalInfo.Email,
		&o.PersonalInfo.CIN, &o.PersonalInfo.Address, &o.PersonalInfo.City, &o.PersonalInfo.Phone,
		&o.TotalAmount, &o.DepositAmount, &o.Status, &o.CreatedOn)
}

// CreateCheckout inserts the order and its items, then flips every item's
// equipment from available to rented with a conditional update, all inside one
// transaction. A flip that matches zero rows means another checkout won the
// race for that equipment; the transaction rolls back so neither the order nor
// any partial availability change survives.
func (r *orderRepository) CreateCheckout(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO orders (user_id, owner_id, payment_method, payment_proof, first_name, last_name, email, cin, address, city, phone, total_amount, deposit_amount, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	err = tx.QueryRowContext(ctx, query, o.UserID, o.OwnerID, o.PaymentMethod, o.PaymentProof,
		o.PersonalInfo.FirstName, o.PersonalInfo.LastName, o.PersonalInfo.Email, o.PersonalInfo.CIN,
		o.PersonalInfo.Address, o.PersonalInfo.City, o.PersonalInfo.Phone,
		o.TotalAmount, o.DepositAmount, o.Status, time.Now()).Scan(&o.ID)
	if err != nil {
		return err
	}

	itemQuery := `INSERT INTO order_items (order_id, equipment_id, quantity, rental_days, price, rental_period, start_date, end_date)
	              VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	flipQuery := `UPDATE equipment SET availability = $1 WHERE id = $2 AND availability = $3`

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID
		err = tx.QueryRowContext(ctx, itemQuery, o.ID, item.EquipmentID, item.Quantity, item.RentalDays,
			item.Price, item.RentalPeriod, item.StartDate, item.EndDate).Scan(&item.ID)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, flipQuery, domain.AvailabilityRented, item.EquipmentID, domain.AvailabilityAvailable)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("equipment %d: %w", item.EquipmentID, domain.ErrEquipmentUnavailable)
		}
	}

	return tx.Commit()
}

func (r *orderRepository) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	o := &domain.Order{}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	err := scanOrder(r.db.QueryRowContext(ctx, query, id), o)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) loadItems(ctx context.Context, o *domain.Order) error {
	query := `SELECT id, order_id, equipment_id, quantity, rental_days, price, rental_period, start_date, end_date FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.EquipmentID, &item.Quantity, &item.RentalDays, &item.Price, &item.RentalPeriod, &item.StartDate, &item.EndDate); err != nil {
			return err
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}

func (r *orderRepository) ListByRenter(ctx context.Context, renterID int32) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_on DESC`
	return r.queryOrders(ctx, query, renterID)
}

func (r *orderRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE owner_id = $1 ORDER BY created_on DESC`
	return r.queryOrders(ctx, query, ownerID)
}

func (r *orderRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status = 'pending' AND created_on < $1 ORDER BY created_on`
	return r.queryOrders(ctx, query, cutoff)
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if err := r.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// UpdateStatusIf applies the transition only when the order's status still
// equals expected, so two concurrent transition requests cannot both land.
func (r *orderRepository) UpdateStatusIf(ctx context.Context, id int32, expected, next domain.OrderStatus) (bool, error) {
	query := `UPDATE orders SET status = $1 WHERE id = $2 AND status = $3`
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

func (r *orderRepository) CountByStatus(ctx context.Context, status domain.OrderStatus) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM orders WHERE status = $1`, status).Scan(&count)
	return count, err
}

func (r *orderRepository) CompletedRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(sum(total_amount), 0) FROM orders WHERE status = 'completed'`).Scan(&total)
	return total, err
}

func (r *orderRepository) MonthlyCounts(ctx context.Context, months int) ([]domain.MonthlyOrderCount, error) {
	query := `SELECT EXTRACT(YEAR FROM created_on)::int, EXTRACT(MONTH FROM created_on)::int, count(*)
	          FROM orders GROUP BY 1, 2 ORDER BY 1, 2 LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, months)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []domain.MonthlyOrderCount
	for rows.Next() {
		var c domain.MonthlyOrderCount
		if err := rows.Scan(&c.Year, &c.Month, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
