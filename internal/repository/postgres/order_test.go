package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"medishare-backend/internal/domain"
)

func checkoutOrder() *domain.Order {
	return &domain.Order{
		OwnerID:       10,
		PaymentMethod: domain.PaymentMethodCash,
		PersonalInfo: domain.PersonalInfo{
			FirstName: "Sara", LastName: "Alami", Email: "sara@example.com", Phone: "0600000000",
		},
		TotalAmount: 100,
		Status:      domain.OrderStatusPending,
		Items: []domain.OrderItem{
			{EquipmentID: 1, Quantity: 1, RentalDays: 2, Price: 50},
		},
	}
}

func TestOrderRepository_CreateCheckout(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		order := checkoutOrder()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO orders").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
		mock.ExpectQuery("INSERT INTO order_items").
			WithArgs(int32(5), int32(1), int32(1), int32(2), 50.0, domain.RentalPeriod(""), nil, nil).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectExec("UPDATE equipment SET availability").
			WithArgs(domain.AvailabilityRented, int32(1), domain.AvailabilityAvailable).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.CreateCheckout(ctx, order)
		assert.NoError(t, err)
		assert.Equal(t, int32(5), order.ID)
		assert.Equal(t, int32(5), order.Items[0].OrderID)
		assert.Equal(t, int32(7), order.Items[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Lost Availability Race Rolls Back", func(t *testing.T) {
		order := checkoutOrder()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO orders").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(6))
		mock.ExpectQuery("INSERT INTO order_items").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
		// Zero rows affected: the equipment was no longer available.
		mock.ExpectExec("UPDATE equipment SET availability").
			WithArgs(domain.AvailabilityRented, int32(1), domain.AvailabilityAvailable).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.CreateCheckout(ctx, order)
		assert.ErrorIs(t, err, domain.ErrEquipmentUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		orderRows := sqlmock.NewRows([]string{"id", "user_id", "owner_id", "payment_method", "payment_proof", "first_name", "last_name", "email", "cin", "address", "city", "phone", "total_amount", "deposit_amount", "status", "created_on"}).
			AddRow(1, 7, 10, "cash", "", "Sara", "Alami", "sara@example.com", "", "", "", "0600000000", 100.0, 0.0, "pending", time.Now())
		mock.ExpectQuery("SELECT (.+) FROM orders WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(orderRows)

		itemRows := sqlmock.NewRows([]string{"id", "order_id", "equipment_id", "quantity", "rental_days", "price", "rental_period", "start_date", "end_date"}).
			AddRow(1, 1, 1, 1, 2, 50.0, "day", nil, nil)
		mock.ExpectQuery("SELECT (.+) FROM order_items WHERE order_id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(itemRows)

		order, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, int32(10), order.OwnerID)
		assert.Equal(t, int32(7), *order.UserID)
		assert.Len(t, order.Items, 1)
		assert.Equal(t, domain.OrderStatusPending, order.Status)
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM orders WHERE id = \\$1").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestOrderRepository_UpdateStatusIf(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	t.Run("Applied", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(domain.OrderStatusApproved, int32(1), domain.OrderStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		applied, err := repo.UpdateStatusIf(ctx, 1, domain.OrderStatusPending, domain.OrderStatusApproved)
		assert.NoError(t, err)
		assert.True(t, applied)
	})

	t.Run("Status Moved Concurrently", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(domain.OrderStatusApproved, int32(1), domain.OrderStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))

		applied, err := repo.UpdateStatusIf(ctx, 1, domain.OrderStatusPending, domain.OrderStatusApproved)
		assert.NoError(t, err)
		assert.False(t, applied)
	})
}

func TestOrderRepository_CompletedRevenue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewOrderRepository(db)

	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(1234.5))

	total, err := repo.CompletedRevenue(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1234.5, total)
}
