package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"medishare-backend/internal/domain"
)

func newOrderTestService() (*MockOrderRepo, *MockEquipmentRepo, *MockUserRepo, *MockEmailService, OrderService) {
	orderRepo := new(MockOrderRepo)
	equipmentRepo := new(MockEquipmentRepo)
	userRepo := new(MockUserRepo)
	emailSvc := new(MockEmailService)
	svc := NewOrderService(orderRepo, equipmentRepo, userRepo, emailSvc)
	return orderRepo, equipmentRepo, userRepo, emailSvc, svc
}

func availableEquipment(id, ownerID int32) *domain.Equipment {
	return &domain.Equipment{
		ID:           id,
		OwnerID:      ownerID,
		Name:         "Wheelchair",
		Category:     "Mobility",
		Price:        50,
		Availability: domain.AvailabilityAvailable,
	}
}

func validCheckout(items ...CheckoutItem) CheckoutRequest {
	return CheckoutRequest{
		Items:         items,
		PaymentMethod: domain.PaymentMethodCash,
		PersonalInfo: domain.PersonalInfo{
			FirstName: "Sara",
			LastName:  "Alami",
			Email:     "sara@example.com",
			Phone:     "0600000000",
		},
	}
}

func TestOrderService_Checkout_SplitsByOwner(t *testing.T) {
	orderRepo, equipmentRepo, userRepo, emailSvc, svc := newOrderTestService()
	ctx := context.Background()
	renterID := int32(7)

	// Items interleave two owners; owner 10 appears first.
	equipmentRepo.On("GetByID", ctx, int32(1)).Return(availableEquipment(1, 10), nil)
	equipmentRepo.On("GetByID", ctx, int32(2)).Return(availableEquipment(2, 20), nil)
	equipmentRepo.On("GetByID", ctx, int32(3)).Return(availableEquipment(3, 10), nil)

	orderRepo.On("CreateCheckout", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)
	userRepo.On("GetByID", ctx, int32(10)).Return(&domain.User{ID: 10, Email: "owner10@test.com", FullName: "Owner Ten"}, nil)
	userRepo.On("GetByID", ctx, int32(20)).Return(&domain.User{ID: 20, Email: "owner20@test.com", FullName: "Owner Twenty"}, nil)
	emailSvc.On("SendOrderReceivedNotification", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	orders, err := svc.Checkout(ctx, &renterID, validCheckout(
		CheckoutItem{EquipmentID: 1, Quantity: 1, RentalDays: 2, Price: 50},
		CheckoutItem{EquipmentID: 2, Quantity: 2, RentalDays: 3, Price: 30},
		CheckoutItem{EquipmentID: 3, Quantity: 1, RentalDays: 1, Price: 10},
	))

	assert.NoError(t, err)
	assert.Len(t, orders, 2)

	// First-appearance ordering: owner 10 before owner 20.
	assert.Equal(t, int32(10), orders[0].OwnerID)
	assert.Equal(t, int32(20), orders[1].OwnerID)

	// Items keep their relative order within each group.
	assert.Len(t, orders[0].Items, 2)
	assert.Equal(t, int32(1), orders[0].Items[0].EquipmentID)
	assert.Equal(t, int32(3), orders[0].Items[1].EquipmentID)
	assert.Len(t, orders[1].Items, 1)

	// Totals are per owner: 50*1*2 + 10*1*1 and 30*2*3.
	assert.Equal(t, float64(110), orders[0].TotalAmount)
	assert.Equal(t, float64(180), orders[1].TotalAmount)

	for _, order := range orders {
		assert.Equal(t, domain.OrderStatusPending, order.Status)
		assert.Equal(t, renterID, *order.UserID)
	}
}

func TestOrderService_Checkout_Validation(t *testing.T) {
	_, _, _, _, svc := newOrderTestService()
	ctx := context.Background()

	t.Run("Empty Cart", func(t *testing.T) {
		_, err := svc.Checkout(ctx, nil, validCheckout())
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "items")
	})

	t.Run("Bad Quantities", func(t *testing.T) {
		_, err := svc.Checkout(ctx, nil, validCheckout(
			CheckoutItem{EquipmentID: 1, Quantity: 0, RentalDays: 0, Price: -5},
		))
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "items[0].quantity")
		assert.Contains(t, vErr.Fields, "items[0].rental_days")
		assert.Contains(t, vErr.Fields, "items[0].price")
	})

	t.Run("Unknown Payment Method", func(t *testing.T) {
		req := validCheckout(CheckoutItem{EquipmentID: 1, Quantity: 1, RentalDays: 1, Price: 10})
		req.PaymentMethod = "crypto"
		_, err := svc.Checkout(ctx, nil, req)
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "payment_method")
	})

	t.Run("Proof Required For Bank", func(t *testing.T) {
		req := validCheckout(CheckoutItem{EquipmentID: 1, Quantity: 1, RentalDays: 1, Price: 10})
		req.PaymentMethod = domain.PaymentMethodBank
		_, err := svc.Checkout(ctx, nil, req)
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "payment_proof")
	})

	t.Run("Missing Personal Info", func(t *testing.T) {
		req := validCheckout(CheckoutItem{EquipmentID: 1, Quantity: 1, RentalDays: 1, Price: 10})
		req.PersonalInfo = domain.PersonalInfo{}
		_, err := svc.Checkout(ctx, nil, req)
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "personal_info.first_name")
		assert.Contains(t, vErr.Fields, "personal_info.phone")
	})
}

func TestOrderService_Checkout_UnavailableEquipment(t *testing.T) {
	orderRepo, equipmentRepo, _, _, svc := newOrderTestService()
	ctx := context.Background()

	rented := availableEquipment(1, 10)
	rented.Availability = domain.AvailabilityRented
	equipmentRepo.On("GetByID", ctx, int32(1)).Return(rented, nil)

	orders, err := svc.Checkout(ctx, nil, validCheckout(
		CheckoutItem{EquipmentID: 1, Quantity: 1, RentalDays: 1, Price: 10},
	))

	assert.Nil(t, orders)
	var cErr *domain.ConflictError
	assert.ErrorAs(t, err, &cErr)
	assert.ErrorIs(t, err, domain.ErrEquipmentUnavailable)
	orderRepo.AssertNotCalled(t, "CreateCheckout", mock.Anything, mock.Anything)
}

func TestOrderService_Checkout_MissingEquipment(t *testing.T) {
	_, equipmentRepo, _, _, svc := newOrderTestService()
	ctx := context.Background()

	equipmentRepo.On("GetByID", ctx, int32(99)).Return(nil, domain.ErrNotFound)

	_, err := svc.Checkout(ctx, nil, validCheckout(
		CheckoutItem{EquipmentID: 99, Quantity: 1, RentalDays: 1, Price: 10},
	))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderService_Checkout_ConcurrentConflictKeepsEarlierOrders(t *testing.T) {
	orderRepo, equipmentRepo, userRepo, emailSvc, svc := newOrderTestService()
	ctx := context.Background()

	equipmentRepo.On("GetByID", ctx, int32(1)).Return(availableEquipment(1, 10), nil)
	equipmentRepo.On("GetByID", ctx, int32(2)).Return(availableEquipment(2, 20), nil)

	// Owner 10's order commits; owner 20's loses the availability race.
	orderRepo.On("CreateCheckout", ctx, mock.MatchedBy(func(o *domain.Order) bool {
		return o.OwnerID == 10
	})).Return(nil)
	orderRepo.On("CreateCheckout", ctx, mock.MatchedBy(func(o *domain.Order) bool {
		return o.OwnerID == 20
	})).Return(domain.ErrEquipmentUnavailable)

	userRepo.On("GetByID", ctx, int32(10)).Return(&domain.User{ID: 10, Email: "o@test.com"}, nil)
	emailSvc.On("SendOrderReceivedNotification", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	orders, err := svc.Checkout(ctx, nil, validCheckout(
		CheckoutItem{EquipmentID: 1, Quantity: 1, RentalDays: 1, Price: 10},
		CheckoutItem{EquipmentID: 2, Quantity: 1, RentalDays: 1, Price: 10},
	))

	var cErr *domain.ConflictError
	assert.ErrorAs(t, err, &cErr)
	assert.ErrorIs(t, err, domain.ErrEquipmentUnavailable)
	// The committed order for owner 10 is reported back despite the error.
	assert.Len(t, orders, 1)
	assert.Equal(t, int32(10), orders[0].OwnerID)
}

func pendingOrder(id, ownerID int32, renterID *int32) *domain.Order {
	return &domain.Order{
		ID:      id,
		UserID:  renterID,
		OwnerID: ownerID,
		Items: []domain.OrderItem{
			{EquipmentID: 1, Quantity: 1, RentalDays: 2, Price: 50},
		},
		PersonalInfo: domain.PersonalInfo{Email: "renter@test.com"},
		TotalAmount:  100,
		Status:       domain.OrderStatusPending,
	}
}

func TestOrderService_UpdateStatus_Approve(t *testing.T) {
	orderRepo, _, _, emailSvc, svc := newOrderTestService()
	ctx := context.Background()
	ownerID := int32(10)

	orderRepo.On("GetByID", ctx, int32(1)).Return(pendingOrder(1, ownerID, nil), nil)
	orderRepo.On("UpdateStatusIf", ctx, int32(1), domain.OrderStatusPending, domain.OrderStatusApproved).Return(true, nil)
	emailSvc.On("SendOrderStatusNotification", ctx, "renter@test.com", mock.Anything).Return(nil)

	order, err := svc.UpdateStatus(ctx, ownerID, 1, domain.OrderStatusApproved)
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderStatusApproved, order.Status)
}

func TestOrderService_UpdateStatus_RejectRestoresAvailability(t *testing.T) {
	orderRepo, equipmentRepo, _, emailSvc, svc := newOrderTestService()
	ctx := context.Background()
	ownerID := int32(10)

	order := pendingOrder(1, ownerID, nil)
	order.Items = append(order.Items, domain.OrderItem{EquipmentID: 2, Quantity: 1, RentalDays: 1, Price: 20})

	orderRepo.On("GetByID", ctx, int32(1)).Return(order, nil)
	orderRepo.On("UpdateStatusIf", ctx, int32(1), domain.OrderStatusPending, domain.OrderStatusRejected).Return(true, nil)
	equipmentRepo.On("SetAvailabilityIf", ctx, int32(1), domain.AvailabilityRented, domain.AvailabilityAvailable).Return(true, nil)
	equipmentRepo.On("SetAvailabilityIf", ctx, int32(2), domain.AvailabilityRented, domain.AvailabilityAvailable).Return(true, nil)
	emailSvc.On("SendOrderStatusNotification", ctx, "renter@test.com", mock.Anything).Return(nil)

	_, err := svc.UpdateStatus(ctx, ownerID, 1, domain.OrderStatusRejected)
	assert.NoError(t, err)
	equipmentRepo.AssertExpectations(t)
}

func TestOrderService_UpdateStatus_RestorationFailureSurfaces(t *testing.T) {
	orderRepo, equipmentRepo, _, _, svc := newOrderTestService()
	ctx := context.Background()
	ownerID := int32(10)

	orderRepo.On("GetByID", ctx, int32(1)).Return(pendingOrder(1, ownerID, nil), nil)
	orderRepo.On("UpdateStatusIf", ctx, int32(1), domain.OrderStatusPending, domain.OrderStatusRejected).Return(true, nil)
	equipmentRepo.On("SetAvailabilityIf", ctx, int32(1), domain.AvailabilityRented, domain.AvailabilityAvailable).
		Return(false, errors.New("connection reset"))

	order, err := svc.UpdateStatus(ctx, ownerID, 1, domain.OrderStatusRejected)
	assert.Error(t, err)
	// The transition itself still happened.
	assert.Equal(t, domain.OrderStatusRejected, order.Status)
}

func TestOrderService_UpdateStatus_RenterCancels(t *testing.T) {
	orderRepo, equipmentRepo, _, emailSvc, svc := newOrderTestService()
	ctx := context.Background()
	renterID := int32(7)

	orderRepo.On("GetByID", ctx, int32(1)).Return(pendingOrder(1, 10, &renterID), nil)
	orderRepo.On("UpdateStatusIf", ctx, int32(1), domain.OrderStatusPending, domain.OrderStatusCancelled).Return(true, nil)
	equipmentRepo.On("SetAvailabilityIf", ctx, int32(1), domain.AvailabilityRented, domain.AvailabilityAvailable).Return(true, nil)
	emailSvc.On("SendOrderStatusNotification", ctx, "renter@test.com", mock.Anything).Return(nil)

	order, err := svc.UpdateStatus(ctx, renterID, 1, domain.OrderStatusCancelled)
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, order.Status)
}

func TestOrderService_UpdateStatus_Authorization(t *testing.T) {
	ctx := context.Background()
	renterID := int32(7)

	t.Run("Stranger Cannot Approve", func(t *testing.T) {
		orderRepo, _, _, _, svc := newOrderTestService()
		orderRepo.On("GetByID", ctx, int32(1)).Return(pendingOrder(1, 10, &renterID), nil)

		_, err := svc.UpdateStatus(ctx, int32(99), 1, domain.OrderStatusApproved)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		orderRepo.AssertNotCalled(t, "UpdateStatusIf", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Owner Cannot Cancel", func(t *testing.T) {
		orderRepo, _, _, _, svc := newOrderTestService()
		orderRepo.On("GetByID", ctx, int32(1)).Return(pendingOrder(1, 10, &renterID), nil)

		_, err := svc.UpdateStatus(ctx, int32(10), 1, domain.OrderStatusCancelled)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Guest Order Cannot Be Cancelled", func(t *testing.T) {
		orderRepo, _, _, _, svc := newOrderTestService()
		orderRepo.On("GetByID", ctx, int32(1)).Return(pendingOrder(1, 10, nil), nil)

		_, err := svc.UpdateStatus(ctx, int32(7), 1, domain.OrderStatusCancelled)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestOrderService_UpdateStatus_IllegalTransitions(t *testing.T) {
	ctx := context.Background()
	ownerID := int32(10)

	cases := []struct {
		name string
		from domain.OrderStatus
		to   domain.OrderStatus
	}{
		{"Pending To Completed", domain.OrderStatusPending, domain.OrderStatusCompleted},
		{"Rejected To Approved", domain.OrderStatusRejected, domain.OrderStatusApproved},
		{"Completed To Rejected", domain.OrderStatusCompleted, domain.OrderStatusRejected},
		{"Cancelled To Completed", domain.OrderStatusCancelled, domain.OrderStatusCompleted},
		{"Approved To Approved", domain.OrderStatusApproved, domain.OrderStatusApproved},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			orderRepo, _, _, _, svc := newOrderTestService()
			order := pendingOrder(1, ownerID, nil)
			order.Status = tc.from
			orderRepo.On("GetByID", ctx, int32(1)).Return(order, nil)

			_, err := svc.UpdateStatus(ctx, ownerID, 1, tc.to)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			orderRepo.AssertNotCalled(t, "UpdateStatusIf", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestOrderService_UpdateStatus_LostRace(t *testing.T) {
	orderRepo, equipmentRepo, _, _, svc := newOrderTestService()
	ctx := context.Background()
	ownerID := int32(10)

	orderRepo.On("GetByID", ctx, int32(1)).Return(pendingOrder(1, ownerID, nil), nil)
	// Someone else transitioned the order between our read and our write.
	orderRepo.On("UpdateStatusIf", ctx, int32(1), domain.OrderStatusPending, domain.OrderStatusRejected).Return(false, nil)

	_, err := svc.UpdateStatus(ctx, ownerID, 1, domain.OrderStatusRejected)
	var cErr *domain.ConflictError
	assert.ErrorAs(t, err, &cErr)
	// No side effects after a lost race.
	equipmentRepo.AssertNotCalled(t, "SetAvailabilityIf", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_Get_Authorization(t *testing.T) {
	ctx := context.Background()
	renterID := int32(7)

	t.Run("Owner Sees Order", func(t *testing.T) {
		orderRepo, _, _, _, svc := newOrderTestService()
		orderRepo.On("GetByID", ctx, int32(1)).Return(pendingOrder(1, 10, &renterID), nil)
		order, err := svc.Get(ctx, 10, 1)
		assert.NoError(t, err)
		assert.NotNil(t, order)
	})

	t.Run("Renter Sees Order", func(t *testing.T) {
		orderRepo, _, _, _, svc := newOrderTestService()
		orderRepo.On("GetByID", ctx, int32(1)).Return(pendingOrder(1, 10, &renterID), nil)
		order, err := svc.Get(ctx, renterID, 1)
		assert.NoError(t, err)
		assert.NotNil(t, order)
	})

	t.Run("Stranger Denied", func(t *testing.T) {
		orderRepo, _, _, _, svc := newOrderTestService()
		orderRepo.On("GetByID", ctx, int32(1)).Return(pendingOrder(1, 10, &renterID), nil)
		_, err := svc.Get(ctx, 42, 1)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
