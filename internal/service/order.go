package service

import (
	"context"
	"errors"
	"fmt"

	"medishare-backend/internal/domain"
	"medishare-backend/internal/logger"
	"medishare-backend/internal/repository"
)

type orderService struct {
	orderRepo     repository.OrderRepository
	equipmentRepo repository.EquipmentRepository
	userRepo      repository.UserRepository
	emailSvc      EmailService
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	equipmentRepo repository.EquipmentRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		equipmentRepo: equipmentRepo,
		userRepo:      userRepo,
		emailSvc:      emailSvc,
	}
}

// ownerGroup is the slice of a cart belonging to one equipment owner,
// preserving the original item order.
type ownerGroup struct {
	ownerID int32
	items   []domain.OrderItem
}

func (s *orderService) Checkout(ctx context.Context, renterID *int32, req CheckoutRequest) ([]domain.Order, error) {
	if err := validateCheckout(req); err != nil {
		return nil, err
	}

	groups, err := s.partitionByOwner(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	var created []domain.Order
	for _, group := range groups {
		var total float64
		for _, item := range group.items {
			total += item.Subtotal()
		}

		order := &domain.Order{
			UserID:        renterID,
			OwnerID:       group.ownerID,
			Items:         group.items,
			PaymentMethod: req.PaymentMethod,
			PaymentProof:  req.PaymentProof,
			PersonalInfo:  req.PersonalInfo,
			TotalAmount:   total,
			Status:        domain.OrderStatusPending,
		}

		if err := s.orderRepo.CreateCheckout(ctx, order); err != nil {
			if errors.Is(err, domain.ErrEquipmentUnavailable) {
				// Another checkout won the race for one of this owner's
				// items. Orders already committed for earlier owners stay.
				return created, &domain.ConflictError{Reason: "equipment was taken by a concurrent order", Err: err}
			}
			return created, fmt.Errorf("failed to create order for owner %d: %w", group.ownerID, err)
		}
		created = append(created, *order)

		s.notifyOwner(ctx, order)
	}

	return created, nil
}

// validateCheckout rejects a malformed submission before anything is read or
// written.
func validateCheckout(req CheckoutRequest) error {
	fields := make(map[string]string)

	if len(req.Items) == 0 {
		fields["items"] = "at least one item is required"
	}
	for i, item := range req.Items {
		if item.Quantity < 1 {
			fields[fmt.Sprintf("items[%d].quantity", i)] = "must be at least 1"
		}
		if item.RentalDays < 1 {
			fields[fmt.Sprintf("items[%d].rental_days", i)] = "must be at least 1"
		}
		if item.Price <= 0 {
			fields[fmt.Sprintf("items[%d].price", i)] = "must be greater than zero"
		}
	}

	if !req.PaymentMethod.Valid() {
		fields["payment_method"] = "unknown payment method"
	} else if req.PaymentMethod.RequiresProof() && req.PaymentProof == "" {
		fields["payment_proof"] = fmt.Sprintf("required for payment method %q", req.PaymentMethod)
	}

	info := req.PersonalInfo
	if info.FirstName == "" {
		fields["personal_info.first_name"] = "required"
	}
	if info.LastName == "" {
		fields["personal_info.last_name"] = "required"
	}
	if info.Email == "" {
		fields["personal_info.email"] = "required"
	}
	if info.Phone == "" {
		fields["personal_info.phone"] = "required"
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// partitionByOwner checks every item's equipment and groups the cart by
// owner. Any missing or unavailable equipment rejects the whole submission
// before a single order is created. Groups come out in first-appearance
// order, and items keep their relative order within each group.
func (s *orderService) partitionByOwner(ctx context.Context, items []CheckoutItem) ([]ownerGroup, error) {
	var order []int32
	grouped := make(map[int32][]domain.OrderItem)

	for _, item := range items {
		eq, err := s.equipmentRepo.GetByID(ctx, item.EquipmentID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("equipment %d: %w", item.EquipmentID, domain.ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load equipment %d: %w", item.EquipmentID, err)
		}
		if eq.Availability != domain.AvailabilityAvailable {
			return nil, &domain.ConflictError{
				Reason: fmt.Sprintf("equipment %d is no longer available", item.EquipmentID),
				Err:    domain.ErrEquipmentUnavailable,
			}
		}

		if _, seen := grouped[eq.OwnerID]; !seen {
			order = append(order, eq.OwnerID)
		}
		grouped[eq.OwnerID] = append(grouped[eq.OwnerID], domain.OrderItem{
			EquipmentID:  item.EquipmentID,
			Quantity:     item.Quantity,
			RentalDays:   item.RentalDays,
			Price:        item.Price,
			RentalPeriod: item.RentalPeriod,
			StartDate:    item.StartDate,
			EndDate:      item.EndDate,
		})
	}

	groups := make([]ownerGroup, 0, len(order))
	for _, ownerID := range order {
		groups = append(groups, ownerGroup{ownerID: ownerID, items: grouped[ownerID]})
	}
	return groups, nil
}

// transitions lists the legal moves of the order state machine.
var transitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.OrderStatusPending:  {domain.OrderStatusApproved, domain.OrderStatusRejected, domain.OrderStatusCancelled},
	domain.OrderStatusApproved: {domain.OrderStatusCompleted},
}

func transitionAllowed(from, to domain.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s *orderService) UpdateStatus(ctx context.Context, actorID, orderID int32, next domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := authorizeTransition(order, actorID, next); err != nil {
		return nil, err
	}

	if !transitionAllowed(order.Status, next) {
		return nil, &domain.ConflictError{
			Reason: fmt.Sprintf("order %d cannot move from %s to %s", orderID, order.Status, next),
			Err:    domain.ErrInvalidTransition,
		}
	}

	applied, err := s.orderRepo.UpdateStatusIf(ctx, orderID, order.Status, next)
	if err != nil {
		return nil, fmt.Errorf("failed to update order %d status: %w", orderID, err)
	}
	if !applied {
		// A concurrent request moved the order first; applying our side
		// effects anyway could restore availability twice.
		return nil, &domain.ConflictError{
			Reason: fmt.Sprintf("order %d status changed concurrently", orderID),
			Err:    domain.ErrInvalidTransition,
		}
	}
	order.Status = next

	if next == domain.OrderStatusRejected || next == domain.OrderStatusCancelled {
		if err := s.restoreAvailability(ctx, order); err != nil {
			// Surfaced, never swallowed: a missed restoration strands the
			// equipment as rented forever.
			return order, err
		}
	}

	s.notifyRenter(ctx, order)
	return order, nil
}

// authorizeTransition enforces who may request which transition before any
// write happens: the owner approves, rejects and completes; the renter
// cancels.
func authorizeTransition(order *domain.Order, actorID int32, next domain.OrderStatus) error {
	switch next {
	case domain.OrderStatusApproved, domain.OrderStatusRejected, domain.OrderStatusCompleted:
		if order.OwnerID != actorID {
			return domain.ErrUnauthorized
		}
	case domain.OrderStatusCancelled:
		if order.UserID == nil || *order.UserID != actorID {
			return domain.ErrUnauthorized
		}
	default:
		return &domain.ConflictError{
			Reason: fmt.Sprintf("unknown target status %q", next),
			Err:    domain.ErrInvalidTransition,
		}
	}
	return nil
}

// restoreAvailability flips every item of a rejected or cancelled order back
// to available. Each flip is conditional on the equipment still being
// rented, so a double restoration cannot happen. All failures are collected
// and reported.
func (s *orderService) restoreAvailability(ctx context.Context, order *domain.Order) error {
	var errs []error
	for _, item := range order.Items {
		applied, err := s.equipmentRepo.SetAvailabilityIf(ctx, item.EquipmentID, domain.AvailabilityRented, domain.AvailabilityAvailable)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to restore equipment %d: %w", item.EquipmentID, err))
			continue
		}
		if !applied {
			errs = append(errs, fmt.Errorf("equipment %d was not in rented state during restoration", item.EquipmentID))
		}
	}
	return errors.Join(errs...)
}

func (s *orderService) Get(ctx context.Context, actorID, orderID int32) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.OwnerID != actorID && (order.UserID == nil || *order.UserID != actorID) {
		return nil, domain.ErrUnauthorized
	}
	return order, nil
}

func (s *orderService) ListForRenter(ctx context.Context, renterID int32) ([]domain.Order, error) {
	return s.orderRepo.ListByRenter(ctx, renterID)
}

func (s *orderService) ListForOwner(ctx context.Context, ownerID int32) ([]domain.Order, error) {
	return s.orderRepo.ListByOwner(ctx, ownerID)
}

func (s *orderService) notifyOwner(ctx context.Context, order *domain.Order) {
	owner, err := s.userRepo.GetByID(ctx, order.OwnerID)
	if err != nil {
		logger.Warn("Could not load owner for order notification", "order_id", order.ID, "owner_id", order.OwnerID, "error", err)
		return
	}
	if err := s.emailSvc.SendOrderReceivedNotification(ctx, owner.Email, owner.FullName, order); err != nil {
		logger.Warn("Failed to send order notification", "order_id", order.ID, "error", err)
	}
}

func (s *orderService) notifyRenter(ctx context.Context, order *domain.Order) {
	if order.PersonalInfo.Email == "" {
		return
	}
	if err := s.emailSvc.SendOrderStatusNotification(ctx, order.PersonalInfo.Email, order); err != nil {
		logger.Warn("Failed to send status notification", "order_id", order.ID, "error", err)
	}
}
