package repository

import (
	"context"
	"time"

	"medishare-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id int32) error
	Count(ctx context.Context) (int32, error)
}

type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, id int32) (*domain.Equipment, error)
	Update(ctx context.Context, eq *domain.Equipment) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Equipment, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Equipment, error)
	ListCreatedSince(ctx context.Context, since time.Time) ([]domain.Equipment, error)

	// SetAvailabilityIf flips availability only when the current value still
	// matches expected. It reports whether the write was applied.
	SetAvailabilityIf(ctx context.Context, id int32, expected, next domain.Availability) (bool, error)

	Count(ctx context.Context) (int32, error)
	CountByOwner(ctx context.Context, ownerID int32, status domain.ListingStatus) (int32, error)
	StatusCounts(ctx context.Context) (map[string]int32, error)
	CategoryCounts(ctx context.Context) (map[string]int32, error)
	OwnerListingValue(ctx context.Context, ownerID int32) (float64, error)
}

type OrderRepository interface {
	// CreateCheckout persists the order with its items and, in the same
	// transaction, conditionally flips every ordered equipment's availability
	// from available to rented. If any flip applies to zero rows the whole
	// transaction rolls back and domain.ErrEquipmentUnavailable is returned,
	// so the losing side of a checkout race leaves no partial order behind.
	CreateCheckout(ctx context.Context, order *domain.Order) error

	GetByID(ctx context.Context, id int32) (*domain.Order, error)
	ListByRenter(ctx context.Context, renterID int32) ([]domain.Order, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Order, error)
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Order, error)

	// UpdateStatusIf transitions the order's status only when it still equals
	// expected. It reports whether the write was applied.
	UpdateStatusIf(ctx context.Context, id int32, expected, next domain.OrderStatus) (bool, error)

	CountByStatus(ctx context.Context, status domain.OrderStatus) (int32, error)
	CompletedRevenue(ctx context.Context) (float64, error)
	MonthlyCounts(ctx context.Context, months int) ([]domain.MonthlyOrderCount, error)
}

type FavoriteRepository interface {
	Create(ctx context.Context, fav *domain.Favorite) error
	Get(ctx context.Context, userID, equipmentID int32) (*domain.Favorite, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.Favorite, error)
	Delete(ctx context.Context, userID, equipmentID int32) error
	DeleteByEquipment(ctx context.Context, equipmentID int32) error
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	ListConversation(ctx context.Context, userID, otherID int32) ([]domain.Message, error)
	ListPartners(ctx context.Context, userID int32) ([]domain.User, error)
}

type SettingsRepository interface {
	// Get returns the singleton settings row, creating it with defaults when
	// none exists yet.
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, settings *domain.Settings) error
}

type SubscriberRepository interface {
	Create(ctx context.Context, sub *domain.Subscriber) error
	GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error)
	Reactivate(ctx context.Context, email string) error
	Deactivate(ctx context.Context, email string) error
	ListActive(ctx context.Context) ([]domain.Subscriber, error)
}
