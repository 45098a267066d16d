package service

import (
	"context"

	"medishare-backend/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, fullName, email, phone, password string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	GetMembership(ctx context.Context, userID int32) (*domain.User, error)
	OwnerStats(ctx context.Context, userID int32) (*domain.OwnerStats, error)
}

type EquipmentService interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	Get(ctx context.Context, id int32) (*domain.Equipment, error)
	List(ctx context.Context) ([]domain.Equipment, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Equipment, error)
	Update(ctx context.Context, ownerID, id int32, patch domain.EquipmentPatch) (*domain.Equipment, error)
	Delete(ctx context.Context, ownerID, id int32) error
}

// CheckoutItem is one requested cart line.
type CheckoutItem struct {
	EquipmentID  int32               `json:"equipment_id"`
	Quantity     int32               `json:"quantity"`
	RentalDays   int32               `json:"rental_days"`
	Price        float64             `json:"price"`
	RentalPeriod domain.RentalPeriod `json:"rental_period"`
	StartDate    *string             `json:"start_date,omitempty"`
	EndDate      *string             `json:"end_date,omitempty"`
}

// CheckoutRequest is a whole cart submission. Items may span several owners;
// the workflow splits them into one order per owner.
type CheckoutRequest struct {
	Items         []CheckoutItem       `json:"items"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	PersonalInfo  domain.PersonalInfo  `json:"personal_info"`
	PaymentProof  string               `json:"payment_proof,omitempty"`
}

/// OrderService is the order workflow engine: cart validation, owner
// partitioning, per-owner order creation, and the status state machine with
// its availability side effects.
type OrderService interface {
	// Checkout validates every line item, partitions the cart by equipment
	// owner, and creates one pending order per owner. On an availability
	// conflict it stops, returning the orders already committed for earlier
	// owners together with the conflict error.
	Checkout(ctx context.Context, renterID *int32, req CheckoutRequest) ([]domain.Order, error)

	// UpdateStatus applies one state-machine transition on behalf of actorID.
	// Owners approve, reject and complete; renters cancel pending orders.
	// Rejection and cancellation restore every item's availability.
	UpdateStatus(ctx context.Context, actorID, orderID int32, next domain.OrderStatus) (*domain.Order, error)

	Get(ctx context.Context, actorID, orderID int32) (*domain.Order, error)
	ListForRenter(ctx context.Context, renterID int32) ([]domain.Order, error)
	ListForOwner(ctx context.Context, ownerID int32) ([]domain.Order, error)
}

type FavoriteService interface {
	Add(ctx context.Context, userID, equipmentID int32) (*domain.Favorite, error)
	List(ctx context.Context, userID int32) ([]domain.Favorite, error)
	Remove(ctx context.Context, userID, equipmentID int32) error
}

type ChatService interface {
	Send(ctx context.Context, senderID, receiverID int32, content string) (*domain.Message, error)
	GetConversation(ctx context.Context, userID, otherID int32) ([]domain.Message, error)
	ListPartners(ctx context.Context, userID int32) ([]domain.User, error)
}

type SettingsService interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, patch domain.SettingsPatch) (*domain.Settings, error)
	RegenerateAPIKey(ctx context.Context) (string, error)
}

type DashboardService interface {
	AdminStats(ctx context.Context) (*domain.DashboardStats, error)
}

type NewsletterService interface {
	Subscribe(ctx context.Context, email string) error
	Unsubscribe(ctx context.Context, email string) error
}

type EmailService interface {
	SendWelcomeEmail(ctx context.Context, email string) error
	SendOrderReceivedNotification(ctx context.Context, ownerEmail, ownerName string, order *domain.Order) error
	SendOrderStatusNotification(ctx context.Context, renterEmail string, order *domain.Order) error
	SendPendingOrderReminder(ctx context.Context, ownerEmail, ownerName string, order *domain.Order) error
	SendEquipmentDigest(ctx context.Context, email string, equipment []domain.Equipment) error
}
