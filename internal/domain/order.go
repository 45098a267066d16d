package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusRejected  OrderStatus = "rejected"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusCompleted OrderStatus = "completed"
)

// IsTerminal reports whether no further transition may leave the status.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusRejected, OrderStatusCancelled, OrderStatusCompleted:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodBank     PaymentMethod = "bank"
	PaymentMethodWafacash PaymentMethod = "wafacash"
	PaymentMethodCashplus PaymentMethod = "cashplus"
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

// RequiresProof reports whether the method needs an uploaded payment proof.
func (m PaymentMethod) RequiresProof() bool {
	switch m {
	case PaymentMethodBank, PaymentMethodWafacash, PaymentMethodCashplus:
		return true
	}
	return false
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodBank, PaymentMethodWafacash, PaymentMethodCashplus,
		PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer:
		return true
	}
	return false
}

// PersonalInfo is the renter's contact snapshot captured at order time.
// It is immutable once the order is created.
type PersonalInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	CIN       string `json:"cin"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Phone     string `json:"phone"`
}

// OrderItem snapshots the equipment's price and rental period at order time.
// The equipment's live price may change later without affecting the order.
type OrderItem struct {
	ID           int32        `json:"id"`
	OrderID      int32        `json:"order_id"`
	EquipmentID  int32        `json:"equipment_id"`
	Quantity     int32        `json:"quantity"`
	RentalDays   int32        `json:"rental_days"`
	Price        float64      `json:"price"`
	RentalPeriod RentalPeriod `json:"rental_period"`
	StartDate    *string      `json:"start_date,omitempty"`
	EndDate      *string      `json:"end_date,omitempty"`
}

// Subtotal is the item's share of the order total.
func (i OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity) * float64(i.RentalDays)
}

// Order is one sub-order of a checkout: it belongs to exactly one owner.
// A cart spanning N owners produces N orders.
type Order struct {
	ID            int32         `json:"id"`
	UserID        *int32        `json:"user_id,omitempty"` // nil for guest checkout
	OwnerID       int32         `json:"owner_id"`
	Items         []OrderItem   `json:"items"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentProof  string        `json:"payment_proof,omitempty"`
	PersonalInfo  PersonalInfo  `json:"personal_info"`
	TotalAmount   float64       `json:"total_amount"`
	DepositAmount float64       `json:"deposit_amount"`
	Status        OrderStatus   `json:"status"`
	CreatedOn     time.Time     `json:"created_on"`
}
