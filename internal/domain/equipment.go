package domain

import "time"

type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityRented    Availability = "rented"
)

type RentalPeriod string

const (
	RentalPeriodDay   RentalPeriod = "day"
	RentalPeriodMonth RentalPeriod = "month"
)

type ListingStatus string

const (
	ListingStatusActive  ListingStatus = "active"
	ListingStatusPending ListingStatus = "pending"
)

type Equipment struct {
	ID           int32         `json:"id"`
	OwnerID      int32         `json:"owner_id"`
	Owner        *User         `json:"owner,omitempty"` // Populated when fetching equipment details
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Category     string        `json:"category"`
	Price        float64       `json:"price"`
	RentalPeriod RentalPeriod  `json:"rental_period"`
	Condition    string        `json:"condition"`
	Availability Availability  `json:"availability"`
	Location     string        `json:"location"`
	Image        string        `json:"image,omitempty"`
	Status       ListingStatus `json:"status"`
	CreatedOn    time.Time     `json:"created_on"`
}

// EquipmentPatch carries the optional fields of an equipment update.
// Nil fields are left untouched by Apply.
type EquipmentPatch struct {
	Name         *string
	Description  *string
	Category     *string
	Price        *float64
	RentalPeriod *RentalPeriod
	Condition    *string
	Location     *string
	Image        *string
	Status       *ListingStatus
}

// Apply merges the patch into the equipment. Availability is deliberately not
// patchable here: it is owned by the order workflow.
func (p EquipmentPatch) Apply(e *Equipment) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Price != nil {
		e.Price = *p.Price
	}
	if p.RentalPeriod != nil {
		e.RentalPeriod = *p.RentalPeriod
	}
	if p.Condition != nil {
		e.Condition = *p.Condition
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Image != nil {
		e.Image = *p.Image
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
}
