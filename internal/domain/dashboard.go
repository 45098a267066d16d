package domain

type MonthlyOrderCount struct {
	Year  int32 `json:"year"`
	Month int32 `json:"month"`
	Count int32 `json:"count"`
}

type StatusCount struct {
	Name  string `json:"name"`
	Count int32  `json:"count"`
}

// DashboardStats is the admin dashboard aggregate. It only observes order and
// equipment state; it never mutates it.
type DashboardStats struct {
	TotalUsers          int32               `json:"total_users"`
	TotalEquipment      int32               `json:"total_equipment"`
	Revenue             float64             `json:"revenue"`
	ActiveRentals       int32               `json:"active_rentals"`
	EquipmentStatus     []StatusCount       `json:"equipment_status"`
	EquipmentCategories []StatusCount       `json:"equipment_categories"`
	MonthlyRentals      []MonthlyOrderCount `json:"monthly_rentals"`
}

// OwnerStats is the per-owner listing summary shown on the user dashboard.
type OwnerStats struct {
	TotalEquipment int32   `json:"total_equipment"`
	Active         int32   `json:"active"`
	Pending        int32   `json:"pending"`
	ListingValue   float64 `json:"listing_value"`
}
