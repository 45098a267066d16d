package domain

import "time"

type Favorite struct {
	ID          int32      `json:"id"`
	UserID      int32      `json:"user_id"`
	EquipmentID int32      `json:"equipment_id"`
	Equipment   *Equipment `json:"equipment,omitempty"` // Populated when listing favorites
	CreatedOn   time.Time  `json:"created_on"`
}
