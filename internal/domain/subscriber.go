package domain

import "time"

type Subscriber struct {
	ID        int32  `json:"id"`
	Email     string `json:"email"`
	IsActive  bool   `json:"is_active"`
	CreatedOn time.Time `json:"created_on"`
}
