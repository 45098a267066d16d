package domain

import "time"

type UserRole string

const (
	UserRoleUser  UserRole = "User"
	UserRoleAdmin UserRole = "Admin"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "Active"
	UserStatusInactive UserStatus = "Inactive"
	UserStatusPending  UserStatus = "Pending"
)

type User struct {
	ID           int32      `json:"id"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role"`
	Status       UserStatus `json:"status"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedOn    time.Time  `json:"created_on"`
}
