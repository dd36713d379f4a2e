package domain

import "time"

// Role is a coarse authorization tag claimed at login and checked against
// the stored value.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Identity represents a registered account of the system.
type Identity struct {
	ID         int64
	Name       string
	Username   string
	Phone      string
	Email      string
	SecretHash string
	Gender     string
	Role       Role
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
