package domain

import "time"

// Role distinguishes clinic staff from pet owners.
type Role string

const (
	RoleUser       Role = "USER"
	RoleVeterinary Role = "VETERINARY"
)

// ParseRole maps a raw string to a known role.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleUser:
		return RoleUser, true
	case RoleVeterinary:
		return RoleVeterinary, true
	}
	return "", false
}

// User is the domain model for clinic accounts, both owners and veterinarians.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsVeterinary reports whether the user holds the elevated clinic role.
func (u *User) IsVeterinary() bool {
	return u != nil && u.Role == RoleVeterinary
}
