package domain

import "time"

const (
	RoleClient   = "client"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleClient, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

// User models an account on the marketplace.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"-"`
}

// Identity is the set of claims carried by a verified token.
type Identity struct {
	UserID int64
	Email  string
	Role   string
	Name   string
}

// IdentityOf builds the token claims for u.
func IdentityOf(u *User) Identity {
	return Identity{UserID: u.ID, Email: u.Email, Role: u.Role, Name: u.Name}
}
