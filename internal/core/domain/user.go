package domain

import (
	"errors"
	"time"
)

// Role is the flat two-value role carried by every user.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleTranslator Role = "TRANSLATOR"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleTranslator
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User models an authenticated actor in the system. Role never changes after
// creation.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Principal returns the identity the user acts as once authenticated.
func (u *User) Principal() Principal {
	return Principal{UserID: u.ID, Role: u.Role, Email: u.Email, Name: u.Name}
}

// UserSummary is the reduced user view joined onto time entries.
type UserSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
