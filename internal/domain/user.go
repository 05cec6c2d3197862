package domain

import (
	"context"
	"time"
)

// User represents a domain user object
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // empty for accounts created through Google login
	GoogleID     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User instance
func NewUser(name, email string) *User {
	now := time.Now()
	return &User{
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UserRepository defines the interface for user data persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, userID string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
}
