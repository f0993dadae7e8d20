package domain

import (
	"context"
	"time"
)

// User represents a platform user. Users anchor all per-tenant data:
// usage logs and calendar events reference them and are removed with them.
type User struct {
	ID                string
	GoogleID          string
	Email             string
	Name              string
	ProfilePictureURL string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time
}

// NewUser creates a new User instance
func NewUser(googleID, email string) *User {
	now := time.Now()
	return &User{
		GoogleID:  googleID,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the user
func (u *User) Validate() error {
	if u.GoogleID == "" {
		return NewMissingFieldError("google_id")
	}
	if u.Email == "" {
		return NewMissingFieldError("email")
	}
	return nil
}

// UserRepository defines the interface for user data persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByGoogleID(ctx context.Context, googleID string) (*User, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error

	// DeleteUser removes the user row. ai_usage_logs rows cascade at the
	// database level; calendar events do as well.
	DeleteUser(ctx context.Context, userID string) error
}
