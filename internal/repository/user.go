package repository

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
)

// User is a stored credential record. The password hash never leaves the
// service layer.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// UserStore is the credential capability the auth service depends on.
// Two interchangeable backends exist: MySQL and a spreadsheet tab.
type UserStore interface {
	// FindByUsername does an exact, case-sensitive lookup.
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	// Create persists a new credential record. Implementations never
	// overwrite an existing username; of two racing creates for the same
	// username, exactly one wins and the rest get ErrDuplicateUsername.
	Create(ctx context.Context, user *User) error
}
