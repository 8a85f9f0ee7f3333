package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/healthtrack/healthtrack-go/internal/crypto"
	"github.com/healthtrack/healthtrack-go/internal/model"
	"github.com/healthtrack/healthtrack-go/internal/repository"
)

var (
	// ErrInvalidCredentials is returned for an unknown username and for a
	// wrong password alike, so login responses cannot be used to probe
	// which usernames exist.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrUsernameTooShort   = errors.New("username must be at least 3 characters long")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters long")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService handles registration, login and profile retrieval over a
// pluggable credential store.
type AuthService struct {
	store     repository.UserStore
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(store repository.UserStore, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		store:     store,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates a new user account and returns its freshly minted id.
// It performs exactly one store write.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.RegisterResponse, error) {
	if len(req.Username) < 3 {
		return model.RegisterResponse{}, ErrUsernameTooShort
	}
	if len(req.Password) < 6 {
		return model.RegisterResponse{}, ErrPasswordTooShort
	}

	_, err := s.store.FindByUsername(ctx, req.Username)
	switch {
	case err == nil:
		return model.RegisterResponse{}, ErrUsernameTaken
	case !errors.Is(err, repository.ErrUserNotFound):
		return model.RegisterResponse{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.RegisterResponse{}, err
	}

	user := &repository.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			// Lost a race with a concurrent registration for the same
			// username; the store-level check is authoritative.
			return model.RegisterResponse{}, ErrUsernameTaken
		}
		return model.RegisterResponse{}, err
	}

	return model.RegisterResponse{UserID: user.ID}, nil
}

// Login verifies credentials and issues a bearer token. It performs no
// store writes.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	user, err := s.store.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.LoginResponse{}, ErrInvalidCredentials
		}
		return model.LoginResponse{}, err
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return model.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := crypto.GenerateToken(user.ID, user.Username, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.LoginResponse{}, err
	}

	return model.LoginResponse{Token: token, UserID: user.ID}, nil
}

// Profile retrieves the account data safe to show the account's owner.
func (s *AuthService) Profile(ctx context.Context, userID string) (model.ProfileResponse, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.ProfileResponse{}, ErrUserNotFound
		}
		return model.ProfileResponse{}, err
	}

	return model.ProfileResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}, nil
}
