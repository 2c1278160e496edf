package service

import (
	"context"

	"journal-service/internal/domain/entity"

	"github.com/google/uuid"
)

// AuthService defines business logic for authentication
type AuthService interface {
	// Register creates an unverified account and triggers the verification email
	Register(ctx context.Context, userCreate *entity.UserCreate) (*entity.User, error)

	// Login authenticates user and creates session
	Login(ctx context.Context, email, password string, userAgent *string) (*entity.User, *entity.TokenPair, error)

	// Logout invalidates user session
	Logout(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID) error

	// RefreshToken generates new token pair using refresh token
	RefreshToken(ctx context.Context, refreshToken string) (*entity.TokenPair, error)

	// ValidateAccessToken validates access token and returns user ID and session ID
	ValidateAccessToken(ctx context.Context, accessToken string) (uuid.UUID, uuid.UUID, error)

	// VerifyEmail verifies user email with token
	VerifyEmail(ctx context.Context, token string) (*entity.User, error)

	// ResendVerificationEmail resends verification email
	ResendVerificationEmail(ctx context.Context, email string) error
}

// UserService defines business logic for accounts and profiles
type UserService interface {
	// CreateUser creates a new user with hashed password
	CreateUser(ctx context.Context, userCreate *entity.UserCreate) (*entity.User, error)

	// GetUserByID retrieves a user by ID
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// GetUserByEmail retrieves a user by email
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)

	// UpdateProfile applies a partial profile update
	UpdateProfile(ctx context.Context, userID uuid.UUID, update *entity.ProfileUpdate) (*entity.User, error)

	// ValidatePassword checks password against the stored hash
	ValidatePassword(ctx context.Context, user *entity.User, password string) error
}
