package repository

import (
	"context"

	"journal-service/internal/domain/entity"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entity.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// Update updates profile fields and verification state
	Update(ctx context.Context, user *entity.User) error

	// EmailExists checks if email is already registered
	EmailExists(ctx context.Context, email string) (bool, error)

	// ListReminderRecipients returns active, verified users with reminders enabled
	ListReminderRecipients(ctx context.Context) ([]*entity.User, error)
}
