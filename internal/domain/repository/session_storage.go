package repository

import (
	"context"

	"journal-service/internal/domain/entity"

	"github.com/google/uuid"
)

// SessionStorage keeps active sessions
type SessionStorage interface {
	// Set stores a session until it expires
	Set(ctx context.Context, session *entity.Session) error

	// Get retrieves a session by ID
	Get(ctx context.Context, sessionID uuid.UUID) (*entity.Session, error)

	// Exists checks if a session exists
	Exists(ctx context.Context, sessionID uuid.UUID) (bool, error)

	// UpdateLastActivity updates the last activity timestamp
	UpdateLastActivity(ctx context.Context, sessionID uuid.UUID) error

	// Delete removes a session
	Delete(ctx context.Context, sessionID uuid.UUID) error
}

// VerificationTokenStorage keeps email verification tokens
type VerificationTokenStorage interface {
	GenerateToken() (string, error)
	StoreToken(ctx context.Context, token, userID string) error
	GetUserIDByToken(ctx context.Context, token string) (string, error)
	DeleteToken(ctx context.Context, token string) error
}

// ReminderLog records which users were reminded on which day
type ReminderLog interface {
	// MarkSent records the reminder and reports false if it was already sent
	MarkSent(ctx context.Context, userID uuid.UUID, day entity.DayKey) (bool, error)
}
