package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"journal-service/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionStorage handles session storage in Redis
type SessionStorage struct {
	client     *redis.Client
	sessionTTL time.Duration
}

// NewSessionStorage creates a new session storage
func NewSessionStorage(client *redis.Client, sessionTTL time.Duration) *SessionStorage {
	return &SessionStorage{
		client:     client,
		sessionTTL: sessionTTL,
	}
}

func (s *SessionStorage) sessionKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("session:%s", sessionID.String())
}

func (s *SessionStorage) userSessionsKey(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s:sessions", userID.String())
}

// Set stores a session until it expires
func (s *SessionStorage) Set(ctx context.Context, session *entity.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	userSessionsKey := s.userSessionsKey(session.UserID)

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.sessionKey(session.ID), data, ttl)
	pipe.SAdd(ctx, userSessionsKey, session.ID.String())
	pipe.Expire(ctx, userSessionsKey, s.sessionTTL+24*time.Hour)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

// Get retrieves a session by ID
func (s *SessionStorage) Get(ctx context.Context, sessionID uuid.UUID) (*entity.Session, error) {
	data, err := s.client.Get(ctx, s.sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("session not found: %w", entity.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// Exists checks if a session exists
func (s *SessionStorage) Exists(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	result, err := s.client.Exists(ctx, s.sessionKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session existence: %w", err)
	}

	return result > 0, nil
}

// UpdateLastActivity updates the last activity timestamp
func (s *SessionStorage) UpdateLastActivity(ctx context.Context, sessionID uuid.UUID) error {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	session.UpdateActivity()

	return s.Set(ctx, session)
}

// Delete removes a session from Redis
func (s *SessionStorage) Delete(ctx context.Context, sessionID uuid.UUID) error {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.sessionKey(sessionID))
	pipe.SRem(ctx, s.userSessionsKey(session.UserID), sessionID.String())

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
