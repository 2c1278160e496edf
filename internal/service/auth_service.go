package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/repository"
	"journal-service/internal/domain/service"
	pkgjwt "journal-service/pkg/jwt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// authService implements service.AuthService
type authService struct {
	userService            service.UserService
	sessionStorage         repository.SessionStorage
	verificationTokenStore repository.VerificationTokenStorage
	tokenManager           *pkgjwt.TokenManager
	publisher              service.EventPublisher
	logger                 *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userService service.UserService,
	sessionStorage repository.SessionStorage,
	verificationTokenStore repository.VerificationTokenStorage,
	tokenManager *pkgjwt.TokenManager,
	publisher service.EventPublisher,
	logger *zap.Logger,
) service.AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &authService{
		userService:            userService,
		sessionStorage:         sessionStorage,
		verificationTokenStore: verificationTokenStore,
		tokenManager:           tokenManager,
		publisher:              publisher,
		logger:                 logger.Named("auth"),
	}
}

// Register creates the account and publishes the verification request
func (s *authService) Register(ctx context.Context, userCreate *entity.UserCreate) (*entity.User, error) {
	user, err := s.userService.CreateUser(ctx, userCreate)
	if err != nil {
		return nil, err
	}

	if err := s.sendVerification(ctx, user, entity.EventTypeUserRegistered); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates user and creates session
func (s *authService) Login(
	ctx context.Context,
	email, password string,
	userAgent *string,
) (*entity.User, *entity.TokenPair, error) {
	user, err := s.userService.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, nil, entity.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !user.IsActive {
		return nil, nil, fmt.Errorf("account is deactivated: %w", entity.ErrInvalidCredentials)
	}

	if err := s.userService.ValidatePassword(ctx, user, password); err != nil {
		return nil, nil, err
	}

	if !user.EmailVerified {
		return nil, nil, entity.ErrEmailNotVerified
	}

	tokenPair, err := s.createSession(ctx, user.ID, userAgent)
	if err != nil {
		return nil, nil, err
	}

	return user, tokenPair, nil
}

// Logout invalidates user session
func (s *authService) Logout(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID) error {
	session, err := s.sessionStorage.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return fmt.Errorf("session not found: %w", entity.ErrAuthRequired)
		}
		return backendError("get session", err)
	}

	if session.UserID != userID {
		return fmt.Errorf("session does not belong to user: %w", entity.ErrAuthRequired)
	}

	if err := s.sessionStorage.Delete(ctx, sessionID); err != nil {
		return backendError("delete session", err)
	}

	return nil
}

// RefreshToken rotates the token pair. The presented refresh token must be
// the latest one issued for its session.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*entity.TokenPair, error) {
	claims, err := s.tokenManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %v: %w", err, entity.ErrAuthRequired)
	}

	session, err := s.sessionStorage.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("session not found or expired: %w", entity.ErrAuthRequired)
		}
		return nil, backendError("get session", err)
	}

	if session.TokenHash != pkgjwt.HashToken(refreshToken) {
		// a rotated token was replayed; end the session
		if err := s.sessionStorage.Delete(ctx, session.ID); err != nil {
			s.logger.Warn("failed to delete session after token reuse", zap.Error(err))
		}
		return nil, fmt.Errorf("refresh token already used: %w", entity.ErrAuthRequired)
	}

	tokenPair, err := s.issueTokens(session.UserID, session.ID)
	if err != nil {
		return nil, err
	}

	session.TokenHash = pkgjwt.HashToken(tokenPair.RefreshToken)
	session.ExpiresAt = tokenPair.RefreshTokenExpiresAt
	session.UpdateActivity()

	if err := s.sessionStorage.Set(ctx, session); err != nil {
		return nil, backendError("save session", err)
	}

	return tokenPair, nil
}

// ValidateAccessToken validates access token and returns user ID and session ID
func (s *authService) ValidateAccessToken(ctx context.Context, accessToken string) (uuid.UUID, uuid.UUID, error) {
	claims, err := s.tokenManager.ValidateAccessToken(accessToken)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid access token: %v: %w", err, entity.ErrAuthRequired)
	}

	exists, err := s.sessionStorage.Exists(ctx, claims.SessionID)
	if err != nil {
		return uuid.Nil, uuid.Nil, backendError("check session", err)
	}
	if !exists {
		return uuid.Nil, uuid.Nil, fmt.Errorf("session not found or expired: %w", entity.ErrAuthRequired)
	}

	if err := s.sessionStorage.UpdateLastActivity(ctx, claims.SessionID); err != nil {
		s.logger.Debug("failed to update session activity", zap.Error(err))
	}

	return claims.UserID, claims.SessionID, nil
}

// VerifyEmail verifies user email with token
func (s *authService) VerifyEmail(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, entity.NewValidationError("token", "is required")
	}

	userIDStr, err := s.verificationTokenStore.GetUserIDByToken(ctx, token)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, entity.NewValidationError("token", "invalid or expired verification token")
		}
		return nil, backendError("get verification token", err)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, entity.NewBackendError("parse verification token owner", err)
	}

	user, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.EmailVerified {
		return user, nil
	}

	verified := true
	updatedUser, err := s.userService.UpdateProfile(ctx, userID, &entity.ProfileUpdate{EmailVerified: &verified})
	if err != nil {
		return nil, err
	}

	if err := s.verificationTokenStore.DeleteToken(ctx, token); err != nil {
		s.logger.Warn("failed to delete verification token", zap.Error(err))
	}

	return updatedUser, nil
}

// ResendVerificationEmail resends verification email.
// Unknown addresses succeed silently so accounts cannot be probed.
func (s *authService) ResendVerificationEmail(ctx context.Context, email string) error {
	user, err := s.userService.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil
		}
		return err
	}

	if user.EmailVerified {
		return entity.NewValidationError("email", "already verified")
	}

	return s.sendVerification(ctx, user, entity.EventTypeVerificationRequested)
}

func (s *authService) sendVerification(ctx context.Context, user *entity.User, eventType string) error {
	verificationToken, err := s.verificationTokenStore.GenerateToken()
	if err != nil {
		return fmt.Errorf("failed to generate verification token: %w", err)
	}

	if err := s.verificationTokenStore.StoreToken(ctx, verificationToken, user.ID.String()); err != nil {
		return backendError("store verification token", err)
	}

	if s.publisher == nil {
		return nil
	}

	fullName := ""
	if user.FullName != nil {
		fullName = *user.FullName
	}

	event := &entity.UserRegisteredEvent{
		EventID:           uuid.New().String(),
		EventType:         eventType,
		UserID:            user.ID.String(),
		Email:             user.Email,
		FullName:          fullName,
		VerificationToken: verificationToken,
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.publisher.PublishUserRegistered(ctx, event); err != nil {
		s.logger.Warn("failed to publish verification event",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	return nil
}

// createSession creates a new session and generates tokens
func (s *authService) createSession(ctx context.Context, userID uuid.UUID, userAgent *string) (*entity.TokenPair, error) {
	sessionID := uuid.New()

	tokenPair, err := s.issueTokens(userID, sessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &entity.Session{
		ID:             sessionID,
		UserID:         userID,
		TokenHash:      pkgjwt.HashToken(tokenPair.RefreshToken),
		UserAgent:      userAgent,
		ExpiresAt:      tokenPair.RefreshTokenExpiresAt,
		CreatedAt:      now,
		LastActivityAt: now,
	}

	if err := s.sessionStorage.Set(ctx, session); err != nil {
		return nil, backendError("save session", err)
	}

	return tokenPair, nil
}

func (s *authService) issueTokens(userID, sessionID uuid.UUID) (*entity.TokenPair, error) {
	accessToken, accessExpiresAt, err := s.tokenManager.GenerateAccessToken(userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.tokenManager.GenerateRefreshToken(userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &entity.TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  accessExpiresAt,
		RefreshTokenExpiresAt: refreshExpiresAt,
	}, nil
}
