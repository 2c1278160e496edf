package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/repository"
	"journal-service/internal/domain/service"
	"journal-service/pkg/hash"
	"journal-service/pkg/validation"

	"github.com/google/uuid"
)

// userService implements service.UserService
type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) service.UserService {
	return &userService{
		userRepo: userRepo,
	}
}

// CreateUser creates a new user with hashed password
func (s *userService) CreateUser(ctx context.Context, userCreate *entity.UserCreate) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(userCreate.Email))
	if err := validation.ValidateEmail(email); err != nil {
		return nil, entity.NewValidationError("email", err.Error())
	}
	if err := validation.ValidatePassword(userCreate.Password); err != nil {
		return nil, entity.NewValidationError("password", err.Error())
	}
	if userCreate.FullName != nil {
		if err := validation.ValidateFullName(*userCreate.FullName); err != nil {
			return nil, entity.NewValidationError("full_name", err.Error())
		}
	}
	if _, err := entity.ParseLocation(userCreate.Timezone); err != nil {
		return nil, err
	}

	emailExists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, backendError("check email existence", err)
	}
	if emailExists {
		return nil, fmt.Errorf("email already registered: %w", entity.ErrConflict)
	}

	passwordHash, err := hash.HashPassword(userCreate.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	timezone := strings.TrimSpace(userCreate.Timezone)
	if timezone == "" {
		timezone = "UTC"
	}

	now := time.Now().UTC()
	user := &entity.User{
		ID:               uuid.New(),
		Email:            email,
		PasswordHash:     passwordHash,
		FullName:         trimmed(userCreate.FullName),
		Timezone:         timezone,
		RemindersEnabled: true,
		IsActive:         true,
		EmailVerified:    false,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return nil, err
		}
		return nil, backendError("create user", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError("get user", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email
func (s *userService) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, lookupError("get user", err)
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of update.
// An empty string clears an optional text field.
func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, update *entity.ProfileUpdate) (*entity.User, error) {
	if err := validateProfileUpdate(update); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, lookupError("get user", err)
	}

	if update.Username != nil {
		user.Username = optional(*update.Username)
	}
	if update.FullName != nil {
		user.FullName = optional(*update.FullName)
	}
	if update.Website != nil {
		user.Website = optional(*update.Website)
	}
	if update.AvatarURL != nil {
		user.AvatarURL = optional(*update.AvatarURL)
	}
	if update.Timezone != nil {
		user.Timezone = strings.TrimSpace(*update.Timezone)
	}
	if update.RemindersEnabled != nil {
		user.RemindersEnabled = *update.RemindersEnabled
	}
	if update.EmailVerified != nil {
		user.EmailVerified = *update.EmailVerified
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, entity.ErrConflict) || errors.Is(err, entity.ErrNotFound) {
			return nil, err
		}
		return nil, backendError("update user", err)
	}

	return user, nil
}

// ValidatePassword checks password against the stored hash
func (s *userService) ValidatePassword(ctx context.Context, user *entity.User, password string) error {
	if err := hash.ComparePassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, hash.ErrPasswordMismatch) {
			return entity.ErrInvalidCredentials
		}
		return err
	}
	return nil
}

func validateProfileUpdate(update *entity.ProfileUpdate) error {
	if update == nil {
		return entity.NewValidationError("profile", "update is required")
	}
	if update.Username != nil && strings.TrimSpace(*update.Username) != "" {
		if err := validation.ValidateUsername(*update.Username); err != nil {
			return entity.NewValidationError("username", err.Error())
		}
	}
	if update.FullName != nil {
		if err := validation.ValidateFullName(*update.FullName); err != nil {
			return entity.NewValidationError("full_name", err.Error())
		}
	}
	if update.Website != nil {
		if err := validation.ValidateURL(*update.Website); err != nil {
			return entity.NewValidationError("website", err.Error())
		}
	}
	if update.AvatarURL != nil {
		if err := validation.ValidateURL(*update.AvatarURL); err != nil {
			return entity.NewValidationError("avatar_url", err.Error())
		}
	}
	if update.Timezone != nil {
		if _, err := entity.ParseLocation(*update.Timezone); err != nil {
			return err
		}
	}
	return nil
}

// lookupError keeps ErrNotFound visible and marks everything else as backend
func lookupError(op string, err error) error {
	if errors.Is(err, entity.ErrNotFound) {
		return err
	}
	return backendError(op, err)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	return optional(*s)
}
