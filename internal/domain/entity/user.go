package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a journal account and its profile
type User struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Email            string    `json:"email" db:"email"`
	Username         *string   `json:"username,omitempty" db:"username"`
	PasswordHash     string    `json:"-" db:"password_hash"`
	FullName         *string   `json:"full_name,omitempty" db:"full_name"`
	Website          *string   `json:"website,omitempty" db:"website"`
	AvatarURL        *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	Timezone         string    `json:"timezone" db:"timezone"`
	RemindersEnabled bool      `json:"reminders_enabled" db:"reminders_enabled"`
	IsActive         bool      `json:"is_active" db:"is_active"`
	EmailVerified    bool      `json:"email_verified" db:"email_verified"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// Location returns the profile time zone, UTC when unset or unknown
func (u *User) Location() *time.Location {
	loc, err := ParseLocation(u.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DisplayName returns the best human readable name of the user
func (u *User) DisplayName() string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return u.Email
}

// UserCreate represents data needed to create a new user
type UserCreate struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name,omitempty"`
	Timezone string  `json:"timezone"`
}

// ProfileUpdate represents profile fields that can be updated
type ProfileUpdate struct {
	Username         *string `json:"username,omitempty"`
	FullName         *string `json:"full_name,omitempty"`
	Website          *string `json:"website,omitempty"`
	AvatarURL        *string `json:"avatar_url,omitempty"`
	Timezone         *string `json:"timezone,omitempty"`
	RemindersEnabled *bool   `json:"reminders_enabled,omitempty"`
	EmailVerified    *bool   `json:"-"`
}

// UserResponse represents user data for API responses (without sensitive data)
type UserResponse struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	Username         *string   `json:"username,omitempty"`
	FullName         *string   `json:"full_name,omitempty"`
	Website          *string   `json:"website,omitempty"`
	AvatarURL        *string   `json:"avatar_url,omitempty"`
	Timezone         string    `json:"timezone"`
	RemindersEnabled bool      `json:"reminders_enabled"`
	EmailVerified    bool      `json:"email_verified"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		Username:         u.Username,
		FullName:         u.FullName,
		Website:          u.Website,
		AvatarURL:        u.AvatarURL,
		Timezone:         u.Timezone,
		RemindersEnabled: u.RemindersEnabled,
		EmailVerified:    u.EmailVerified,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
