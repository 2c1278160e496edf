package client

import "time"

// Tokens is an access/refresh token pair
type Tokens struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
}

// User is the account profile
type User struct {
	ID               string    `json:"id"`
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

// ProfileUpdate holds the profile fields to change; nil fields are kept
type ProfileUpdate struct {
	Username         *string `json:"username,omitempty"`
	FullName         *string `json:"full_name,omitempty"`
	Website          *string `json:"website,omitempty"`
	AvatarURL        *string `json:"avatar_url,omitempty"`
	Timezone         *string `json:"timezone,omitempty"`
	RemindersEnabled *bool   `json:"reminders_enabled,omitempty"`
}

// Entry is a daily journal entry
type Entry struct {
	ID           string    `json:"id"`
	EntryDate    time.Time `json:"entry_date"`
	EntryDay     string    `json:"entry_day"`
	Rating       *int32    `json:"rating"`
	Mood         string    `json:"mood"`
	JournalEntry *string   `json:"journal_entry"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DayRating is one day of a weekly summary
type DayRating struct {
	Day      string `json:"day"`
	Weekday  string `json:"weekday"`
	Rating   *int32 `json:"rating"`
	Mood     string `json:"mood"`
	HasEntry bool   `json:"has_entry"`
}

// WeeklySummary holds seven days, oldest first
type WeeklySummary struct {
	Days      []DayRating `json:"days"`
	RatedDays int         `json:"rated_days"`
	Average   *float64    `json:"average"`
}

// Feedback is the AI response to a journal entry
type Feedback struct {
	Raw        string    `json:"raw"`
	Commentary string    `json:"commentary"`
	Actions    []string  `json:"actions"`
	CreatedAt  time.Time `json:"created_at"`
}

// SubmitResult is the saved entry plus optional feedback.
// FeedbackError is set when feedback failed after a successful save.
type SubmitResult struct {
	Entry             *Entry    `json:"entry"`
	Feedback          *Feedback `json:"feedback,omitempty"`
	FeedbackError     string    `json:"feedback_error,omitempty"`
	FeedbackErrorCode string    `json:"feedback_error_code,omitempty"`
}
