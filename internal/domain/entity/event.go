package entity

import "time"

// Event types published on the journal topic
const (
	EventTypeUserRegistered        = "user.registered"
	EventTypeVerificationRequested = "user.verification_requested"
	EventTypeEntrySaved            = "entry.saved"
)

// UserRegisteredEvent asks the mailer to send a verification email
type UserRegisteredEvent struct {
	EventID           string
	EventType         string
	UserID            string
	Email             string
	FullName          string
	VerificationToken string
	CreatedAt         time.Time
}

// EntrySavedEvent is published after a successful reconcile
type EntrySavedEvent struct {
	EventID  string
	UserID   string
	EntryID  string
	EntryDay string
	Rating   *int32
	HasText  bool
	SavedAt  time.Time
}
