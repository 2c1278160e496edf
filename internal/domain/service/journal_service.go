package service

import (
	"context"
	"time"

	"journal-service/internal/domain/entity"

	"github.com/google/uuid"
)

// JournalService defines business logic for daily journal entries
type JournalService interface {
	// Reconcile merges patch into the user's entry for day, creating it on first write
	Reconcile(ctx context.Context, userID uuid.UUID, day entity.DayKey, patch entity.EntryPatch) (*entity.JournalEntry, error)

	// RateDay sets today's rating in loc
	RateDay(ctx context.Context, userID uuid.UUID, loc *time.Location, rating int32) (*entity.JournalEntry, error)

	// WriteJournal sets today's journal text in loc
	WriteJournal(ctx context.Context, userID uuid.UUID, loc *time.Location, text string) (*entity.JournalEntry, error)

	// SubmitJournal saves today's text and, when asked and only after a
	// successful save, requests feedback on it
	SubmitJournal(ctx context.Context, userID uuid.UUID, loc *time.Location, text string, withFeedback bool) (*entity.SubmitResult, error)

	// EntryForDay returns the entry of a day or entity.ErrNotFound
	EntryForDay(ctx context.Context, userID uuid.UUID, day entity.DayKey) (*entity.JournalEntry, error)

	// ListEntries returns all entries, newest first
	ListEntries(ctx context.Context, userID uuid.UUID) ([]*entity.JournalEntry, error)

	// WeeklySummary returns the ratings of the last 7 local days
	WeeklySummary(ctx context.Context, userID uuid.UUID, loc *time.Location) (*entity.RatingSummary, error)

	// FeedbackForDay requests feedback on the stored text of a day
	FeedbackForDay(ctx context.Context, userID uuid.UUID, day entity.DayKey) (*entity.Feedback, error)
}

// FeedbackService turns journal text into AI feedback
type FeedbackService interface {
	// RequestFeedback asks the completion provider for commentary on text
	RequestFeedback(ctx context.Context, text string) (*entity.Feedback, error)
}

// ReminderService sends daily journaling reminders
type ReminderService interface {
	// SendDailyReminders reminds users who have not written today; returns the number sent
	SendDailyReminders(ctx context.Context) (int, error)
}
