package repository

import (
	"context"
	"time"

	"journal-service/internal/domain/entity"

	"github.com/google/uuid"
)

// EntryLookup is the outcome of a single-day lookup: Found with the entry,
// or not found. Failures are reported through the error return instead.
type EntryLookup struct {
	Found bool
	Entry *entity.JournalEntry
}

// Found wraps an existing entry
func Found(entry *entity.JournalEntry) EntryLookup {
	return EntryLookup{Found: true, Entry: entry}
}

// NotFound is the lookup outcome for a day without an entry
func NotFound() EntryLookup {
	return EntryLookup{}
}

// EntryRepository defines the interface for journal entry persistence.
// Implementations must guarantee that Upsert keyed on (user_id, entry_day)
// never produces two rows for the same user and day, also under
// concurrent writers.
type EntryRepository interface {
	// FindForDay looks up the entry whose anchor falls in [day.Start, day.NextStart)
	FindForDay(ctx context.Context, userID uuid.UUID, day entity.DayKey) (EntryLookup, error)

	// FindInRange returns entries with from <= entry_date < to, oldest first
	FindInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.JournalEntry, error)

	// Upsert inserts the entry or merges it into the existing row of its day
	// and returns the stored record
	Upsert(ctx context.Context, entry *entity.JournalEntry) (*entity.JournalEntry, error)

	// ListByUser returns all entries of a user, newest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.JournalEntry, error)
}
