package entity

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxJournalLength = 20000 // runes
)

// JournalEntry is the single daily record of a user.
// (UserID, EntryDay) is the natural key: at most one row per local day.
type JournalEntry struct {
	ID     uuid.UUID
	UserID uuid.UUID

	// EntryDate is the anchor instant: set on the first write of the day and
	// kept across later same-day edits
	EntryDate time.Time

	// EntryDay is the local calendar day (YYYY-MM-DD) the entry belongs to
	EntryDay string

	Rating      *int32  // nil = not yet rated
	JournalText *string // nil = not yet written

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Day recomputes the calendar day of the stored anchor in loc
func (e *JournalEntry) Day(loc *time.Location) DayKey {
	return DayKeyOf(e.EntryDate, loc)
}

// IsRated returns true if the entry carries a rating
func (e *JournalEntry) IsRated() bool {
	return e.Rating != nil
}

// HasText returns true if the entry carries journal text
func (e *JournalEntry) HasText() bool {
	return e.JournalText != nil && strings.TrimSpace(*e.JournalText) != ""
}

// Clone returns a deep copy
func (e *JournalEntry) Clone() *JournalEntry {
	c := *e
	if e.Rating != nil {
		r := *e.Rating
		c.Rating = &r
	}
	if e.JournalText != nil {
		t := *e.JournalText
		c.JournalText = &t
	}
	return &c
}

// EntryPatch is a partial update: nil fields are left untouched
type EntryPatch struct {
	Rating      *int32
	JournalText *string
}

// RatingPatch returns a patch setting only the rating
func RatingPatch(rating int32) EntryPatch {
	return EntryPatch{Rating: &rating}
}

// TextPatch returns a patch setting only the journal text
func TextPatch(text string) EntryPatch {
	return EntryPatch{JournalText: &text}
}

// IsEmpty reports whether the patch carries no field
func (p EntryPatch) IsEmpty() bool {
	return p.Rating == nil && p.JournalText == nil
}

// Validate checks the patch before any backend call
func (p EntryPatch) Validate() error {
	if p.IsEmpty() {
		return NewValidationError("patch", "rating or journal_entry is required")
	}

	if p.Rating != nil {
		if *p.Rating < MinRating || *p.Rating > MaxRating {
			return NewValidationError("rating", fmt.Sprintf("must be between %d and %d", MinRating, MaxRating))
		}
	}

	if p.JournalText != nil {
		if strings.TrimSpace(*p.JournalText) == "" {
			return NewValidationError("journal_entry", "cannot be empty")
		}
		if utf8.RuneCountInString(*p.JournalText) > MaxJournalLength {
			return NewValidationError("journal_entry", fmt.Sprintf("is too long (max %d characters)", MaxJournalLength))
		}
	}

	return nil
}

// Apply merges the patch into a copy of base. Fields absent from the patch
// carry over from base.
func (p EntryPatch) Apply(base *JournalEntry) *JournalEntry {
	merged := base.Clone()

	if p.Rating != nil {
		r := *p.Rating
		merged.Rating = &r
	}
	if p.JournalText != nil {
		t := *p.JournalText
		merged.JournalText = &t
	}

	return merged
}
