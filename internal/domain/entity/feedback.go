package entity

import "time"

// ActionsLabel heads the recommended actions section of a feedback response
const ActionsLabel = "Recommended Actions:"

// Feedback is an AI response to a journal entry.
// Raw is the provider text, unmodified; Commentary and Actions are a
// best-effort split of it.
type Feedback struct {
	Raw        string
	Commentary string
	Actions    []string
	CreatedAt  time.Time
}

// SubmitResult is the outcome of saving journal text with optional feedback.
// FeedbackErr never implies the entry was not saved.
type SubmitResult struct {
	Entry       *JournalEntry
	Feedback    *Feedback
	FeedbackErr error
}
