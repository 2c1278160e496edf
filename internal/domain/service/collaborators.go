package service

import (
	"context"

	"journal-service/internal/domain/entity"
)

// CompletionClient is the text completion provider.
// Quota and authorization rejections are reported as entity.ErrQuotaExceeded.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// EventPublisher publishes domain events
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, event *entity.UserRegisteredEvent) error
	PublishEntrySaved(ctx context.Context, event *entity.EntrySavedEvent) error
}

// Mailer sends transactional emails
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, name, verificationToken string) error
	SendReminderEmail(ctx context.Context, to, name string, day entity.DayKey) error
}
