package service

import (
	"context"

	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/service"

	"go.uber.org/zap"
)

// mailPublisher delivers events in process when no broker is configured
type mailPublisher struct {
	mailer service.Mailer
	logger *zap.Logger
}

// NewMailPublisher creates a publisher that sends verification emails
// directly and drops entry events
func NewMailPublisher(mailer service.Mailer, logger *zap.Logger) service.EventPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &mailPublisher{
		mailer: mailer,
		logger: logger.Named("mail_publisher"),
	}
}

func (p *mailPublisher) PublishUserRegistered(ctx context.Context, event *entity.UserRegisteredEvent) error {
	return p.mailer.SendVerificationEmail(ctx, event.Email, event.FullName, event.VerificationToken)
}

func (p *mailPublisher) PublishEntrySaved(ctx context.Context, event *entity.EntrySavedEvent) error {
	p.logger.Debug("entry saved", zap.String("entry_id", event.EntryID), zap.String("day", event.EntryDay))
	return nil
}
