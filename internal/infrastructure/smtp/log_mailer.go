package smtp

import (
	"context"

	"journal-service/internal/domain/entity"

	"go.uber.org/zap"
)

// LogMailer logs emails instead of sending them. Used when no SMTP host is configured.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a mailer that only logs
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger.Named("mailer")}
}

// SendVerificationEmail logs the verification token
func (m *LogMailer) SendVerificationEmail(ctx context.Context, to, name, verificationToken string) error {
	m.logger.Info("verification email (not sent)",
		zap.String("to", to),
		zap.String("token", verificationToken),
	)
	return nil
}

// SendReminderEmail logs the reminder
func (m *LogMailer) SendReminderEmail(ctx context.Context, to, name string, day entity.DayKey) error {
	m.logger.Info("reminder email (not sent)",
		zap.String("to", to),
		zap.String("day", day.String()),
	)
	return nil
}
