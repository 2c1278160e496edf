package service

import (
	"context"
	"time"

	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/repository"
	"journal-service/internal/domain/service"
	"journal-service/internal/infrastructure/metrics"

	"go.uber.org/zap"
)

type reminderService struct {
	userRepo    repository.UserRepository
	entryRepo   repository.EntryRepository
	reminderLog repository.ReminderLog
	mailer      service.Mailer
	metrics     *metrics.Metrics
	logger      *zap.Logger
	hour        int
	now         func() time.Time
}

// NewReminderService creates a reminder service that emails users who have
// not written anything once their local clock passes hour
func NewReminderService(
	userRepo repository.UserRepository,
	entryRepo repository.EntryRepository,
	reminderLog repository.ReminderLog,
	mailer service.Mailer,
	hour int,
	m *metrics.Metrics,
	logger *zap.Logger,
) service.ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &reminderService{
		userRepo:    userRepo,
		entryRepo:   entryRepo,
		reminderLog: reminderLog,
		mailer:      mailer,
		metrics:     m,
		logger:      logger.Named("reminder"),
		hour:        hour,
		now:         time.Now,
	}
}

// SendDailyReminders sends at most one reminder per user and local day.
// Per-user failures are logged and skipped.
func (s *reminderService) SendDailyReminders(ctx context.Context) (int, error) {
	users, err := s.userRepo.ListReminderRecipients(ctx)
	if err != nil {
		return 0, backendError("list reminder recipients", err)
	}

	sent := 0
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		ok, err := s.remind(ctx, user)
		if err != nil {
			s.logger.Warn("failed to send reminder",
				zap.String("user_id", user.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if ok {
			sent++
		}
	}

	return sent, nil
}

func (s *reminderService) remind(ctx context.Context, user *entity.User) (bool, error) {
	loc := user.Location()
	localNow := s.now().In(loc)
	if localNow.Hour() < s.hour {
		return false, nil
	}

	day := entity.DayKeyOf(localNow, loc)

	lookup, err := s.entryRepo.FindForDay(ctx, user.ID, day)
	if err != nil {
		return false, err
	}
	if lookup.Found {
		return false, nil
	}

	first, err := s.reminderLog.MarkSent(ctx, user.ID, day)
	if err != nil {
		return false, err
	}
	if !first {
		return false, nil
	}

	if err := s.mailer.SendReminderEmail(ctx, user.Email, user.DisplayName(), day); err != nil {
		return false, err
	}

	s.metrics.ReminderSent()
	s.logger.Debug("reminder sent",
		zap.String("user_id", user.ID.String()),
		zap.String("day", day.String()),
	)

	return true, nil
}
