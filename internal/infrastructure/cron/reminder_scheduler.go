package cron

import (
	"context"
	"fmt"
	"time"

	"journal-service/internal/domain/service"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReminderScheduler periodically sends daily journaling reminders
type ReminderScheduler struct {
	reminderService service.ReminderService
	cron            *cron.Cron
	interval        time.Duration
	logger          *zap.Logger
}

// NewReminderScheduler creates a new reminder scheduler
func NewReminderScheduler(reminderService service.ReminderService, checkInterval time.Duration, logger *zap.Logger) *ReminderScheduler {
	return &ReminderScheduler{
		reminderService: reminderService,
		// a slow run is skipped instead of overlapping the next one
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		interval: checkInterval,
		logger:   logger.Named("reminder_scheduler"),
	}
}

// Start starts the reminder scheduler
func (r *ReminderScheduler) Start() error {
	cronExpr := fmt.Sprintf("@every %s", r.interval.String())

	if _, err := r.cron.AddFunc(cronExpr, r.run); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	r.cron.Start()
	r.logger.Info("reminder scheduler started", zap.Duration("interval", r.interval))

	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (r *ReminderScheduler) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info("reminder scheduler stopped")
}

func (r *ReminderScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	sent, err := r.reminderService.SendDailyReminders(ctx)
	if err != nil {
		r.logger.Error("failed to send daily reminders", zap.Error(err))
		return
	}

	if sent > 0 {
		r.logger.Info("daily reminders sent", zap.Int("count", sent))
	}
}
