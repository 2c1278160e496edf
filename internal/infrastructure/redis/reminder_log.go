package redis

import (
	"context"
	"fmt"
	"time"

	"journal-service/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// reminderMarkerTTL outlives any local day so the marker survives zone offsets
const reminderMarkerTTL = 48 * time.Hour

// ReminderLog deduplicates daily reminders with SETNX markers
type ReminderLog struct {
	client *redis.Client
}

// NewReminderLog creates a new reminder log
func NewReminderLog(client *redis.Client) *ReminderLog {
	return &ReminderLog{
		client: client,
	}
}

func reminderKey(userID uuid.UUID, day entity.DayKey) string {
	return fmt.Sprintf("reminder:%s:%s", userID.String(), day.String())
}

// MarkSent records the reminder and reports false if it was already sent
func (l *ReminderLog) MarkSent(ctx context.Context, userID uuid.UUID, day entity.DayKey) (bool, error) {
	ok, err := l.client.SetNX(ctx, reminderKey(userID, day), time.Now().UTC().Format(time.RFC3339), reminderMarkerTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark reminder: %w", err)
	}
	return ok, nil
}
