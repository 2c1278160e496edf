package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingReminders struct {
	calls atomic.Int32
	err   error
}

func (c *countingReminders) SendDailyReminders(ctx context.Context) (int, error) {
	c.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("run without deadline")
	}
	return 1, c.err
}

func TestReminderScheduler_Run(t *testing.T) {
	reminders := &countingReminders{}
	scheduler := NewReminderScheduler(reminders, time.Minute, zap.NewNop())

	scheduler.run()
	reminders.err = errors.New("db down")
	scheduler.run()

	assert.Equal(t, int32(2), reminders.calls.Load())
}

func TestReminderScheduler_StartStop(t *testing.T) {
	reminders := &countingReminders{}
	scheduler := NewReminderScheduler(reminders, time.Second, zap.NewNop())

	require.NoError(t, scheduler.Start())
	assert.Eventually(t, func() bool { return reminders.calls.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
	scheduler.Stop()

	calls := reminders.calls.Load()
	time.Sleep(1200 * time.Millisecond)
	assert.Equal(t, calls, reminders.calls.Load())
}
