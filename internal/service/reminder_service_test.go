package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"journal-service/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reminderUser(email, timezone string) *entity.User {
	return &entity.User{
		ID:               uuid.New(),
		Email:            email,
		Timezone:         timezone,
		RemindersEnabled: true,
		IsActive:         true,
		EmailVerified:    true,
	}
}

type reminderFixture struct {
	users   *userStore
	entries *entryStore
	mailer  *fakeMailer
	svc     *reminderService
}

func newReminderFixture(now time.Time) *reminderFixture {
	f := &reminderFixture{
		users:   newUserStore(),
		entries: newEntryStore(),
		mailer:  &fakeMailer{},
	}
	f.svc = NewReminderService(f.users, f.entries, newReminderLog(), f.mailer, 20, nil, nil).(*reminderService)
	f.svc.now = func() time.Time { return now }
	return f
}

func (f *reminderFixture) add(user *entity.User) *entity.User {
	f.users.users[user.ID] = user
	return user
}

func TestSendDailyReminders(t *testing.T) {
	// 21:00 UTC: past the reminder hour in UTC, not yet in New York
	f := newReminderFixture(time.Date(2024, time.May, 10, 21, 0, 0, 0, time.UTC))

	due := f.add(reminderUser("a@example.com", "UTC"))
	f.add(reminderUser("b@example.com", "America/New_York"))
	wrote := f.add(reminderUser("c@example.com", "UTC"))
	optedOut := reminderUser("d@example.com", "UTC")
	optedOut.RemindersEnabled = false
	f.add(optedOut)

	text := "done"
	f.entries.put(&entity.JournalEntry{
		ID:          uuid.New(),
		UserID:      wrote.ID,
		EntryDate:   time.Date(2024, time.May, 10, 7, 0, 0, 0, time.UTC),
		EntryDay:    "2024-05-10",
		JournalText: &text,
	})

	sent, err := f.svc.SendDailyReminders(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, sent)
	require.Len(t, f.mailer.reminders, 1)
	assert.Equal(t, due.Email, f.mailer.reminders[0].to)
	assert.Equal(t, "2024-05-10", f.mailer.reminders[0].day.String())
}

func TestSendDailyReminders_OncePerDay(t *testing.T) {
	f := newReminderFixture(time.Date(2024, time.May, 10, 21, 0, 0, 0, time.UTC))
	f.add(reminderUser("a@example.com", "UTC"))

	sent, err := f.svc.SendDailyReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	sent, err = f.svc.SendDailyReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Len(t, f.mailer.reminders, 1)
}

func TestSendDailyReminders_MailFailureIsSkipped(t *testing.T) {
	f := newReminderFixture(time.Date(2024, time.May, 10, 21, 0, 0, 0, time.UTC))
	f.add(reminderUser("a@example.com", "UTC"))
	f.mailer.err = errors.New("smtp down")

	sent, err := f.svc.SendDailyReminders(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, sent)
}

func TestSendDailyReminders_ListFailure(t *testing.T) {
	f := newReminderFixture(time.Date(2024, time.May, 10, 21, 0, 0, 0, time.UTC))
	f.users.err = errors.New("timeout")

	_, err := f.svc.SendDailyReminders(context.Background())

	assert.ErrorIs(t, err, entity.ErrBackend)
}

func TestSendDailyReminders_CanceledContext(t *testing.T) {
	f := newReminderFixture(time.Date(2024, time.May, 10, 21, 0, 0, 0, time.UTC))
	f.add(reminderUser("a@example.com", "UTC"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sent, err := f.svc.SendDailyReminders(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, sent)
}

func TestMailPublisher(t *testing.T) {
	mailer := &fakeMailer{}
	publisher := NewMailPublisher(mailer, nil)

	err := publisher.PublishUserRegistered(context.Background(), &entity.UserRegisteredEvent{
		Email:             "a@example.com",
		VerificationToken: "tok",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a@example.com"}, mailer.verification)

	require.NoError(t, publisher.PublishEntrySaved(context.Background(), &entity.EntrySavedEvent{EntryID: "e1"}))
}
