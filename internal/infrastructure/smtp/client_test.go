package smtp

import (
	"context"
	"errors"
	"testing"
	"time"

	"journal-service/internal/config"
	"journal-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeSender struct {
	messages []*gomail.Message
	err      error
}

func (s *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if s.err != nil {
		return s.err
	}
	s.messages = append(s.messages, m...)
	return nil
}

func newTestClient(t *testing.T, sender Sender) *Client {
	t.Helper()
	client, err := NewClientWithSender(
		&config.SMTPConfig{FromEmail: "journal@example.com", FromName: "Daily Journal"},
		&config.EmailConfig{
			TemplatesPath:   t.TempDir(),
			VerificationURL: "https://journal.example.com/verify",
			AppURL:          "https://journal.example.com",
		},
		sender,
	)
	require.NoError(t, err)
	return client
}

func TestSendVerificationEmail(t *testing.T) {
	sender := &fakeSender{}
	client := newTestClient(t, sender)

	require.NoError(t, client.SendVerificationEmail(context.Background(), "a@example.com", "Sam", "abc123"))

	require.Len(t, sender.messages, 1)
	m := sender.messages[0]
	assert.Equal(t, []string{"a@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Verify Your Email - Daily Journal"}, m.GetHeader("Subject"))
	assert.Contains(t, m.GetHeader("From")[0], "journal@example.com")
}

func TestSendReminderEmail(t *testing.T) {
	sender := &fakeSender{}
	client := newTestClient(t, sender)
	day := entity.NewDayKey(2024, time.May, 10, time.UTC)

	require.NoError(t, client.SendReminderEmail(context.Background(), "a@example.com", "Sam", day))

	require.Len(t, sender.messages, 1)
	assert.Equal(t, []string{"How was your day? - Daily Journal"}, sender.messages[0].GetHeader("Subject"))
}

func TestRenderTemplate(t *testing.T) {
	client := newTestClient(t, &fakeSender{})

	out, err := client.renderTemplate(templateVerification, map[string]interface{}{
		"Name":            "Sam",
		"VerificationURL": "https://journal.example.com/verify?token=abc123",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Hi Sam,")
	assert.Contains(t, out, "https://journal.example.com/verify?token=abc123")

	out, err = client.renderTemplate(templateReminder, map[string]interface{}{
		"Name":   "",
		"Day":    entity.NewDayKey(2024, time.May, 10, time.UTC).Date().Format("Monday, January 2"),
		"AppURL": "",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Friday, May 10")
	assert.NotContains(t, out, "Open my journal")

	_, err = client.renderTemplate("missing", nil)
	assert.Error(t, err)
}

func TestSend_Failures(t *testing.T) {
	client := newTestClient(t, &fakeSender{err: errors.New("connection refused")})
	err := client.SendVerificationEmail(context.Background(), "a@example.com", "", "abc")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sender := &fakeSender{}
	client = newTestClient(t, sender)
	assert.ErrorIs(t, client.SendReminderEmail(ctx, "a@example.com", "", entity.NewDayKey(2024, time.May, 10, time.UTC)), context.Canceled)
	assert.Empty(t, sender.messages)
}
