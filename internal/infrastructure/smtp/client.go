package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"path/filepath"

	"journal-service/internal/config"
	"journal-service/internal/domain/entity"

	"gopkg.in/gomail.v2"
)

const (
	templateVerification = "verification"
	templateReminder     = "reminder"
)

// Sender delivers a rendered message
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Client sends transactional emails over SMTP
type Client struct {
	cfg       *config.SMTPConfig
	emailCfg  *config.EmailConfig
	sender    Sender
	templates map[string]*template.Template
}

// NewClient creates a new SMTP client
func NewClient(cfg *config.SMTPConfig, emailCfg *config.EmailConfig) (*Client, error) {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	// UseTLS selects STARTTLS (587); otherwise implicit SSL (465)
	d.SSL = !cfg.UseTLS
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}

	return NewClientWithSender(cfg, emailCfg, d)
}

// NewClientWithSender creates a client delivering through sender
func NewClientWithSender(cfg *config.SMTPConfig, emailCfg *config.EmailConfig, sender Sender) (*Client, error) {
	client := &Client{
		cfg:       cfg,
		emailCfg:  emailCfg,
		sender:    sender,
		templates: make(map[string]*template.Template),
	}

	if err := client.loadTemplates(); err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}

	return client, nil
}

// loadTemplates prefers files under TemplatesPath and falls back to the built-in ones
func (c *Client) loadTemplates() error {
	defaults := map[string]string{
		templateVerification: defaultVerificationTemplate,
		templateReminder:     defaultReminderTemplate,
	}

	for name, fallback := range defaults {
		tmpl, err := template.ParseFiles(filepath.Join(c.emailCfg.TemplatesPath, name+".html"))
		if err != nil {
			tmpl, err = template.New(name).Parse(fallback)
			if err != nil {
				return fmt.Errorf("failed to parse default %s template: %w", name, err)
			}
		}
		c.templates[name] = tmpl
	}

	return nil
}

// SendVerificationEmail sends an email verification link
func (c *Client) SendVerificationEmail(ctx context.Context, to, name, verificationToken string) error {
	verificationURL := fmt.Sprintf("%s?token=%s", c.emailCfg.VerificationURL, verificationToken)

	body, err := c.renderTemplate(templateVerification, map[string]interface{}{
		"Name":            name,
		"VerificationURL": verificationURL,
	})
	if err != nil {
		return fmt.Errorf("failed to render verification email: %w", err)
	}

	return c.send(ctx, to, "Verify Your Email - Daily Journal", body)
}

// SendReminderEmail reminds the user to rate and describe day
func (c *Client) SendReminderEmail(ctx context.Context, to, name string, day entity.DayKey) error {
	body, err := c.renderTemplate(templateReminder, map[string]interface{}{
		"Name":   name,
		"Day":    day.Date().Format("Monday, January 2"),
		"AppURL": c.emailCfg.AppURL,
	})
	if err != nil {
		return fmt.Errorf("failed to render reminder email: %w", err)
	}

	return c.send(ctx, to, "How was your day? - Daily Journal", body)
}

func (c *Client) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", c.cfg.FromEmail, c.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := c.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (c *Client) renderTemplate(templateName string, data interface{}) (string, error) {
	tmpl, exists := c.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

const defaultVerificationTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Verify Your Email</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #6B5B95;">Welcome to Daily Journal!</h2>
        <p>Hi{{if .Name}} {{.Name}}{{end}},</p>
        <p>Please confirm your email address to start rating and writing about your days:</p>
        <div style="text-align: center; margin: 30px 0;">
            <a href="{{.VerificationURL}}" style="background-color: #6B5B95; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">Verify Email</a>
        </div>
        <p>Or copy and paste this link into your browser:</p>
        <p style="word-break: break-all; color: #666;">{{.VerificationURL}}</p>
        <p>If you didn't create an account, please ignore this email.</p>
    </div>
</body>
</html>
`

const defaultReminderTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>How was your day?</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #6B5B95;">How was your day?</h2>
        <p>Hi{{if .Name}} {{.Name}}{{end}},</p>
        <p>You haven't rated {{.Day}} yet. Take a minute to rate it from 😡 to 😍 and jot down a few lines.</p>
        {{if .AppURL}}<div style="text-align: center; margin: 30px 0;">
            <a href="{{.AppURL}}" style="background-color: #6B5B95; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">Open my journal</a>
        </div>{{end}}
        <p style="color: #999; font-size: 12px;">You can turn off reminders in your account settings.</p>
    </div>
</body>
</html>
`
