package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{Port: 8080},
		JWT: JWTConfig{
			Secret:          "secret",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 720 * time.Hour,
		},
		Reminder: ReminderConfig{Enabled: true, CheckInterval: 15 * time.Minute, Hour: 20},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing secret", func(c *Config) { c.JWT.Secret = " " }, "jwt.secret"},
		{"zero ttl", func(c *Config) { c.JWT.AccessTokenTTL = 0 }, "ttls"},
		{"bad http port", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"grpc disabled", func(c *Config) { c.GRPC.Port = 0 }, ""},
		{"bad grpc port", func(c *Config) { c.GRPC.Port = -1 }, "grpc.port"},
		{"bad reminder hour", func(c *Config) { c.Reminder.Hour = 24 }, "reminder.hour"},
		{"reminder without interval", func(c *Config) { c.Reminder.CheckInterval = 0 }, "check_interval"},
		{"kafka without brokers", func(c *Config) { c.Kafka.Enabled = true }, "kafka.brokers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.JWT.Secret = ""
	cfg.HTTP.Port = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret")
	assert.Contains(t, err.Error(), "http.port")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
service:
  name: journal-service
http:
  port: ${TEST_HTTP_PORT:8080}
jwt:
  secret: from-file
  access_token_ttl: 15m
  refresh_token_ttl: 720h
kafka:
  enabled: false
  brokers:
    - localhost:9092
reminder:
  enabled: false
  hour: 20
ai:
  model: gpt-4o-mini
`), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))
	t.Setenv("TEST_HTTP_PORT", "9000")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.AI.FeedbackEnabled())
	assert.False(t, cfg.SMTP.MailEnabled())
}

func TestLoad_BaseConfig(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join("..", "..", "config", "base.yaml"))
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("JWT_SECRET", "base-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Zero(t, cfg.AI.Timeout)
	assert.Equal(t, 300, cfg.AI.MaxTokens)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestGetDSN(t *testing.T) {
	cfg := &DatabaseConfig{User: "u", Password: "p", Host: "db", Port: 5432, Database: "journal", SSLMode: "disable"}

	assert.Equal(t, "postgres://u:p@db:5432/journal?sslmode=disable", cfg.GetDSN())
}
