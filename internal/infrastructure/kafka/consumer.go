package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"journal-service/internal/config"
	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/service"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Consumer reads journal events and sends the emails they ask for
type Consumer struct {
	reader *kafka.Reader
	mailer service.Mailer
	logger *zap.Logger
}

// NewConsumer creates a new Kafka consumer
func NewConsumer(cfg *config.KafkaConfig, mailer service.Mailer, logger *zap.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		Topic:          cfg.Topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
	})

	return &Consumer{
		reader: reader,
		mailer: mailer,
		logger: logger.Named("kafka.consumer"),
	}
}

// Start consumes messages until ctx is cancelled
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("starting kafka consumer")

	for {
		message, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				c.logger.Info("stopping kafka consumer")
				return nil
			}
			c.logger.Error("failed to read message", zap.Error(err))
			continue
		}

		if err := c.processMessage(ctx, message.Value); err != nil {
			// one bad message must not stop the stream
			c.logger.Error("failed to process message",
				zap.Int64("offset", message.Offset),
				zap.Error(err),
			)
		}
	}
}

// processMessage dispatches a single encoded event
func (c *Consumer) processMessage(ctx context.Context, data []byte) error {
	env, err := DecodeEnvelope(data)
	if err != nil {
		return err
	}

	c.logger.Debug("received event", zap.String("type", env.EventType), zap.String("event_id", env.EventID))

	switch env.EventType {
	case entity.EventTypeUserRegistered, entity.EventTypeVerificationRequested:
		return c.handleVerification(ctx, env.UserRegistered())
	case entity.EventTypeEntrySaved:
		return nil
	default:
		c.logger.Warn("unknown event type", zap.String("type", env.EventType))
		return nil
	}
}

func (c *Consumer) handleVerification(ctx context.Context, event *entity.UserRegisteredEvent) error {
	if event.Email == "" || event.VerificationToken == "" {
		return fmt.Errorf("verification event %s is incomplete", event.EventID)
	}

	if err := c.mailer.SendVerificationEmail(ctx, event.Email, event.FullName, event.VerificationToken); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	c.logger.Info("verification email sent", zap.String("user_id", event.UserID))
	return nil
}

// Close closes the Kafka consumer
func (c *Consumer) Close() error {
	if c.reader != nil {
		return c.reader.Close()
	}
	return nil
}
