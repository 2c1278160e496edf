package kafka

import (
	"context"
	"fmt"
	"time"

	"journal-service/internal/config"
	"journal-service/internal/domain/entity"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Producer publishes domain events to Kafka
type Producer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewProducer creates a new Kafka producer
func NewProducer(cfg *config.KafkaConfig, logger *zap.Logger) *Producer {
	logger = logger.Named("kafka.producer")

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    10,
		BatchTimeout: 10 * time.Millisecond,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("failed to deliver events", zap.Int("count", len(messages)), zap.Error(err))
			}
		},
	}

	return &Producer{
		writer: writer,
		logger: logger,
	}
}

// PublishUserRegistered publishes a registration or verification request event
func (p *Producer) PublishUserRegistered(ctx context.Context, event *entity.UserRegisteredEvent) error {
	eventType := event.EventType
	if eventType == "" {
		eventType = entity.EventTypeUserRegistered
	}

	data, err := encodeEnvelope(event.EventID, eventType, event.CreatedAt, userRegisteredPayload(event))
	if err != nil {
		return err
	}

	if err := p.publish(ctx, event.UserID, data); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}

	p.logger.Info("published event", zap.String("type", eventType), zap.String("user_id", event.UserID))
	return nil
}

// PublishEntrySaved publishes an entry saved event
func (p *Producer) PublishEntrySaved(ctx context.Context, event *entity.EntrySavedEvent) error {
	data, err := encodeEnvelope(event.EventID, entity.EventTypeEntrySaved, event.SavedAt, entrySavedPayload(event))
	if err != nil {
		return err
	}

	if err := p.publish(ctx, event.UserID, data); err != nil {
		return fmt.Errorf("failed to publish entry saved event: %w", err)
	}

	p.logger.Debug("published event", zap.String("type", entity.EventTypeEntrySaved), zap.String("entry_id", event.EntryID))
	return nil
}

func (p *Producer) publish(ctx context.Context, key string, data []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
}

// Close flushes pending messages and closes the producer
func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
