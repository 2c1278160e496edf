package kafka

import (
	"fmt"
	"time"

	"journal-service/internal/domain/entity"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Envelope keys of an encoded event
const (
	fieldEventID    = "event_id"
	fieldEventType  = "event_type"
	fieldOccurredAt = "occurred_at"
	fieldPayload    = "payload"
)

// Envelope is a decoded event
type Envelope struct {
	EventID    string
	EventType  string
	OccurredAt time.Time
	Payload    map[string]any
}

// encodeEnvelope marshals an event as a protobuf Struct
func encodeEnvelope(eventID, eventType string, occurredAt time.Time, payload map[string]any) ([]byte, error) {
	msg, err := structpb.NewStruct(map[string]any{
		fieldEventID:    eventID,
		fieldEventType:  eventType,
		fieldOccurredAt: occurredAt.UTC().Format(time.RFC3339Nano),
		fieldPayload:    payload,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build event: %w", err)
	}

	data, err := proto.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	return data, nil
}

// DecodeEnvelope unmarshals a message produced by encodeEnvelope
func DecodeEnvelope(data []byte) (*Envelope, error) {
	var msg structpb.Struct
	if err := proto.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	fields := msg.GetFields()
	env := &Envelope{
		EventID:   fields[fieldEventID].GetStringValue(),
		EventType: fields[fieldEventType].GetStringValue(),
		Payload:   fields[fieldPayload].GetStructValue().AsMap(),
	}
	if env.EventType == "" {
		return nil, fmt.Errorf("event %q has no type", env.EventID)
	}

	if ts := fields[fieldOccurredAt].GetStringValue(); ts != "" {
		occurredAt, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse event time: %w", err)
		}
		env.OccurredAt = occurredAt
	}

	return env, nil
}

func userRegisteredPayload(event *entity.UserRegisteredEvent) map[string]any {
	return map[string]any{
		"user_id":            event.UserID,
		"email":              event.Email,
		"full_name":          event.FullName,
		"verification_token": event.VerificationToken,
	}
}

func entrySavedPayload(event *entity.EntrySavedEvent) map[string]any {
	payload := map[string]any{
		"user_id":   event.UserID,
		"entry_id":  event.EntryID,
		"entry_day": event.EntryDay,
		"has_text":  event.HasText,
	}
	if event.Rating != nil {
		payload["rating"] = float64(*event.Rating)
	}
	return payload
}

// UserRegistered extracts the registration payload of an envelope
func (e *Envelope) UserRegistered() *entity.UserRegisteredEvent {
	return &entity.UserRegisteredEvent{
		EventID:           e.EventID,
		EventType:         e.EventType,
		UserID:            payloadString(e.Payload, "user_id"),
		Email:             payloadString(e.Payload, "email"),
		FullName:          payloadString(e.Payload, "full_name"),
		VerificationToken: payloadString(e.Payload, "verification_token"),
		CreatedAt:         e.OccurredAt,
	}
}

// EntrySaved extracts the entry payload of an envelope
func (e *Envelope) EntrySaved() *entity.EntrySavedEvent {
	event := &entity.EntrySavedEvent{
		EventID:  e.EventID,
		UserID:   payloadString(e.Payload, "user_id"),
		EntryID:  payloadString(e.Payload, "entry_id"),
		EntryDay: payloadString(e.Payload, "entry_day"),
		SavedAt:  e.OccurredAt,
	}
	if hasText, ok := e.Payload["has_text"].(bool); ok {
		event.HasText = hasText
	}
	if rating, ok := e.Payload["rating"].(float64); ok {
		r := int32(rating)
		event.Rating = &r
	}
	return event
}

func payloadString(payload map[string]any, key string) string {
	s, _ := payload[key].(string)
	return s
}
