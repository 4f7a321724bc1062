package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/tripgpt/planning-platform/internal/model"
)

const (
	// StreamName is the name of the itinerary events stream.
	StreamName = "ITINERARIES"

	// SubjectPrefix is the prefix for all itinerary event subjects.
	SubjectPrefix = "trip"
)

// EventPublisher publishes planning events to JetStream for downstream
// consumers (notifications, analytics). A nil publisher is valid and
// drops all events, so event publishing can be disabled by config.
type EventPublisher struct {
	client *Client
}

// NewEventPublisher creates a new event publisher.
func NewEventPublisher(client *Client) *EventPublisher {
	return &EventPublisher{client: client}
}

// EnsureStream ensures the itinerary events stream exists.
func (p *EventPublisher) EnsureStream(ctx context.Context) error {
	js := p.client.JetStream()

	_, err := js.Stream(ctx, StreamName)
	if err == nil {
		return nil // Stream already exists
	}

	_, err = js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{fmt.Sprintf("%s.>", SubjectPrefix)},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      30 * 24 * time.Hour,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Compression: jetstream.S2Compression,
		Description: "Itinerary planning events",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	return nil
}

// EventSubject returns the subject for a planning event.
func EventSubject(sessionID string, eventType model.EventType) string {
	return fmt.Sprintf("%s.%s.event.%s", SubjectPrefix, sessionID, eventType)
}

// Publish publishes a planning event. A nil publisher is a no-op.
func (p *EventPublisher) Publish(ctx context.Context, event *model.PlanEvent) error {
	if p == nil || p.client == nil {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := EventSubject(event.SessionID, event.Type)
	if _, err := p.client.JetStream().Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
