package model

import (
	"time"
)

// EventType represents the type of planning event.
type EventType string

const (
	EventTypeItineraryCreated EventType = "itinerary_created"
	EventTypePlanFailed       EventType = "plan_failed"
)

// PlanEvent represents an event emitted during plan processing.
type PlanEvent struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	ItineraryID string    `json:"itinerary_id,omitempty"`
	Type        EventType `json:"type"`
	Destination string    `json:"destination,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
