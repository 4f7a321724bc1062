package model

import (
	"time"
)

// Role represents the role of a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatTurn is one entry of the visible conversation.
type ChatTurn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is one planning conversation: an append-only chat transcript
// plus the history of itineraries produced in it. Current indexes the
// itinerary shown to the user, -1 when none exists yet.
type Session struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Turns       []ChatTurn  `json:"turns"`
	Itineraries []Itinerary `json:"itineraries"`
	Current     int         `json:"current"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Deleted     bool        `json:"deleted,omitempty"`
}

// CreateSessionRequest is the request to open a new planning session.
type CreateSessionRequest struct {
	Title string `json:"title"`
}

// ListSessionsResponse is the response for listing sessions.
type ListSessionsResponse struct {
	Sessions []Session `json:"sessions"`
	Total    int       `json:"total"`
	HasMore  bool      `json:"has_more"`
}

// PlanRequest is the request to generate an itinerary within a session.
type PlanRequest struct {
	Destination string   `json:"destination"`
	Days        int      `json:"days"`
	Budget      string   `json:"budget,omitempty"`
	Interests   []string `json:"interests,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`

	// IATA codes for the flight-price lookup. Both optional; the lookup
	// is skipped when either is missing.
	OriginCode      string `json:"origin_code,omitempty"`
	DestinationCode string `json:"destination_code,omitempty"`

	// Model overrides the default completion model.
	Model string `json:"model,omitempty"`
}

// PlanResponse is the response after a plan request.
type PlanResponse struct {
	Itinerary *Itinerary `json:"itinerary"`
	Reply     string     `json:"reply"`
}

// ListTurnsResponse is the response for listing chat turns.
type ListTurnsResponse struct {
	Turns []ChatTurn `json:"turns"`
}

// ListItinerariesResponse is the response for listing a session's
// itinerary history.
type ListItinerariesResponse struct {
	Itineraries []Itinerary `json:"itineraries"`
	Current     int         `json:"current"`
}
