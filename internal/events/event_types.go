package events

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated    EventType = "ticket_created"
	EventServiceCreated   EventType = "service_created"
	EventServiceAssigned  EventType = "service_assigned"
	EventServiceCompleted EventType = "service_completed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Name           string `json:"name"`
	Client         string `json:"client"`
	OccupationArea string `json:"occupation_area"`
}

// ServiceCreatedPayload payload.
type ServiceCreatedPayload struct {
	TicketID    string  `json:"ticket_id"`
	ServiceArea string  `json:"service_area"`
	SupportID   *string `json:"support_id,omitempty"`
}

// ServiceAssignedPayload payload.
type ServiceAssignedPayload struct {
	SupportID   string `json:"support_id"`
	ServiceArea string `json:"service_area"`
}

// ServiceCompletedPayload payload.
type ServiceCompletedPayload struct {
	SupportID string `json:"support_id"`
	Status    bool   `json:"status"`
	Notes     string `json:"notes"`
}
