package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Name           string `json:"name"`
	Client         string `json:"client"`
	OccupationArea string `json:"occupation_area"`
}

// UpdateTicketRequest payload; the id travels in the body.
type UpdateTicketRequest struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Client         string `json:"client"`
	OccupationArea string `json:"occupation_area"`
}

// TicketResponse projects a ticket.
type TicketResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Client         string     `json:"client"`
	OccupationArea string     `json:"occupation_area"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:             ticket.ID,
		Name:           ticket.Name,
		Client:         ticket.Client,
		OccupationArea: ticket.OccupationArea,
		CreatedAt:      ticket.CreatedAt,
		UpdatedAt:      ticket.UpdatedAt,
		DeletedAt:      ticket.DeletedAt,
	}
}

// NewTicketResponses maps a slice of tickets.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	items := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, NewTicketResponse(&tickets[i]))
	}
	return items
}
