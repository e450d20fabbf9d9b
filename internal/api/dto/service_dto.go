package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateServiceRequest payload. SupportID is optional; services normally
// start unassigned.
type CreateServiceRequest struct {
	RequesterName string  `json:"requester_name"`
	TicketID      string  `json:"ticket_id"`
	ServiceArea   string  `json:"service_area"`
	SupportID     *string `json:"support_id"`
}

// UpdateServiceRequest payload; the id travels in the body.
type UpdateServiceRequest struct {
	ID            string  `json:"id"`
	RequesterName string  `json:"requester_name"`
	TicketID      string  `json:"ticket_id"`
	ServiceArea   string  `json:"service_area"`
	SupportID     *string `json:"support_id"`
}

// CompleteServiceRequest payload for the completion transition.
type CompleteServiceRequest struct {
	Status *bool  `json:"status"`
	Notes  string `json:"notes"`
}

// ServiceResponse projects a service.
type ServiceResponse struct {
	ID            string     `json:"id"`
	RequesterName string     `json:"requester_name"`
	TicketID      string     `json:"ticket_id"`
	ServiceArea   string     `json:"service_area"`
	SupportID     *string    `json:"support_id"`
	Status        bool       `json:"status"`
	Notes         string     `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

// NewServiceResponse maps a domain service.
func NewServiceResponse(service *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:            service.ID,
		RequesterName: service.RequesterName,
		TicketID:      service.TicketID,
		ServiceArea:   service.ServiceArea,
		SupportID:     service.SupportID,
		Status:        service.Status,
		Notes:         service.Notes,
		CreatedAt:     service.CreatedAt,
		UpdatedAt:     service.UpdatedAt,
		DeletedAt:     service.DeletedAt,
	}
}

// NewServiceResponses maps a slice of services.
func NewServiceResponses(services []domain.Service) []ServiceResponse {
	items := make([]ServiceResponse, 0, len(services))
	for i := range services {
		items = append(items, NewServiceResponse(&services[i]))
	}
	return items
}
