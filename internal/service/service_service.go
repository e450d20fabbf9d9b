package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// ServiceCreateInput carries the fields a service is created or updated with.
// SupportID is optional: services normally start unassigned.
type ServiceCreateInput struct {
	RequesterName string
	TicketID      string
	ServiceArea   string
	SupportID     *string
}

// ServiceService coordinates service CRUD, projections and lifecycle.
type ServiceService struct {
	services   repository.ServiceRepository
	dispatcher events.Dispatcher
}

// NewServiceService creates the service.
func NewServiceService(services repository.ServiceRepository, dispatcher events.Dispatcher) *ServiceService {
	return &ServiceService{services: services, dispatcher: dispatcher}
}

func validateServiceInput(input ServiceCreateInput) error {
	fields := map[string]any{}
	if strings.TrimSpace(input.RequesterName) == "" {
		fields["requester_name"] = "required"
	}
	if strings.TrimSpace(input.TicketID) == "" {
		fields["ticket_id"] = "required"
	}
	if strings.TrimSpace(input.ServiceArea) == "" {
		fields["service_area"] = "required"
	}
	if len(fields) > 0 {
		return apperrors.NewValidationError("Validation error", fields)
	}
	return nil
}

// Create opens a new service with status=false and empty notes.
func (s *ServiceService) Create(ctx context.Context, actor *domain.User, input ServiceCreateInput) (*domain.Service, error) {
	if err := validateServiceInput(input); err != nil {
		return nil, err
	}

	service := &domain.Service{
		RequesterName: input.RequesterName,
		TicketID:      input.TicketID,
		ServiceArea:   input.ServiceArea,
		SupportID:     input.SupportID,
		Status:        false,
		Notes:         "",
	}
	if err := s.services.Create(ctx, service); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, actor, events.EventServiceCreated, service.ID, events.ServiceCreatedPayload{
		TicketID:    service.TicketID,
		ServiceArea: service.ServiceArea,
		SupportID:   service.SupportID,
	})
	return service, nil
}

// Update replaces all mutable fields of a live service.
func (s *ServiceService) Update(ctx context.Context, id string, input ServiceCreateInput) (*domain.Service, error) {
	if err := validateServiceInput(input); err != nil {
		return nil, err
	}

	service, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	service.RequesterName = input.RequesterName
	service.TicketID = input.TicketID
	service.ServiceArea = input.ServiceArea
	service.SupportID = input.SupportID
	if err := s.services.Update(ctx, service); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return service, nil
}

// FindAll lists live services.
func (s *ServiceService) FindAll(ctx context.Context) ([]domain.Service, error) {
	services, err := s.services.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return services, nil
}

// FindByID fetches a live service.
func (s *ServiceService) FindByID(ctx context.Context, id string) (*domain.Service, error) {
	service, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return service, nil
}

// FindBySupportID lists the services assigned to an analyst. No match is an
// empty list, not an error.
func (s *ServiceService) FindBySupportID(ctx context.Context, supportID string) ([]domain.Service, error) {
	services, err := s.services.ListBySupport(ctx, supportID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return services, nil
}

// FindByTicketID lists the services opened under a ticket.
func (s *ServiceService) FindByTicketID(ctx context.Context, ticketID string) ([]domain.Service, error) {
	services, err := s.services.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return services, nil
}

// ListAreas projects the area label of every live service, duplicates kept.
func (s *ServiceService) ListAreas(ctx context.Context) ([]string, error) {
	areas, err := s.services.ListAreas(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return areas, nil
}

// ListServiceTypes projects the resolution notes of every live service.
func (s *ServiceService) ListServiceTypes(ctx context.Context) ([]string, error) {
	types, err := s.services.ListServiceTypes(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return types, nil
}

// ListUnassigned returns services no analyst has claimed yet.
func (s *ServiceService) ListUnassigned(ctx context.Context) ([]domain.Service, error) {
	services, err := s.services.ListUnassigned(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return services, nil
}

// ListByStatus filters on the completion flag.
func (s *ServiceService) ListByStatus(ctx context.Context, complete bool) ([]domain.Service, error) {
	services, err := s.services.ListByStatus(ctx, complete)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return services, nil
}

// SoftDelete marks the service deleted.
func (s *ServiceService) SoftDelete(ctx context.Context, id string) error {
	if err := s.services.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("service", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// Restore clears the delete marker; only a never-existing id is a not-found.
func (s *ServiceService) Restore(ctx context.Context, id string) error {
	if _, err := s.services.GetByIDIncludeDeleted(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("service", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	if err := s.services.Restore(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *ServiceService) publish(ctx context.Context, actor *domain.User, eventType events.EventType, subjectID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now(),
		Payload:   payload,
	}
	if actor != nil {
		event.Actor = events.Actor{UserID: actor.ID, Role: actor.Role}
	}
	_ = s.dispatcher.Publish(ctx, event)
}
