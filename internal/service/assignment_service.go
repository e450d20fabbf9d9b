package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// conflictMessage is the single signal the API exposes for both the
// already-assigned and the area-mismatch cases.
const conflictMessage = "There is already an analyst responding to this service or the service area does not match any support."

// AssignmentService matches support analysts to services and records
// completion.
type AssignmentService struct {
	services   repository.ServiceRepository
	areas      repository.SupportAreaRepository
	dispatcher events.Dispatcher
}

// AssignmentDependencies bundles repositories.
type AssignmentDependencies struct {
	ServiceRepo     repository.ServiceRepository
	SupportAreaRepo repository.SupportAreaRepository
	Dispatcher      events.Dispatcher
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		services:   deps.ServiceRepo,
		areas:      deps.SupportAreaRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Associate claims a service for the calling analyst. Eligibility is an exact
// match between the service's area label and one of the caller's registered
// areas; the first matching registration wins, with no ranking by load or
// recency. The claim itself is a conditional update on an unassigned row, so
// concurrent callers cannot both succeed.
func (s *AssignmentService) Associate(ctx context.Context, caller *domain.User, serviceID string) (*domain.Service, error) {
	if caller == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	service, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service", map[string]any{"id": serviceID})
		}
		return nil, apperrors.MapError(err)
	}
	if service.Assigned() {
		return nil, apperrors.NewConflict(conflictMessage, nil)
	}

	registrations, err := s.areas.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	matched := false
	for _, registration := range registrations {
		if registration.ServiceArea == service.ServiceArea {
			matched = true
			break
		}
	}
	if !matched {
		return nil, apperrors.NewConflict(conflictMessage, nil)
	}

	if err := s.services.AssignSupport(ctx, service.ID, caller.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Lost the race: someone claimed it between the read and the update.
			return nil, apperrors.NewConflict(conflictMessage, nil)
		}
		return nil, apperrors.MapError(err)
	}
	service.SupportID = &caller.ID

	s.publish(ctx, caller, events.EventServiceAssigned, service.ID, events.ServiceAssignedPayload{
		SupportID:   caller.ID,
		ServiceArea: service.ServiceArea,
	})
	return service, nil
}

// Complete records the outcome of a service. Only the assigned analyst may
// close it; a missing service and a foreign caller collapse into the same
// not-found signal.
func (s *AssignmentService) Complete(ctx context.Context, caller *domain.User, serviceID string, status bool, notes string) (*domain.Service, error) {
	if caller == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	service, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service", map[string]any{"id": serviceID})
		}
		return nil, apperrors.MapError(err)
	}
	if !service.Assigned() || *service.SupportID != caller.ID {
		return nil, apperrors.NewNotFound("service", map[string]any{"id": serviceID})
	}

	if err := s.services.Complete(ctx, service.ID, caller.ID, status, notes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service", map[string]any{"id": serviceID})
		}
		return nil, apperrors.MapError(err)
	}
	service.Status = status
	service.Notes = notes

	s.publish(ctx, caller, events.EventServiceCompleted, service.ID, events.ServiceCompletedPayload{
		SupportID: caller.ID,
		Status:    status,
		Notes:     notes,
	})
	return service, nil
}

func (s *AssignmentService) publish(ctx context.Context, actor *domain.User, eventType events.EventType, subjectID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
		Timestamp: time.Now(),
		Payload:   payload,
	}
	_ = s.dispatcher.Publish(ctx, event)
}
