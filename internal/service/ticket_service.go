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

// TicketCreateInput carries the fields a ticket is created or updated with.
type TicketCreateInput struct {
	Name           string
	Client         string
	OccupationArea string
}

// TicketService coordinates ticket CRUD and lifecycle.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// NewTicketService creates the service.
func NewTicketService(tickets repository.TicketRepository, dispatcher events.Dispatcher) *TicketService {
	return &TicketService{tickets: tickets, dispatcher: dispatcher}
}

func validateTicketInput(input TicketCreateInput) error {
	fields := map[string]any{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "required"
	}
	if strings.TrimSpace(input.Client) == "" {
		fields["client"] = "required"
	}
	if strings.TrimSpace(input.OccupationArea) == "" {
		fields["occupation_area"] = "required"
	}
	if len(fields) > 0 {
		return apperrors.NewValidationError("Validation error", fields)
	}
	return nil
}

// Create opens a new ticket.
func (s *TicketService) Create(ctx context.Context, actor *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	if err := validateTicketInput(input); err != nil {
		return nil, err
	}

	ticket := &domain.Ticket{
		Name:           input.Name,
		Client:         input.Client,
		OccupationArea: input.OccupationArea,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, actor, events.EventTicketCreated, ticket.ID, events.TicketCreatedPayload{
		Name:           ticket.Name,
		Client:         ticket.Client,
		OccupationArea: ticket.OccupationArea,
	})
	return ticket, nil
}

// Update replaces the mutable fields of a live ticket.
func (s *TicketService) Update(ctx context.Context, id string, input TicketCreateInput) (*domain.Ticket, error) {
	if err := validateTicketInput(input); err != nil {
		return nil, err
	}

	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	ticket.Name = input.Name
	ticket.Client = input.Client
	ticket.OccupationArea = input.OccupationArea
	if err := s.tickets.Update(ctx, ticket); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// FindAll lists live tickets; an empty list is not an error.
func (s *TicketService) FindAll(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// FindByID fetches a live ticket.
func (s *TicketService) FindByID(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// SoftDelete marks the ticket deleted.
func (s *TicketService) SoftDelete(ctx context.Context, id string) error {
	if err := s.tickets.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// Restore clears the delete marker. Existence is checked independent of the
// delete state: only an id that never existed is a not-found.
func (s *TicketService) Restore(ctx context.Context, id string) error {
	if _, err := s.tickets.GetByIDIncludeDeleted(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	if err := s.tickets.Restore(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *TicketService) publish(ctx context.Context, actor *domain.User, eventType events.EventType, subjectID string, payload any) {
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
