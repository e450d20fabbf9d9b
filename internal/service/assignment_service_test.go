package service

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func assertHTTPStatus(t *testing.T, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("want error with status %d, got nil", want)
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("want *DomainError, got %T: %v", err, err)
	}
	if domainErr.HTTPStatus != want {
		t.Errorf("HTTPStatus = %d, want %d (message %q)", domainErr.HTTPStatus, want, domainErr.Message)
	}
}

func supportUser(id string) *domain.User {
	return &domain.User{ID: id, Name: "Analyst " + id, Role: domain.RoleSupport}
}

func seedService(t *testing.T, repo *fakeServiceRepo, area string) *domain.Service {
	t.Helper()
	service := &domain.Service{RequesterName: "Alice", TicketID: "ticket-1", ServiceArea: area}
	if err := repo.Create(context.Background(), service); err != nil {
		t.Fatalf("seed service: %v", err)
	}
	return service
}

func TestAssociateClaimsMatchingService(t *testing.T) {
	ctx := context.Background()
	services := newFakeServiceRepo()
	areas := &fakeAreaRepo{}
	assignment := NewAssignmentService(AssignmentDependencies{ServiceRepo: services, SupportAreaRepo: areas})

	caller := supportUser("user-7")
	if err := areas.Create(ctx, &domain.SupportArea{UserID: caller.ID, ServiceArea: "Billing"}); err != nil {
		t.Fatalf("register area: %v", err)
	}
	seeded := seedService(t, services, "Billing")

	got, err := assignment.Associate(ctx, caller, seeded.ID)
	if err != nil {
		t.Fatalf("Associate: %v", err)
	}
	if got.SupportID == nil || *got.SupportID != caller.ID {
		t.Errorf("SupportID = %v, want %q", got.SupportID, caller.ID)
	}

	stored, err := services.GetByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID after associate: %v", err)
	}
	if stored.SupportID == nil || *stored.SupportID != caller.ID {
		t.Errorf("stored SupportID = %v, want %q", stored.SupportID, caller.ID)
	}
}

func TestAssociateRejectsAlreadyAssigned(t *testing.T) {
	ctx := context.Background()
	services := newFakeServiceRepo()
	areas := &fakeAreaRepo{}
	assignment := NewAssignmentService(AssignmentDependencies{ServiceRepo: services, SupportAreaRepo: areas})

	caller := supportUser("user-7")
	if err := areas.Create(ctx, &domain.SupportArea{UserID: caller.ID, ServiceArea: "Billing"}); err != nil {
		t.Fatalf("register area: %v", err)
	}
	seeded := seedService(t, services, "Billing")
	if err := services.AssignSupport(ctx, seeded.ID, "user-99"); err != nil {
		t.Fatalf("pre-assign: %v", err)
	}

	_, err := assignment.Associate(ctx, caller, seeded.ID)
	assertHTTPStatus(t, err, 400)
	var domainErr *apperrors.DomainError
	errors.As(err, &domainErr)
	if domainErr.Message != conflictMessage {
		t.Errorf("message = %q, want the collapsed conflict message", domainErr.Message)
	}
}

func TestAssociateRejectsAreaMismatch(t *testing.T) {
	ctx := context.Background()
	services := newFakeServiceRepo()
	areas := &fakeAreaRepo{}
	assignment := NewAssignmentService(AssignmentDependencies{ServiceRepo: services, SupportAreaRepo: areas})

	caller := supportUser("user-7")
	if err := areas.Create(ctx, &domain.SupportArea{UserID: caller.ID, ServiceArea: "Networking"}); err != nil {
		t.Fatalf("register area: %v", err)
	}
	seeded := seedService(t, services, "Billing")

	_, err := assignment.Associate(ctx, caller, seeded.ID)
	assertHTTPStatus(t, err, 400)
}

func TestAssociateMatchesAnyRegistration(t *testing.T) {
	ctx := context.Background()
	services := newFakeServiceRepo()
	areas := &fakeAreaRepo{}
	assignment := NewAssignmentService(AssignmentDependencies{ServiceRepo: services, SupportAreaRepo: areas})

	caller := supportUser("user-7")
	for _, label := range []string{"Networking", "Billing", "Hardware"} {
		if err := areas.Create(ctx, &domain.SupportArea{UserID: caller.ID, ServiceArea: label}); err != nil {
			t.Fatalf("register area: %v", err)
		}
	}
	seeded := seedService(t, services, "Hardware")

	if _, err := assignment.Associate(ctx, caller, seeded.ID); err != nil {
		t.Fatalf("Associate with multiple registrations: %v", err)
	}
}

func TestAssociateMissingServiceIsNotFound(t *testing.T) {
	assignment := NewAssignmentService(AssignmentDependencies{ServiceRepo: newFakeServiceRepo(), SupportAreaRepo: &fakeAreaRepo{}})
	_, err := assignment.Associate(context.Background(), supportUser("user-7"), "no-such-id")
	assertHTTPStatus(t, err, 404)
}

// racingServiceRepo lets a rival claim the row between the eligibility read
// and the conditional update.
type racingServiceRepo struct {
	*fakeServiceRepo
	rival string
}

func (r *racingServiceRepo) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	service, err := r.fakeServiceRepo.GetByID(ctx, id)
	if err == nil && service.SupportID == nil {
		if assignErr := r.fakeServiceRepo.AssignSupport(ctx, id, r.rival); assignErr != nil {
			return nil, assignErr
		}
	}
	return service, err
}

func TestAssociateLosingTheRaceIsConflict(t *testing.T) {
	ctx := context.Background()
	inner := newFakeServiceRepo()
	areas := &fakeAreaRepo{}

	caller := supportUser("user-7")
	if err := areas.Create(ctx, &domain.SupportArea{UserID: caller.ID, ServiceArea: "Billing"}); err != nil {
		t.Fatalf("register area: %v", err)
	}
	seeded := seedService(t, inner, "Billing")

	racing := &racingServiceRepo{fakeServiceRepo: inner, rival: "user-99"}
	assignment := NewAssignmentService(AssignmentDependencies{ServiceRepo: racing, SupportAreaRepo: areas})

	_, err := assignment.Associate(ctx, caller, seeded.ID)
	assertHTTPStatus(t, err, 400)

	stored, err := inner.GetByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID after race: %v", err)
	}
	if stored.SupportID == nil || *stored.SupportID != "user-99" {
		t.Errorf("winner = %v, want rival user-99", stored.SupportID)
	}
}

func TestCompleteByAssignedAnalyst(t *testing.T) {
	ctx := context.Background()
	services := newFakeServiceRepo()
	assignment := NewAssignmentService(AssignmentDependencies{ServiceRepo: services, SupportAreaRepo: &fakeAreaRepo{}})

	caller := supportUser("user-7")
	seeded := seedService(t, services, "Billing")
	if err := services.AssignSupport(ctx, seeded.ID, caller.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	got, err := assignment.Complete(ctx, caller, seeded.ID, true, "replaced the router")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !got.Status {
		t.Error("Status = false, want true")
	}
	if got.Notes != "replaced the router" {
		t.Errorf("Notes = %q, want the submitted notes", got.Notes)
	}

	stored, _ := services.GetByID(ctx, seeded.ID)
	if !stored.Status || stored.Notes != "replaced the router" {
		t.Errorf("stored status/notes = %v/%q, want true/%q", stored.Status, stored.Notes, "replaced the router")
	}
}

func TestCompleteByForeignAnalystIsNotFound(t *testing.T) {
	ctx := context.Background()
	services := newFakeServiceRepo()
	assignment := NewAssignmentService(AssignmentDependencies{ServiceRepo: services, SupportAreaRepo: &fakeAreaRepo{}})

	seeded := seedService(t, services, "Billing")
	if err := services.AssignSupport(ctx, seeded.ID, "user-99"); err != nil {
		t.Fatalf("assign: %v", err)
	}

	_, err := assignment.Complete(ctx, supportUser("user-7"), seeded.ID, true, "not mine")
	assertHTTPStatus(t, err, 404)

	stored, _ := services.GetByID(ctx, seeded.ID)
	if stored.Status {
		t.Error("foreign caller must not flip the status")
	}
}

func TestCompleteUnassignedIsNotFound(t *testing.T) {
	ctx := context.Background()
	services := newFakeServiceRepo()
	assignment := NewAssignmentService(AssignmentDependencies{ServiceRepo: services, SupportAreaRepo: &fakeAreaRepo{}})

	seeded := seedService(t, services, "Billing")
	_, err := assignment.Complete(ctx, supportUser("user-7"), seeded.ID, true, "")
	assertHTTPStatus(t, err, 404)
}
