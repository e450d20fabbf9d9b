package util

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestToDomainErrorPassesThrough(t *testing.T) {
	original := NewConflict("conflict message", nil)
	mapped := ToDomainError(original)
	if mapped.Code != "CONFLICT" || mapped.Message != "conflict message" {
		t.Errorf("mapped = %+v, want the original conflict", mapped)
	}
	if mapped.HTTPStatus != 400 {
		t.Errorf("conflict status = %d, want 400", mapped.HTTPStatus)
	}
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	for _, err := range []error{pgx.ErrNoRows, sql.ErrNoRows, fmt.Errorf("query: %w", pgx.ErrNoRows)} {
		mapped := ToDomainError(err)
		if mapped.HTTPStatus != 404 {
			t.Errorf("ToDomainError(%v) status = %d, want 404", err, mapped.HTTPStatus)
		}
		if mapped.Code != "NOT_FOUND" {
			t.Errorf("ToDomainError(%v) code = %q, want NOT_FOUND", err, mapped.Code)
		}
	}
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	cause := errors.New("connection reset")
	mapped := ToDomainError(cause)
	if mapped.HTTPStatus != 500 {
		t.Errorf("status = %d, want 500", mapped.HTTPStatus)
	}
	if !errors.Is(mapped, cause) {
		t.Error("mapped error must wrap the cause")
	}
	if mapped.Message == cause.Error() {
		t.Error("internal details must not leak into the message")
	}
}

func TestToDomainErrorNil(t *testing.T) {
	if got := ToDomainError(nil); got != nil {
		t.Errorf("ToDomainError(nil) = %+v, want nil", got)
	}
}

func TestValidationErrorShape(t *testing.T) {
	err := NewValidationError("Validation error", map[string]any{"name": "required"})
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("want *DomainError, got %T", err)
	}
	if domainErr.HTTPStatus != 422 {
		t.Errorf("status = %d, want 422", domainErr.HTTPStatus)
	}
	if domainErr.Details["name"] != "required" {
		t.Errorf("details = %v, want the field map", domainErr.Details)
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewInternalError(cause)
	if !errors.Is(err, cause) {
		t.Error("NewInternalError must wrap its cause")
	}
}
