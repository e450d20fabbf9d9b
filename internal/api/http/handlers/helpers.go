package handlers

import (
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// principalUser unwraps the authenticated user, nil when unauthenticated.
func principalUser(principal *auth.Principal) *domain.User {
	if principal == nil {
		return nil
	}
	return principal.User
}
