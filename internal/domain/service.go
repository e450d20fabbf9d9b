package domain

import "time"

// Service is a unit of work derived from a ticket. It is created unassigned
// and tracked until a support analyst completes it. SupportID holds the user
// id of the assigned analyst; the service area is free text and carries no
// referential link to the analysts' registered areas.
type Service struct {
	ID            string
	RequesterName string
	TicketID      string
	ServiceArea   string
	SupportID     *string
	Status        bool
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// Assigned reports whether a support analyst holds the service.
func (s *Service) Assigned() bool {
	return s.SupportID != nil
}

// Deleted reports whether the soft-delete marker is set.
func (s *Service) Deleted() bool {
	return s.DeletedAt != nil
}
