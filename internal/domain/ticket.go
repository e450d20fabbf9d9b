package domain

import "time"

// Ticket is a customer request opened by an attendant.
type Ticket struct {
	ID             string
	Name           string
	Client         string
	OccupationArea string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

// Deleted reports whether the soft-delete marker is set.
func (t *Ticket) Deleted() bool {
	return t.DeletedAt != nil
}
