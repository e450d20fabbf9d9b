package domain

import "time"

// SupportArea registers that a support-role user serves a given service area.
// An analyst holds one row per area; rows are created at registration time and
// never mutated.
type SupportArea struct {
	ID          string
	UserID      string
	ServiceArea string
	CreatedAt   time.Time
}
