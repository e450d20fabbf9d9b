package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role enumerates the closed set of account roles.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleAttendant Role = "ATTENDANT"
	RoleSupport   Role = "SUPPORT"
	RoleUser      Role = "USER"
)

// ParseRole validates a role name supplied by a client.
func ParseRole(value string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(value))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleAttendant:
		return RoleAttendant, nil
	case RoleSupport:
		return RoleSupport, nil
	case RoleUser:
		return RoleUser, nil
	default:
		return "", fmt.Errorf("unknown role %q", value)
	}
}

// User is an account holder: administrator, attendant, support analyst or end-user.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
