// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Role represents what a user is allowed to see.
type Role string

const (
	// RoleAdvisor sees only the operations they take part in.
	RoleAdvisor Role = "advisor"
	// RoleTeamLeader sees team-wide aggregates.
	RoleTeamLeader Role = "team_leader"
)

// UserContext is the user configuration every report is computed for.
type UserContext struct {
	UserID         uuid.UUID
	TeamID         uuid.UUID
	Name           string
	Email          string
	Role           Role
	CurrencySymbol string
	// Objective is the annual gross commission target.
	Objective decimal.Decimal
}

// IsTeamLeader reports whether the user sees team-wide aggregates.
func (u UserContext) IsTeamLeader() bool {
	return u.Role == RoleTeamLeader
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdvisor || r == RoleTeamLeader
}
