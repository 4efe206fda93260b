// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/brokerdash/backend/internal/domain/entity"
)

// UserRepository defines the interface for user lookups.
type UserRepository interface {
	// FindByID retrieves a user's reporting context by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.UserContext, error)

	// FindByTeam retrieves every member of a team.
	FindByTeam(ctx context.Context, teamID uuid.UUID) ([]*entity.UserContext, error)

	// FindTeamLeaders retrieves every team leader, used by the monthly digest.
	FindTeamLeaders(ctx context.Context) ([]*entity.UserContext, error)
}
