// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/brokerdash/backend/internal/domain/entity"
)

// OperationRepository defines the read side of operation persistence.
// Returned operations carry their derived gross and net fees.
type OperationRepository interface {
	// FindByTeam retrieves every operation of a team.
	FindByTeam(ctx context.Context, teamID uuid.UUID) ([]entity.Operation, error)

	// FindByAdvisor retrieves the operations an advisor takes part in, as
	// primary or secondary advisor.
	FindByAdvisor(ctx context.Context, advisorID uuid.UUID) ([]entity.Operation, error)
}
