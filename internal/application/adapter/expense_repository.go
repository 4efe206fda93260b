// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/brokerdash/backend/internal/domain/entity"
)

// ExpenseRepository defines the read side of expense persistence.
type ExpenseRepository interface {
	// FindByUser retrieves the expenses a user recorded during a year.
	FindByUser(ctx context.Context, userID uuid.UUID, year int) ([]entity.Expense, error)

	// FindByTeam retrieves every expense recorded by a team during a year.
	FindByTeam(ctx context.Context, teamID uuid.UUID, year int) ([]entity.Expense, error)
}
