// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brokerdash/backend/internal/application/adapter"
	"github.com/brokerdash/backend/internal/domain/analytics"
	"github.com/brokerdash/backend/internal/domain/entity"
	"github.com/brokerdash/backend/internal/integration/persistence/model"
)

// operationRepository implements the adapter.OperationRepository interface.
type operationRepository struct {
	db *gorm.DB
}

// NewOperationRepository creates a new operation repository instance.
func NewOperationRepository(db *gorm.DB) adapter.OperationRepository {
	return &operationRepository{
		db: db,
	}
}

// FindByTeam retrieves every operation of a team.
func (r *operationRepository) FindByTeam(ctx context.Context, teamID uuid.UUID) ([]entity.Operation, error) {
	var models []model.OperationModel
	result := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at ASC, id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return toOperations(models), nil
}

// FindByAdvisor retrieves the operations an advisor takes part in, either as
// the primary or as the secondary advisor.
func (r *operationRepository) FindByAdvisor(ctx context.Context, advisorID uuid.UUID) ([]entity.Operation, error) {
	var models []model.OperationModel
	result := r.db.WithContext(ctx).
		Where("advisor_id = ? OR secondary_advisor_id = ?", advisorID, advisorID).
		Order("created_at ASC, id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return toOperations(models), nil
}

func toOperations(models []model.OperationModel) []entity.Operation {
	ops := make([]entity.Operation, len(models))
	for i := range models {
		ops[i] = analytics.WithDerivedFees(models[i].ToEntity())
	}
	return ops
}
