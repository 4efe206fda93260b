package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brokerdash/backend/internal/application/adapter"
	"github.com/brokerdash/backend/internal/domain/entity"
	"github.com/brokerdash/backend/internal/integration/persistence/model"
)

// expenseRepository implements the adapter.ExpenseRepository interface.
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository instance.
func NewExpenseRepository(db *gorm.DB) adapter.ExpenseRepository {
	return &expenseRepository{
		db: db,
	}
}

// FindByUser retrieves the expenses a user recorded in a year.
func (r *expenseRepository) FindByUser(ctx context.Context, userID uuid.UUID, year int) ([]entity.Expense, error) {
	return r.find(ctx, "user_id = ?", userID, year)
}

// FindByTeam retrieves the expenses every member of a team recorded in a year.
func (r *expenseRepository) FindByTeam(ctx context.Context, teamID uuid.UUID, year int) ([]entity.Expense, error) {
	return r.find(ctx, "team_id = ?", teamID, year)
}

func (r *expenseRepository) find(ctx context.Context, owner string, ownerID uuid.UUID, year int) ([]entity.Expense, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var models []model.ExpenseModel
	result := r.db.WithContext(ctx).
		Where(owner, ownerID).
		Where("date >= ? AND date < ?", start, end).
		Order("date ASC, id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	expenses := make([]entity.Expense, len(models))
	for i := range models {
		expenses[i] = models[i].ToEntity()
	}
	return expenses, nil
}
