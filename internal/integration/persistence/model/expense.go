package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brokerdash/backend/internal/domain/entity"
)

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"type:uuid;index;not null"`
	TeamID          uuid.UUID       `gorm:"type:uuid;index;not null"`
	Date            time.Time       `gorm:"type:date;not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	AmountReference decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Category        string          `gorm:"type:varchar(50);not null"`
	OtherCategory   string          `gorm:"type:varchar(100)"`
	Description     string          `gorm:"type:varchar(500)"`
	Association     string          `gorm:"type:varchar(20);not null;default:'personal'"`
	CreatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() entity.Expense {
	return entity.Expense{
		ID:              m.ID,
		UserID:          m.UserID,
		TeamID:          m.TeamID,
		Date:            m.Date,
		Amount:          m.Amount,
		AmountReference: m.AmountReference,
		Category:        entity.ExpenseCategory(m.Category),
		OtherCategory:   m.OtherCategory,
		Description:     m.Description,
		Association:     entity.ExpenseAssociation(m.Association),
		CreatedAt:       m.CreatedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(e entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:              e.ID,
		UserID:          e.UserID,
		TeamID:          e.TeamID,
		Date:            e.Date,
		Amount:          e.Amount,
		AmountReference: e.AmountReference,
		Category:        string(e.Category),
		OtherCategory:   e.OtherCategory,
		Description:     e.Description,
		Association:     string(e.Association),
		CreatedAt:       e.CreatedAt,
	}
}
