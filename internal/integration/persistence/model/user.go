package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brokerdash/backend/internal/domain/entity"
)

// UserModel represents the users table in the database.
type UserModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TeamID         uuid.UUID       `gorm:"type:uuid;index;not null"`
	Email          string          `gorm:"type:varchar(255);index"`
	Name           string          `gorm:"type:varchar(100);not null"`
	Role           string          `gorm:"type:varchar(20);not null;default:'advisor'"`
	CurrencySymbol string          `gorm:"type:varchar(5);not null;default:'€'"`
	Objective      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to the user context reports are computed for.
func (m *UserModel) ToEntity() *entity.UserContext {
	return &entity.UserContext{
		UserID:         m.ID,
		TeamID:         m.TeamID,
		Name:           m.Name,
		Email:          m.Email,
		Role:           entity.Role(m.Role),
		CurrencySymbol: m.CurrencySymbol,
		Objective:      m.Objective,
	}
}

// UserFromEntity creates a UserModel from a domain UserContext.
func UserFromEntity(user *entity.UserContext) *UserModel {
	return &UserModel{
		ID:             user.UserID,
		TeamID:         user.TeamID,
		Email:          user.Email,
		Name:           user.Name,
		Role:           string(user.Role),
		CurrencySymbol: user.CurrencySymbol,
		Objective:      user.Objective,
	}
}
