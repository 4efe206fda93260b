// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies an expense. ExpenseCategoryOther is extended by free text.
type ExpenseCategory string

const (
	ExpenseCategoryMarketing ExpenseCategory = "marketing"
	ExpenseCategoryPortals   ExpenseCategory = "portals"
	ExpenseCategoryOffice    ExpenseCategory = "office"
	ExpenseCategoryTraining  ExpenseCategory = "training"
	ExpenseCategoryTransport ExpenseCategory = "transport"
	ExpenseCategoryFees      ExpenseCategory = "fees"
	ExpenseCategoryOther     ExpenseCategory = "other"
)

// ExpenseAssociation tells personal expenses apart from team/broker expenses.
type ExpenseAssociation string

const (
	ExpenseAssociationPersonal ExpenseAssociation = "personal"
	ExpenseAssociationTeam     ExpenseAssociation = "team"
)

// Expense represents a cost recorded by an advisor or a team leader.
type Expense struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	TeamID          uuid.UUID
	Date            time.Time
	Amount          decimal.Decimal // Local currency
	AmountReference decimal.Decimal // Reference currency
	Category        ExpenseCategory
	OtherCategory   string
	Description     string
	Association     ExpenseAssociation
	CreatedAt       time.Time
}

// CategoryLabel returns the free-text category for "other" expenses and the category otherwise.
func (e Expense) CategoryLabel() string {
	if e.Category == ExpenseCategoryOther && e.OtherCategory != "" {
		return e.OtherCategory
	}
	return string(e.Category)
}
