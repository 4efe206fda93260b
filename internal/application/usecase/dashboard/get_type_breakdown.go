// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/brokerdash/backend/internal/application/adapter"
	"github.com/brokerdash/backend/internal/domain/analytics"
	"github.com/brokerdash/backend/internal/domain/entity"
)

// GetTypeBreakdownInput represents the input for the by-type breakdown.
type GetTypeBreakdownInput struct {
	User *entity.UserContext
	Year *int
}

// TypeBreakdownItem is the summary of one operation type.
type TypeBreakdownItem struct {
	Type         entity.OperationType
	Count        int
	TotalFee     decimal.Decimal
	TotalValue   decimal.Decimal
	AverageValue decimal.Decimal
}

// GetTypeBreakdownOutput lists every operation type, in declaration order,
// plus the average value across the types that count toward it.
type GetTypeBreakdownOutput struct {
	Year              int
	Types             []TypeBreakdownItem
	GroupAverageValue decimal.Decimal
}

// GetTypeBreakdownUseCase handles the by-type breakdown of a reporting year.
type GetTypeBreakdownUseCase struct {
	loader *Loader
}

// NewGetTypeBreakdownUseCase creates a new GetTypeBreakdownUseCase instance.
func NewGetTypeBreakdownUseCase(loader *Loader) *GetTypeBreakdownUseCase {
	return &GetTypeBreakdownUseCase{
		loader: loader,
	}
}

// Execute groups the year's active operations by type.
func (uc *GetTypeBreakdownUseCase) Execute(ctx context.Context, input GetTypeBreakdownInput) (*GetTypeBreakdownOutput, error) {
	if err := requireUser(input.User); err != nil {
		return nil, err
	}
	year, err := uc.loader.ReportingYear(input.Year)
	if err != nil {
		return nil, err
	}

	key := adapter.ReportKey(input.User.TeamID, input.User.UserID, year, "types")
	return cached(ctx, uc.loader, key, func() (*GetTypeBreakdownOutput, error) {
		ops, err := uc.loader.Operations(ctx, input.User)
		if err != nil {
			return nil, err
		}

		byType := analytics.ByType(analytics.Active(ops), year)
		items := make([]TypeBreakdownItem, 0, len(entity.OperationTypes))
		for _, t := range entity.OperationTypes {
			s := byType[t]
			items = append(items, TypeBreakdownItem{
				Type:         t,
				Count:        s.Count,
				TotalFee:     s.TotalFee,
				TotalValue:   s.TotalValue,
				AverageValue: s.Average(),
			})
		}

		return &GetTypeBreakdownOutput{
			Year:              year,
			Types:             items,
			GroupAverageValue: analytics.GroupAverageValue(byType, entity.AverageExclusions()),
		}, nil
	})
}
