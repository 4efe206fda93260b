// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"

	"github.com/brokerdash/backend/internal/application/adapter"
	"github.com/brokerdash/backend/internal/domain/analytics"
	"github.com/brokerdash/backend/internal/domain/entity"
)

// GetTotalsInput represents the input for getting the dashboard totals.
type GetTotalsInput struct {
	User *entity.UserContext
	// Year defaults to the current year when nil.
	Year *int
}

// GetTotalsUseCase handles computing the consolidated dashboard totals.
type GetTotalsUseCase struct {
	loader *Loader
}

// NewGetTotalsUseCase creates a new GetTotalsUseCase instance.
func NewGetTotalsUseCase(loader *Loader) *GetTotalsUseCase {
	return &GetTotalsUseCase{
		loader: loader,
	}
}

// Execute loads the operations visible to the user and computes their totals.
func (uc *GetTotalsUseCase) Execute(ctx context.Context, input GetTotalsInput) (*analytics.Totals, error) {
	if err := requireUser(input.User); err != nil {
		return nil, err
	}
	year, err := uc.loader.ReportingYear(input.Year)
	if err != nil {
		return nil, err
	}

	key := adapter.ReportKey(input.User.TeamID, input.User.UserID, year, "totals")
	return cached(ctx, uc.loader, key, func() (*analytics.Totals, error) {
		ops, err := uc.loader.Operations(ctx, input.User)
		if err != nil {
			return nil, err
		}
		return analytics.ComputeTotals(ops, input.User, year)
	})
}
