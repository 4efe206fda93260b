// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/brokerdash/backend/internal/application/adapter"
	"github.com/brokerdash/backend/internal/domain/analytics"
	"github.com/brokerdash/backend/internal/domain/entity"
)

// GetKPIsInput represents the input for the listing KPIs.
type GetKPIsInput struct {
	User *entity.UserContext
	Year *int
}

// GetKPIsOutput holds the listing-quality indicators of a reporting year.
type GetKPIsOutput struct {
	Year              int
	Exclusivity       analytics.Exclusivity
	AverageDaysToSell decimal.Decimal
	DaysToSellSamples int
	SidePercentages   analytics.SidePercentages
}

// GetKPIsUseCase handles the exclusivity, days-to-sell and side percentage indicators.
type GetKPIsUseCase struct {
	loader *Loader
}

// NewGetKPIsUseCase creates a new GetKPIsUseCase instance.
func NewGetKPIsUseCase(loader *Loader) *GetKPIsUseCase {
	return &GetKPIsUseCase{
		loader: loader,
	}
}

// Execute computes the indicators over the year's active operations.
func (uc *GetKPIsUseCase) Execute(ctx context.Context, input GetKPIsInput) (*GetKPIsOutput, error) {
	if err := requireUser(input.User); err != nil {
		return nil, err
	}
	year, err := uc.loader.ReportingYear(input.Year)
	if err != nil {
		return nil, err
	}

	key := adapter.ReportKey(input.User.TeamID, input.User.UserID, year, "kpis")
	return cached(ctx, uc.loader, key, func() (*GetKPIsOutput, error) {
		ops, err := uc.loader.Operations(ctx, input.User)
		if err != nil {
			return nil, err
		}
		yearOps := analytics.InYear(analytics.Active(ops), year)

		days, samples := analytics.AverageDaysToSell(yearOps)
		return &GetKPIsOutput{
			Year:              year,
			Exclusivity:       analytics.ExclusivityRatio(yearOps),
			AverageDaysToSell: days,
			DaysToSellSamples: samples,
			SidePercentages:   analytics.AverageSidePercentages(yearOps),
		}, nil
	})
}
