// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"

	"github.com/brokerdash/backend/internal/application/adapter"
	"github.com/brokerdash/backend/internal/domain/analytics"
	"github.com/brokerdash/backend/internal/domain/entity"
)

// GetGroupSummaryInput represents the input for the grouped summary.
type GetGroupSummaryInput struct {
	User *entity.UserContext
	Year *int
}

// GetGroupSummaryOutput is the grouped summary of a reporting year.
type GetGroupSummaryOutput struct {
	Year   int
	Report analytics.GroupReport
}

// GetGroupSummaryUseCase handles the grouped summary.
type GetGroupSummaryUseCase struct {
	loader *Loader
}

// NewGetGroupSummaryUseCase creates a new GetGroupSummaryUseCase instance.
func NewGetGroupSummaryUseCase(loader *Loader) *GetGroupSummaryUseCase {
	return &GetGroupSummaryUseCase{
		loader: loader,
	}
}

// Execute summarizes the year's active operations into the report groups.
func (uc *GetGroupSummaryUseCase) Execute(ctx context.Context, input GetGroupSummaryInput) (*GetGroupSummaryOutput, error) {
	if err := requireUser(input.User); err != nil {
		return nil, err
	}
	year, err := uc.loader.ReportingYear(input.Year)
	if err != nil {
		return nil, err
	}

	key := adapter.ReportKey(input.User.TeamID, input.User.UserID, year, "groups")
	return cached(ctx, uc.loader, key, func() (*GetGroupSummaryOutput, error) {
		ops, err := uc.loader.Operations(ctx, input.User)
		if err != nil {
			return nil, err
		}
		return &GetGroupSummaryOutput{
			Year:   year,
			Report: analytics.SummaryByGroup(analytics.InYear(analytics.Active(ops), year)),
		}, nil
	})
}
