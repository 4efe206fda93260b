// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/brokerdash/backend/internal/application/adapter"
	"github.com/brokerdash/backend/internal/domain/analytics"
	"github.com/brokerdash/backend/internal/domain/entity"
)

// GetExpenseSummaryInput represents the input for the expense summary.
type GetExpenseSummaryInput struct {
	User *entity.UserContext
	Year *int
}

// GetExpenseSummaryOutput pairs the year's expenses with the closed net
// commission they are paid from.
type GetExpenseSummaryOutput struct {
	Year             int
	Summary          analytics.ExpenseSummary
	NetClosed        decimal.Decimal
	NetAfterExpenses decimal.Decimal
}

// GetExpenseSummaryUseCase handles the expense summary.
type GetExpenseSummaryUseCase struct {
	loader *Loader
}

// NewGetExpenseSummaryUseCase creates a new GetExpenseSummaryUseCase instance.
func NewGetExpenseSummaryUseCase(loader *Loader) *GetExpenseSummaryUseCase {
	return &GetExpenseSummaryUseCase{
		loader: loader,
	}
}

// Execute summarizes the year's expenses and nets them against closed commission.
func (uc *GetExpenseSummaryUseCase) Execute(ctx context.Context, input GetExpenseSummaryInput) (*GetExpenseSummaryOutput, error) {
	if err := requireUser(input.User); err != nil {
		return nil, err
	}
	year, err := uc.loader.ReportingYear(input.Year)
	if err != nil {
		return nil, err
	}

	now := uc.loader.Now()
	// The monthly average moves with the calendar month.
	key := adapter.ReportKey(input.User.TeamID, input.User.UserID, year, "expenses", now.Format("2006-01"))
	return cached(ctx, uc.loader, key, func() (*GetExpenseSummaryOutput, error) {
		var (
			ops      []entity.Operation
			expenses []entity.Expense
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			ops, err = uc.loader.Operations(gctx, input.User)
			return err
		})
		g.Go(func() error {
			var err error
			expenses, err = uc.loader.Expenses(gctx, input.User, year)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		totals, err := analytics.ComputeTotals(ops, input.User, year)
		if err != nil {
			return nil, err
		}
		summary := analytics.SummarizeExpenses(expenses, year, now)

		return &GetExpenseSummaryOutput{
			Year:             year,
			Summary:          summary,
			NetClosed:        totals.NetClosed,
			NetAfterExpenses: totals.NetClosed.Sub(summary.Total),
		}, nil
	})
}
