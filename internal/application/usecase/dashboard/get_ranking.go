// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/brokerdash/backend/internal/application/adapter"
	"github.com/brokerdash/backend/internal/domain/analytics"
	"github.com/brokerdash/backend/internal/domain/entity"
	domainerror "github.com/brokerdash/backend/internal/domain/error"
)

// GetRankingInput represents the input for the advisor ranking.
type GetRankingInput struct {
	User *entity.UserContext
	Year *int
}

// RankingItem is one advisor of the ranking.
type RankingItem struct {
	Position          int
	AdvisorID         uuid.UUID
	Name              string
	AdjustedBrokerFee decimal.Decimal
	Points            int
	Operations        int
}

// GetRankingOutput is the advisor ranking of a reporting year.
type GetRankingOutput struct {
	Year     int
	Advisors []RankingItem
}

// GetRankingUseCase handles the team's advisor ranking. Only team leaders may see it.
type GetRankingUseCase struct {
	loader *Loader
}

// NewGetRankingUseCase creates a new GetRankingUseCase instance.
func NewGetRankingUseCase(loader *Loader) *GetRankingUseCase {
	return &GetRankingUseCase{
		loader: loader,
	}
}

// Execute ranks the team's advisors over the year's active operations.
func (uc *GetRankingUseCase) Execute(ctx context.Context, input GetRankingInput) (*GetRankingOutput, error) {
	if err := requireUser(input.User); err != nil {
		return nil, err
	}
	if !input.User.IsTeamLeader() {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeDashboardForbidden,
			"only team leaders can see the advisor ranking",
			domainerror.ErrForbidden,
		)
	}
	year, err := uc.loader.ReportingYear(input.Year)
	if err != nil {
		return nil, err
	}

	key := adapter.ReportKey(input.User.TeamID, input.User.UserID, year, "ranking")
	return cached(ctx, uc.loader, key, func() (*GetRankingOutput, error) {
		var (
			ops     []entity.Operation
			members []*entity.UserContext
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			ops, err = uc.loader.Operations(gctx, input.User)
			return err
		})
		g.Go(func() error {
			var err error
			members, err = uc.loader.TeamMembers(gctx, input.User)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		return &GetRankingOutput{
			Year:     year,
			Advisors: rankingItems(analytics.AdvisorRanking(analytics.InYear(analytics.Active(ops), year)), members),
		}, nil
	})
}

func rankingItems(ranks []analytics.AdvisorRank, members []*entity.UserContext) []RankingItem {
	names := make(map[uuid.UUID]string, len(members))
	for _, m := range members {
		names[m.UserID] = m.Name
	}

	items := make([]RankingItem, 0, len(ranks))
	for i, r := range ranks {
		items = append(items, RankingItem{
			Position:          i + 1,
			AdvisorID:         r.AdvisorID,
			Name:              names[r.AdvisorID],
			AdjustedBrokerFee: r.AdjustedBrokerFee,
			Points:            r.Points,
			Operations:        r.Operations,
		})
	}
	return items
}
