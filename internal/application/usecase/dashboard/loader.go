// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brokerdash/backend/internal/application/adapter"
	"github.com/brokerdash/backend/internal/domain/entity"
	domainerror "github.com/brokerdash/backend/internal/domain/error"
)

const (
	minReportingYear = 1000
	maxReportingYear = 9999
)

// Loader fetches the inputs every dashboard report is computed from and
// resolves the reporting year. The report cache is optional.
type Loader struct {
	operationRepo adapter.OperationRepository
	expenseRepo   adapter.ExpenseRepository
	userRepo      adapter.UserRepository
	cache         adapter.ReportCache
	clock         adapter.Clock
}

// NewLoader creates a new Loader instance. cache may be nil.
func NewLoader(
	operationRepo adapter.OperationRepository,
	expenseRepo adapter.ExpenseRepository,
	userRepo adapter.UserRepository,
	cache adapter.ReportCache,
	clock adapter.Clock,
) *Loader {
	if clock == nil {
		clock = adapter.SystemClock{}
	}
	return &Loader{
		operationRepo: operationRepo,
		expenseRepo:   expenseRepo,
		userRepo:      userRepo,
		cache:         cache,
		clock:         clock,
	}
}

// Operations loads the operations visible to the user: the whole team for a
// team leader, the advisor's own operations otherwise.
func (l *Loader) Operations(ctx context.Context, user *entity.UserContext) ([]entity.Operation, error) {
	if user.IsTeamLeader() {
		ops, err := l.operationRepo.FindByTeam(ctx, user.TeamID)
		if err != nil {
			return nil, fmt.Errorf("failed to load team operations: %w", err)
		}
		return ops, nil
	}

	ops, err := l.operationRepo.FindByAdvisor(ctx, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load advisor operations: %w", err)
	}
	return ops, nil
}

// Expenses loads the expenses visible to the user for a year.
func (l *Loader) Expenses(ctx context.Context, user *entity.UserContext, year int) ([]entity.Expense, error) {
	var (
		expenses []entity.Expense
		err      error
	)
	if user.IsTeamLeader() {
		expenses, err = l.expenseRepo.FindByTeam(ctx, user.TeamID, year)
	} else {
		expenses, err = l.expenseRepo.FindByUser(ctx, user.UserID, year)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	return expenses, nil
}

// TeamMembers loads every member of the user's team.
func (l *Loader) TeamMembers(ctx context.Context, user *entity.UserContext) ([]*entity.UserContext, error) {
	members, err := l.userRepo.FindByTeam(ctx, user.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load team members: %w", err)
	}
	return members, nil
}

// ReportingYear returns year, or the current year when year is nil. Only live
// dashboard callers omit the year; historical reports always pass it.
func (l *Loader) ReportingYear(year *int) (int, error) {
	if year == nil {
		return l.clock.Now().Year(), nil
	}
	if *year < minReportingYear || *year > maxReportingYear {
		return 0, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidYear,
			"year must be a four-digit year",
			domainerror.ErrInvalidYear,
		)
	}
	return *year, nil
}

// Now returns the loader clock's current time.
func (l *Loader) Now() time.Time {
	return l.clock.Now()
}

func requireUser(user *entity.UserContext) error {
	if user == nil {
		return domainerror.NewAnalyticsError(
			domainerror.ErrCodeMissingUserContext,
			"a user context is required",
			domainerror.ErrMissingUserContext,
		)
	}
	return nil
}

// cached returns the report stored under key, computing and storing it on a
// miss. Cache failures are logged and never fail the request.
func cached[T any](ctx context.Context, l *Loader, key string, compute func() (*T, error)) (*T, error) {
	if l.cache != nil {
		var out T
		hit, err := l.cache.Get(ctx, key, &out)
		if err != nil {
			slog.Warn("Failed to read cached report", "key", key, "error", err)
		} else if hit {
			return &out, nil
		}
	}

	out, err := compute()
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, key, out); err != nil {
			slog.Warn("Failed to cache report", "key", key, "error", err)
		}
	}
	return out, nil
}
