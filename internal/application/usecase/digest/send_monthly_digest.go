// Package digest contains the monthly team digest use case.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/brokerdash/backend/internal/application/adapter"
	"github.com/brokerdash/backend/internal/domain/analytics"
	"github.com/brokerdash/backend/internal/domain/entity"
)

const (
	// topAdvisors is the number of ranking rows included in the digest.
	topAdvisors = 3
	// defaultConcurrency bounds the number of leaders processed at once.
	defaultConcurrency = 4
)

// SendMonthlyDigestInput represents the input for sending the monthly digest.
type SendMonthlyDigestInput struct {
	// Now is the time the digest runs at. The digest covers the month before it.
	Now time.Time
}

// SendMonthlyDigestOutput reports what happened to each team leader.
type SendMonthlyDigestOutput struct {
	Period  string
	Sent    int
	Skipped int
	Failed  int
}

// SendMonthlyDigestUseCase e-mails every team leader the year-to-date totals
// of their team and the advisor podium.
type SendMonthlyDigestUseCase struct {
	operationRepo adapter.OperationRepository
	userRepo      adapter.UserRepository
	renderer      adapter.DigestRenderer
	sender        adapter.EmailSender
	concurrency   int
}

// NewSendMonthlyDigestUseCase creates a new SendMonthlyDigestUseCase instance.
func NewSendMonthlyDigestUseCase(
	operationRepo adapter.OperationRepository,
	userRepo adapter.UserRepository,
	renderer adapter.DigestRenderer,
	sender adapter.EmailSender,
) *SendMonthlyDigestUseCase {
	return &SendMonthlyDigestUseCase{
		operationRepo: operationRepo,
		userRepo:      userRepo,
		renderer:      renderer,
		sender:        sender,
		concurrency:   defaultConcurrency,
	}
}

// WithConcurrency sets how many leaders are processed at once. Values below
// one are ignored.
func (uc *SendMonthlyDigestUseCase) WithConcurrency(n int) *SendMonthlyDigestUseCase {
	if n > 0 {
		uc.concurrency = n
	}
	return uc
}

// Execute sends the digest to every team leader. A failure for one leader is
// logged and counted; it never stops the others.
func (uc *SendMonthlyDigestUseCase) Execute(ctx context.Context, input SendMonthlyDigestInput) (*SendMonthlyDigestOutput, error) {
	if input.Now.IsZero() {
		input.Now = time.Now().UTC()
	}
	period := time.Date(input.Now.Year(), input.Now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	periodLabel := period.Format("January 2006")

	leaders, err := uc.userRepo.FindTeamLeaders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load team leaders: %w", err)
	}

	var (
		mu  sync.Mutex
		out = &SendMonthlyDigestOutput{Period: periodLabel}
	)
	record := func(counter *int) {
		mu.Lock()
		*counter++
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)
	for _, leader := range leaders {
		if leader.Email == "" {
			slog.Warn("Skipping digest for team leader without e-mail", "user_id", leader.UserID)
			record(&out.Skipped)
			continue
		}

		g.Go(func() error {
			if err := uc.sendOne(gctx, leader, period, periodLabel); err != nil {
				slog.Error("Failed to send monthly digest",
					"user_id", leader.UserID,
					"team_id", leader.TeamID,
					"error", err,
				)
				record(&out.Failed)
				return nil
			}
			record(&out.Sent)
			return nil
		})
	}
	_ = g.Wait()

	slog.Info("Monthly digest finished",
		"period", periodLabel,
		"sent", out.Sent,
		"skipped", out.Skipped,
		"failed", out.Failed,
	)
	return out, nil
}

func (uc *SendMonthlyDigestUseCase) sendOne(ctx context.Context, leader *entity.UserContext, period time.Time, periodLabel string) error {
	var (
		ops     []entity.Operation
		members []*entity.UserContext
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ops, err = uc.operationRepo.FindByTeam(gctx, leader.TeamID)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = uc.userRepo.FindByTeam(gctx, leader.TeamID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	// Year to date as of the end of the reported month.
	ops = analytics.DatedBefore(ops, period.AddDate(0, 1, 0))
	year := period.Year()
	totals, err := analytics.ComputeTotals(ops, leader, year)
	if err != nil {
		return err
	}

	data := adapter.DigestData{
		Name:              leader.Name,
		Period:            periodLabel,
		CurrencySymbol:    leader.CurrencySymbol,
		GrossClosed:       totals.GrossClosed,
		NetClosed:         totals.NetClosed,
		GrossOpen:         totals.GrossOpen,
		ObjectiveProgress: totals.ObjectiveProgress,
		ClosedCount:       totals.ClosedCount,
		OpenCount:         totals.OpenCount,
		FallenCount:       totals.FallenCount,
		Points:            totals.Points.Total,
		TopAdvisors:       podium(analytics.AdvisorRanking(analytics.InYear(analytics.Active(ops), year)), members),
	}

	html, text, err := uc.renderer.RenderDigest(data)
	if err != nil {
		return fmt.Errorf("failed to render digest: %w", err)
	}

	_, err = uc.sender.Send(ctx, adapter.SendEmailInput{
		To:      leader.Email,
		Name:    leader.Name,
		Subject: fmt.Sprintf("Your team report for %s", periodLabel),
		HTML:    html,
		Text:    text,
	})
	return err
}

func podium(ranks []analytics.AdvisorRank, members []*entity.UserContext) []adapter.DigestAdvisor {
	names := make(map[uuid.UUID]string, len(members))
	for _, m := range members {
		names[m.UserID] = m.Name
	}

	n := min(len(ranks), topAdvisors)
	out := make([]adapter.DigestAdvisor, 0, n)
	for i, r := range ranks[:n] {
		name := names[r.AdvisorID]
		if name == "" {
			name = r.AdvisorID.String()
		}
		out = append(out, adapter.DigestAdvisor{
			Position:  i + 1,
			Name:      name,
			BrokerFee: r.AdjustedBrokerFee,
			Points:    r.Points,
		})
	}
	return out
}
