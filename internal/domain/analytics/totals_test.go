package analytics

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/brokerdash/backend/internal/domain/entity"
	domainerror "github.com/brokerdash/backend/internal/domain/error"
)

type totalsFixture struct {
	advisorA, advisorB uuid.UUID
	ops                []entity.Operation
}

func newTotalsFixture() totalsFixture {
	a, b := uuid.New(), uuid.New()

	sharedSale := shared(sale(a, "200000", date(2024, 2, 1)), b)
	sharedSale.SecondaryAdvisorPct = pct("25")

	openSale := sale(b, "100000", date(2024, 3, 1))
	openSale.Status = entity.OperationStatusOpen

	fallen := sale(a, "50000", date(2024, 4, 1))
	fallen.Status = entity.OperationStatusFallen

	return totalsFixture{
		advisorA: a,
		advisorB: b,
		ops: []entity.Operation{
			sale(a, "100000", date(2024, 1, 1)),
			sharedSale,
			openSale,
			fallen,
			sale(a, "100000", date(2023, 12, 1)),
		},
	}
}

func TestComputeTotals_TeamLeader(t *testing.T) {
	f := newTotalsFixture()
	user := &entity.UserContext{UserID: uuid.New(), Role: entity.RoleTeamLeader, Objective: dec("36000")}

	got, err := ComputeTotals(f.ops, user, 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertDecimal(t, "gross closed", "18000", got.GrossClosed)
	assertDecimal(t, "gross open", "6000", got.GrossOpen)
	assertDecimal(t, "gross total", "24000", got.GrossTotal)
	assertDecimal(t, "net closed", "12000", got.NetClosed)
	assertDecimal(t, "net open", "3000", got.NetOpen)
	assertDecimal(t, "net total", "15000", got.NetTotal)
	assertDecimal(t, "closed value", "300000", got.ClosedValue)
	assertDecimal(t, "average deal value", "150000", got.AverageDealValue)
	assertDecimal(t, "fallen value", "50000", got.FallenValue)
	assertDecimal(t, "objective progress", "50", got.ObjectiveProgress)

	if got.ClosedCount != 2 || got.OpenCount != 1 || got.FallenCount != 1 {
		t.Errorf("unexpected counts closed=%d open=%d fallen=%d", got.ClosedCount, got.OpenCount, got.FallenCount)
	}
	if got.Points.Total != 3 {
		t.Errorf("expected 3 points, got %d", got.Points.Total)
	}

	current := got.MonthlyShare[2024]
	assertDecimal(t, "january share", "25", current[0])
	assertDecimal(t, "february share", "50", current[1])
	assertDecimal(t, "march share", "25", current[2])
	assertDecimal(t, "april share", "0", current[3])

	previous := got.MonthlyShare[2023]
	assertDecimal(t, "previous december share", "100", previous[11])
}

func TestComputeTotals_Advisor(t *testing.T) {
	f := newTotalsFixture()
	user := &entity.UserContext{UserID: f.advisorA, Role: entity.RoleAdvisor}

	got, err := ComputeTotals(f.ops, user, 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertDecimal(t, "gross closed", "18000", got.GrossClosed)
	assertDecimal(t, "gross open", "0", got.GrossOpen)
	assertDecimal(t, "net closed", "9000", got.NetClosed)
	assertDecimal(t, "objective progress without objective", "0", got.ObjectiveProgress)

	if got.OpenCount != 0 || got.FallenCount != 1 {
		t.Errorf("unexpected counts open=%d fallen=%d", got.OpenCount, got.FallenCount)
	}
	if got.Points.Total != 2 {
		t.Errorf("expected 2 points, got %d", got.Points.Total)
	}
}

func TestComputeTotals_SecondaryAdvisorEarnsSecondaryShare(t *testing.T) {
	f := newTotalsFixture()
	user := &entity.UserContext{UserID: f.advisorB, Role: entity.RoleAdvisor}

	got, err := ComputeTotals(f.ops, user, 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertDecimal(t, "net closed", "3000", got.NetClosed)
	assertDecimal(t, "net open", "3000", got.NetOpen)
}

func TestComputeTotals_EmptyInput(t *testing.T) {
	user := &entity.UserContext{UserID: uuid.New(), Role: entity.RoleTeamLeader}

	got, err := ComputeTotals(nil, user, 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertDecimal(t, "gross total", "0", got.GrossTotal)
	assertDecimal(t, "average deal value", "0", got.AverageDealValue)
	if got.ClosedCount != 0 || got.Points.Total != 0 {
		t.Errorf("expected empty totals, got %+v", got)
	}
}

func TestComputeTotals_ContractViolations(t *testing.T) {
	t.Run("nil user", func(t *testing.T) {
		_, err := ComputeTotals(nil, nil, 2024)
		var analyticsErr *domainerror.AnalyticsError
		if !errors.As(err, &analyticsErr) {
			t.Fatalf("expected AnalyticsError, got %v", err)
		}
		if analyticsErr.Code != domainerror.ErrCodeMissingUserContext {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeMissingUserContext, analyticsErr.Code)
		}
		if !errors.Is(err, domainerror.ErrMissingUserContext) {
			t.Error("expected error to wrap ErrMissingUserContext")
		}
	})

	t.Run("missing year", func(t *testing.T) {
		_, err := ComputeTotals(nil, &entity.UserContext{}, 0)
		if !errors.Is(err, domainerror.ErrInvalidReportingYear) {
			t.Errorf("expected ErrInvalidReportingYear, got %v", err)
		}
	})
}

func TestComputeTotals_AddingClosedOperationNeverLowersGross(t *testing.T) {
	f := newTotalsFixture()
	user := &entity.UserContext{UserID: uuid.New(), Role: entity.RoleTeamLeader}

	before, err := ComputeTotals(f.ops, user, 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, value := range []string{"0", "1", "250000"} {
		ops := append(append([]entity.Operation{}, f.ops...), sale(f.advisorA, value, date(2024, 7, 1)))
		after, err := ComputeTotals(ops, user, 2024)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if after.GrossClosed.LessThan(before.GrossClosed) {
			t.Errorf("value %s: gross closed went from %s to %s", value, before.GrossClosed, after.GrossClosed)
		}
	}
}
