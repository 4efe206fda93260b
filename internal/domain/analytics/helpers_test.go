package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brokerdash/backend/internal/domain/entity"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func pct(v string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(v))
}

func date(year, month, day int) *time.Time {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &d
}

// sale builds a closed single-advisor sale closed on the given date.
func sale(advisor uuid.UUID, value string, closed *time.Time) entity.Operation {
	return entity.Operation{
		ID:          uuid.New(),
		Type:        entity.OperationTypeSale,
		Status:      entity.OperationStatusClosed,
		Value:       dec(value),
		BrokerPct:   pct("6"),
		AdvisorPct:  pct("50"),
		ClosingDate: closed,
		AdvisorID:   advisor,
		BuyerSide:   true,
	}
}

func shared(op entity.Operation, secondary uuid.UUID) entity.Operation {
	op.SecondaryAdvisorID = &secondary
	return op
}

func assertDecimal(t *testing.T, name string, expected string, got decimal.Decimal) {
	t.Helper()
	if !got.Equal(dec(expected)) {
		t.Errorf("%s: expected %s, got %s", name, expected, got.String())
	}
}
