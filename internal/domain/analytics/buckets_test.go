package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brokerdash/backend/internal/domain/entity"
)

func TestBucketByMonth_CumulativeRunsUpToYearTotal(t *testing.T) {
	advisor := uuid.New()
	var ops []entity.Operation
	for m := 1; m <= 12; m++ {
		op := sale(advisor, "10000", date(2024, m, 5))
		op.BrokerPct = pct("1")
		ops = append(ops, op)
	}

	got := Cumulative(BucketByMonth(ops, 2024, FieldBrokerFee))

	for i, v := range got {
		expected := decimal.NewFromInt(int64(100 * (i + 1)))
		if !v.Equal(expected) {
			t.Errorf("month %d: expected %s, got %s", i+1, expected, v)
		}
	}
}

func TestBucketByMonth_SkipsOtherYearsAndUndated(t *testing.T) {
	advisor := uuid.New()
	ops := []entity.Operation{
		sale(advisor, "100000", date(2024, 2, 1)),
		sale(advisor, "100000", date(2023, 2, 1)),
		sale(advisor, "100000", nil),
	}

	got := BucketByMonth(ops, 2024, FieldCount)

	assertDecimal(t, "february", "1", got[1])
	assertDecimal(t, "total", "1", got.Total())
}

func TestCumulative_RoundsEachStep(t *testing.T) {
	s := NewMonthlySeries()
	s[0], s[1], s[2] = dec("0.333"), dec("0.333"), dec("0.333")

	got := Cumulative(s)

	assertDecimal(t, "january", "0.33", got[0])
	assertDecimal(t, "february", "0.66", got[1])
	assertDecimal(t, "march", "0.99", got[2])
	assertDecimal(t, "december", "0.99", got[11])
}

func TestCompareYears(t *testing.T) {
	advisor := uuid.New()

	t.Run("always twelve months", func(t *testing.T) {
		got := CompareYears(nil, 2024, 2023, FieldBrokerFee)
		if len(got) != Months {
			t.Fatalf("expected %d months, got %d", Months, len(got))
		}
		for i, m := range got {
			if m.Month != i+1 {
				t.Errorf("position %d: expected month %d, got %d", i, i+1, m.Month)
			}
			assertDecimal(t, "current", "0", m.Current)
			assertDecimal(t, "previous", "0", m.Previous)
		}
	})

	t.Run("pairs the same month of both years", func(t *testing.T) {
		ops := []entity.Operation{
			sale(advisor, "100000", date(2024, 5, 1)),
			sale(advisor, "200000", date(2023, 5, 20)),
		}
		got := CompareYears(ops, 2024, 2023, FieldValue)
		assertDecimal(t, "current may", "100000", got[4].Current)
		assertDecimal(t, "previous may", "200000", got[4].Previous)
	})
}

func TestLookupField(t *testing.T) {
	for _, name := range []FieldName{FieldNameBrokerFee, FieldNameAdvisorFee, FieldNameValue, FieldNameCount, FieldNamePoints} {
		if _, ok := LookupField(name); !ok {
			t.Errorf("expected field %s to exist", name)
		}
	}
	if _, ok := LookupField("margin"); ok {
		t.Error("expected unknown field to be rejected")
	}
}

func TestProjection(t *testing.T) {
	advisor := uuid.New()

	open := func(op entity.Operation) entity.Operation {
		op.Status = entity.OperationStatusOpen
		return op
	}

	ops := []entity.Operation{
		sale(advisor, "100000", date(2024, 1, 10)),
		sale(advisor, "100000", date(2024, 2, 10)),
		sale(advisor, "100000", date(2024, 3, 10)),
		open(sale(advisor, "100000", nil)),
		open(sale(advisor, "100000", date(2023, 6, 1))),
	}
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	got := Projection(ops, 2024, now, FieldBrokerFee)

	if len(got) != Months {
		t.Fatalf("expected %d points, got %d", Months, len(got))
	}
	for i, p := range got[:2] {
		if p.Actual == nil || p.Projected != nil {
			t.Fatalf("month %d: expected an actual value only", i+1)
		}
	}
	assertDecimal(t, "january actual", "6000", *got[0].Actual)
	assertDecimal(t, "february actual", "12000", *got[1].Actual)

	for _, p := range got[2:] {
		if p.Actual != nil || p.Projected == nil {
			t.Fatalf("month %d: expected a projected value only", p.Month)
		}
		assertDecimal(t, "projected", "18000", *p.Projected)
	}
}

func TestProjection_PastYearIsAllActual(t *testing.T) {
	ops := []entity.Operation{sale(uuid.New(), "100000", date(2023, 12, 1))}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	got := Projection(ops, 2023, now, FieldBrokerFee)

	for _, p := range got {
		if p.Actual == nil || p.Projected != nil {
			t.Fatalf("month %d: expected an actual value only", p.Month)
		}
	}
	assertDecimal(t, "december", "6000", *got[11].Actual)
}

func TestMonthlyShare(t *testing.T) {
	advisor := uuid.New()

	t.Run("share of the year's gross", func(t *testing.T) {
		ops := []entity.Operation{
			sale(advisor, "100000", date(2024, 1, 1)),
			sale(advisor, "300000", date(2024, 2, 1)),
		}
		got := MonthlyShare(ops, 2024)
		assertDecimal(t, "january", "25", got[0])
		assertDecimal(t, "february", "75", got[1])
		assertDecimal(t, "march", "0", got[2])
	})

	t.Run("empty year is all zero", func(t *testing.T) {
		for i, v := range MonthlyShare(nil, 2024) {
			if !v.IsZero() {
				t.Errorf("month %d: expected 0, got %s", i+1, v)
			}
		}
	})
}

func TestLookupFieldFor(t *testing.T) {
	primary, secondary := uuid.New(), uuid.New()
	op := shared(sale(primary, "200000", date(2024, 1, 1)), secondary)
	op.SecondaryAdvisorPct = pct("25")
	op.SellerSide = true

	fee, ok := LookupFieldFor(FieldNameAdvisorFee, secondary)
	if !ok {
		t.Fatal("expected advisor fee field")
	}
	assertDecimal(t, "secondary share", "3000", fee(op))

	points, _ := LookupFieldFor(FieldNamePoints, primary)
	assertDecimal(t, "shared points", "1", points(op))

	value, _ := LookupFieldFor(FieldNameValue, primary)
	assertDecimal(t, "value", "200000", value(op))
}
