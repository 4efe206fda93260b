package analytics

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brokerdash/backend/internal/domain/entity"
)

func typed(op entity.Operation, t entity.OperationType) entity.Operation {
	op.Type = t
	return op
}

func TestByType(t *testing.T) {
	advisor := uuid.New()
	ops := []entity.Operation{
		sale(advisor, "100000", date(2024, 1, 10)),
		sale(advisor, "300000", date(2024, 6, 10)),
		typed(sale(advisor, "1000", date(2024, 2, 1)), entity.OperationTypeParking),
		sale(advisor, "999999", date(2023, 12, 31)),
		sale(advisor, "5000", nil),
	}

	got := ByType(ops, 2024)

	sales := got[entity.OperationTypeSale]
	if sales.Count != 2 {
		t.Errorf("expected 2 sales, got %d", sales.Count)
	}
	assertDecimal(t, "sale fee", "24000", sales.TotalFee)
	assertDecimal(t, "sale value", "400000", sales.TotalValue)
	assertDecimal(t, "sale average", "200000", sales.Average())

	if got[entity.OperationTypeParking].Count != 1 {
		t.Errorf("expected 1 parking, got %d", got[entity.OperationTypeParking].Count)
	}
}

func TestByType_CountsMatchYearFilter(t *testing.T) {
	advisor := uuid.New()
	var ops []entity.Operation
	for i, opType := range entity.OperationTypes {
		ops = append(ops, typed(sale(advisor, "1000", date(2024, i%12+1, 1)), opType))
		ops = append(ops, typed(sale(advisor, "1000", date(2023, i%12+1, 1)), opType))
	}
	ops = append(ops, sale(advisor, "1000", nil))

	total := 0
	for _, s := range ByType(ops, 2024) {
		total += s.Count
	}

	if expected := len(InYear(ops, 2024)); total != expected {
		t.Errorf("expected %d operations across types, got %d", expected, total)
	}
}

func TestByType_IsIdempotent(t *testing.T) {
	advisor := uuid.New()
	ops := []entity.Operation{
		sale(advisor, "123456.78", date(2024, 1, 10)),
		typed(sale(advisor, "98765.43", date(2024, 2, 10)), entity.OperationTypeDevelopment),
	}

	first := ByType(ops, 2024)
	second := ByType(ops, 2024)

	for k, v := range first {
		w := second[k]
		if v.Count != w.Count || !v.TotalFee.Equal(w.TotalFee) || !v.TotalValue.Equal(w.TotalValue) {
			t.Errorf("type %s differs between calls: %+v vs %+v", k, v, w)
		}
	}
}

func TestGroupAverageValue(t *testing.T) {
	byType := map[entity.OperationType]TypeSummary{
		entity.OperationTypeSale:              {Count: 4, TotalValue: dec("400000")},
		entity.OperationTypeDevelopment:       {Count: 1, TotalValue: dec("1000000")},
		entity.OperationTypeTraditionalRental: {Count: 50, TotalValue: dec("50000")},
		entity.OperationTypeParking:           {Count: 3, TotalValue: dec("30000")},
	}

	t.Run("average of per-type averages, skipping exclusions", func(t *testing.T) {
		assertDecimal(t, "average", "550000", GroupAverageValue(byType, entity.AverageExclusions()))
	})

	t.Run("no exclusions", func(t *testing.T) {
		// (100000 + 1000000 + 1000 + 10000) / 4
		assertDecimal(t, "average", "277750", GroupAverageValue(byType, nil))
	})

	t.Run("empty input", func(t *testing.T) {
		assertDecimal(t, "average", "0", GroupAverageValue(nil, nil))
	})
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		part, total, expected string
	}{
		{"0", "0", "0"},
		{"5", "0", "0"},
		{"1", "3", "33.33"},
		{"2", "3", "66.67"},
		{"50", "50", "100"},
	}
	for _, tt := range tests {
		assertDecimal(t, tt.part+"/"+tt.total, tt.expected, Percentage(dec(tt.part), dec(tt.total)))
	}
}

func TestSummaryByGroup(t *testing.T) {
	advisor := uuid.New()
	ops := []entity.Operation{
		sale(advisor, "100000", date(2024, 1, 1)),
		typed(sale(advisor, "100000", date(2024, 1, 1)), entity.OperationTypeParking),
		typed(sale(advisor, "100000", date(2024, 1, 1)), entity.OperationTypeTemporaryRental),
		typed(sale(advisor, "100000", date(2024, 1, 1)), entity.OperationTypeSubdivision),
	}

	report := SummaryByGroup(ops)

	if len(report.Groups) != len(entity.ReportGroups) {
		t.Fatalf("expected %d groups, got %d", len(entity.ReportGroups), len(report.Groups))
	}
	for i, g := range report.Groups {
		if g.Group != entity.ReportGroups[i] {
			t.Errorf("position %d: expected %s, got %s", i, entity.ReportGroups[i], g.Group)
		}
	}

	assertDecimal(t, "total includes ungrouped types", "24000", report.TotalBrokerFee)

	first := report.Groups[0]
	if first.Count != 2 {
		t.Errorf("expected sale and parking in the first group, got %d", first.Count)
	}
	assertDecimal(t, "first group fee", "12000", first.BrokerFee)
	assertDecimal(t, "first group share", "50", first.Percentage)

	grouped := 0
	for _, g := range report.Groups {
		grouped += g.Count
	}
	if grouped != 3 {
		t.Errorf("expected subdivision to be left out of the groups, got %d grouped", grouped)
	}
}

func TestExclusivityRatio(t *testing.T) {
	advisor := uuid.New()
	dated := func(op entity.Operation, exclusive bool) entity.Operation {
		op.CaptureDate = date(2024, 1, 1)
		op.ReservationDate = date(2024, 2, 1)
		op.Exclusive = exclusive
		return op
	}

	ops := []entity.Operation{
		dated(sale(advisor, "1", nil), true),
		dated(sale(advisor, "1", nil), true),
		dated(sale(advisor, "1", nil), true),
		dated(sale(advisor, "1", nil), false),
		dated(typed(sale(advisor, "1", nil), entity.OperationTypeCommercialRental), true),
		sale(advisor, "1", date(2024, 1, 1)),
	}

	e := ExclusivityRatio(ops)

	if e.Exclusive != 3 || e.NonExclusive != 1 {
		t.Errorf("unexpected counts %+v", e)
	}
	assertDecimal(t, "exclusive", "75", e.ExclusivePct)
	assertDecimal(t, "non-exclusive", "25", e.NonExclusivePct)

	empty := ExclusivityRatio(nil)
	assertDecimal(t, "empty exclusive", "0", empty.ExclusivePct)
}

func TestAverageDaysToSell(t *testing.T) {
	advisor := uuid.New()
	listed := func(capture, reservation int, opType entity.OperationType) entity.Operation {
		op := typed(sale(advisor, "1", nil), opType)
		op.CaptureDate = date(2024, 1, capture)
		op.ReservationDate = date(2024, 1, reservation)
		return op
	}

	captureOnly := sale(advisor, "1", nil)
	captureOnly.CaptureDate = date(2024, 1, 1)

	ops := []entity.Operation{
		listed(1, 11, entity.OperationTypeSale),
		listed(1, 21, entity.OperationTypeSale),
		listed(1, 31, entity.OperationTypeTraditionalRental),
		listed(1, 31, entity.OperationTypeDevelopment),
		captureOnly,
	}

	avg, n := AverageDaysToSell(ops)

	if n != 2 {
		t.Errorf("expected 2 operations averaged, got %d", n)
	}
	assertDecimal(t, "average days", "15", avg)
}

func TestAverageDaysToSell_CaptureWithoutReservationIsExcluded(t *testing.T) {
	op := sale(uuid.New(), "1", nil)
	op.CaptureDate = date(2024, 1, 1)

	avg, n := AverageDaysToSell([]entity.Operation{op})

	if n != 0 {
		t.Errorf("expected no operation averaged, got %d", n)
	}
	assertDecimal(t, "average days", "0", avg)
}

func TestAverageSidePercentages(t *testing.T) {
	advisor := uuid.New()
	withSides := func(buyer, seller decimal.NullDecimal) entity.Operation {
		op := sale(advisor, "1", nil)
		op.BuyerSidePct = buyer
		op.SellerSidePct = seller
		return op
	}

	ops := []entity.Operation{
		withSides(pct("4"), pct("3")),
		withSides(pct("0"), decimal.NullDecimal{}),
		withSides(decimal.NullDecimal{}, decimal.NullDecimal{}),
	}

	s := AverageSidePercentages(ops)

	if s.BuyerSamples != 2 || s.SellerSamples != 1 {
		t.Errorf("unexpected samples %+v", s)
	}
	assertDecimal(t, "buyer average counts explicit zero", "2", s.BuyerAverage)
	assertDecimal(t, "seller average skips unset", "3", s.SellerAverage)
}
