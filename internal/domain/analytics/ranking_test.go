package analytics

import (
	"testing"

	"github.com/google/uuid"

	"github.com/brokerdash/backend/internal/domain/entity"
)

func TestAdvisorRanking(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	bothSides := sale(b, "100000", date(2024, 3, 1))
	bothSides.SellerSide = true

	ops := []entity.Operation{
		sale(a, "100000", date(2024, 1, 1)),
		shared(sale(a, "200000", date(2024, 2, 1)), b),
		bothSides,
		sale(c, "50000", date(2024, 4, 1)),
	}

	got := AdvisorRanking(ops)

	if len(got) != 3 {
		t.Fatalf("expected 3 advisors, got %d", len(got))
	}

	expected := []struct {
		id     uuid.UUID
		fee    string
		points int
		ops    int
	}{
		{b, "12000", 3, 2},
		{a, "12000", 2, 2},
		{c, "3000", 1, 1},
	}
	for i, e := range expected {
		r := got[i]
		if r.AdvisorID != e.id {
			t.Errorf("position %d: expected advisor %s, got %s", i, e.id, r.AdvisorID)
		}
		assertDecimal(t, "adjusted fee", e.fee, r.AdjustedBrokerFee)
		if r.Points != e.points || r.Operations != e.ops {
			t.Errorf("position %d: expected %d points over %d operations, got %d over %d", i, e.points, e.ops, r.Points, r.Operations)
		}
	}
}

func TestAdvisorRanking_TiesBreakOnAdvisorID(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ops := []entity.Operation{
		sale(a, "100000", date(2024, 1, 1)),
		sale(b, "100000", date(2024, 1, 1)),
	}

	got := AdvisorRanking(ops)

	if got[0].AdvisorID.String() > got[1].AdvisorID.String() {
		t.Errorf("expected ascending advisor ids on a tie, got %s then %s", got[0].AdvisorID, got[1].AdvisorID)
	}
}

func TestAdvisorRanking_Empty(t *testing.T) {
	if got := AdvisorRanking(nil); len(got) != 0 {
		t.Errorf("expected empty ranking, got %d rows", len(got))
	}
}
