package analytics

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brokerdash/backend/internal/domain/entity"
)

// AdvisorRank is one row of the advisor ranking.
type AdvisorRank struct {
	AdvisorID         uuid.UUID
	AdjustedBrokerFee decimal.Decimal
	Points            int
	Operations        int
}

// AdvisorRanking ranks every advisor appearing in ops by adjusted broker fee,
// then points, then advisor id. A shared operation contributes half its broker
// fee and one point to each of its two advisors.
func AdvisorRanking(ops []entity.Operation) []AdvisorRank {
	rows := make(map[uuid.UUID]*AdvisorRank)
	credit := func(advisorID uuid.UUID, op entity.Operation) {
		r, ok := rows[advisorID]
		if !ok {
			r = &AdvisorRank{AdvisorID: advisorID}
			rows[advisorID] = r
		}
		r.AdjustedBrokerFee = r.AdjustedBrokerFee.Add(AdjustedBrokerFee(op))
		r.Points += PointsFor(op, advisorID)
		r.Operations++
	}

	for _, op := range ops {
		credit(op.AdvisorID, op)
		if op.IsShared() {
			credit(*op.SecondaryAdvisorID, op)
		}
	}

	out := make([]AdvisorRank, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].AdjustedBrokerFee.Cmp(out[j].AdjustedBrokerFee); c != 0 {
			return c > 0
		}
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].AdvisorID.String() < out[j].AdvisorID.String()
	})
	return out
}
