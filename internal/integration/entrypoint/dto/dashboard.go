package dto

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brokerdash/backend/internal/application/usecase/dashboard"
	"github.com/brokerdash/backend/internal/domain/analytics"
	"github.com/brokerdash/backend/internal/domain/entity"
	"github.com/brokerdash/backend/internal/integration/entrypoint/format"
)

// OperationsResponse represents the response for the filtered operations list.
type OperationsResponse struct {
	Data OperationsData `json:"data"`
}

// OperationsData represents the data section of the operations response.
type OperationsData struct {
	Filter     FilterResponse      `json:"filter"`
	Count      int                 `json:"count"`
	Operations []OperationResponse `json:"operations"`
}

// FilterResponse echoes the filter that was applied; "all" means no filtering.
type FilterResponse struct {
	Status string `json:"status"`
	Year   string `json:"year"`
	Month  string `json:"month"`
	Type   string `json:"type"`
}

// OperationResponse represents a single operation in the response.
type OperationResponse struct {
	ID                 string   `json:"id"`
	Type               string   `json:"type"`
	Status             string   `json:"status"`
	Address            string   `json:"address,omitempty"`
	Value              float64  `json:"value"`
	GrossFee           float64  `json:"gross_fee"`
	NetFee             float64  `json:"net_fee"`
	OwnShare           float64  `json:"own_share"`
	Points             int      `json:"points"`
	Exclusive          bool     `json:"exclusive"`
	BuyerSide          bool     `json:"buyer_side"`
	SellerSide         bool     `json:"seller_side"`
	AdvisorID          string   `json:"advisor_id"`
	SecondaryAdvisorID *string  `json:"secondary_advisor_id,omitempty"`
	ReferralPartyIDs   []string `json:"referral_party_ids,omitempty"`
	CaptureDate        *string  `json:"capture_date,omitempty"`
	ReservationDate    *string  `json:"reservation_date,omitempty"`
	ClosingDate        *string  `json:"closing_date,omitempty"`
}

// TotalsResponse represents the response for the totals report.
type TotalsResponse struct {
	Data TotalsData `json:"data"`
}

// TotalsData represents the data section of the totals response.
type TotalsData struct {
	Year              int                  `json:"year"`
	GrossTotal        float64              `json:"gross_total"`
	GrossOpen         float64              `json:"gross_open"`
	GrossClosed       float64              `json:"gross_closed"`
	NetTotal          float64              `json:"net_total"`
	NetOpen           float64              `json:"net_open"`
	NetClosed         float64              `json:"net_closed"`
	ClosedValue       float64              `json:"closed_value"`
	AverageDealValue  float64              `json:"average_deal_value"`
	ClosedCount       int                  `json:"closed_count"`
	OpenCount         int                  `json:"open_count"`
	FallenCount       int                  `json:"fallen_count"`
	FallenValue       float64              `json:"fallen_value"`
	Points            PointsResponse       `json:"points"`
	Objective         float64              `json:"objective"`
	ObjectiveProgress string               `json:"objective_progress"`
	MonthlyShare      map[string][]float64 `json:"monthly_share"`
	Display           TotalsDisplay        `json:"display"`
}

// PointsResponse represents buyer/seller side counts.
type PointsResponse struct {
	BuyerSides  int `json:"buyer_sides"`
	SellerSides int `json:"seller_sides"`
	Total       int `json:"total"`
}

// TotalsDisplay carries the headline figures formatted for the user's currency.
type TotalsDisplay struct {
	GrossClosed      string `json:"gross_closed"`
	NetClosed        string `json:"net_closed"`
	GrossOpen        string `json:"gross_open"`
	AverageDealValue string `json:"average_deal_value"`
}

// TypeBreakdownResponse represents the response for the by-type breakdown.
type TypeBreakdownResponse struct {
	Data TypeBreakdownData `json:"data"`
}

// TypeBreakdownData represents the data section of the by-type response.
type TypeBreakdownData struct {
	Year              int                 `json:"year"`
	Types             []TypeSummaryResult `json:"types"`
	GroupAverageValue float64             `json:"group_average_value"`
}

// TypeSummaryResult represents one operation type in the breakdown.
type TypeSummaryResult struct {
	Type         string  `json:"type"`
	Count        int     `json:"count"`
	TotalFee     float64 `json:"total_fee"`
	TotalValue   float64 `json:"total_value"`
	AverageValue float64 `json:"average_value"`
}

// GroupSummaryResponse represents the response for the report-group summary.
type GroupSummaryResponse struct {
	Data GroupSummaryData `json:"data"`
}

// GroupSummaryData represents the data section of the group summary response.
type GroupSummaryData struct {
	Year           int                  `json:"year"`
	Groups         []GroupSummaryResult `json:"groups"`
	TotalBrokerFee float64              `json:"total_broker_fee"`
}

// GroupSummaryResult represents one report group.
type GroupSummaryResult struct {
	Group      string  `json:"group"`
	Count      int     `json:"count"`
	BrokerFee  float64 `json:"broker_fee"`
	Value      float64 `json:"value"`
	Percentage string  `json:"percentage"`
}

// SeriesResponse represents the response for a monthly series.
type SeriesResponse struct {
	Data SeriesData `json:"data"`
}

// SeriesData represents the data section of the series response.
type SeriesData struct {
	Year   int                   `json:"year"`
	Field  string                `json:"field"`
	Mode   string                `json:"mode"`
	Points []SeriesPointResponse `json:"points"`
}

// SeriesPointResponse represents one month of a series. Absent values are omitted.
type SeriesPointResponse struct {
	Month     int      `json:"month"`
	Label     string   `json:"label"`
	Value     *float64 `json:"value,omitempty"`
	Previous  *float64 `json:"previous,omitempty"`
	Projected *float64 `json:"projected,omitempty"`
}

// KPIsResponse represents the response for the KPI report.
type KPIsResponse struct {
	Data KPIsData `json:"data"`
}

// KPIsData represents the data section of the KPI response.
type KPIsData struct {
	Year              int                 `json:"year"`
	Exclusive         int                 `json:"exclusive"`
	NonExclusive      int                 `json:"non_exclusive"`
	ExclusivePct      string              `json:"exclusive_pct"`
	NonExclusivePct   string              `json:"non_exclusive_pct"`
	AverageDaysToSell float64             `json:"average_days_to_sell"`
	DaysToSellSamples int                 `json:"days_to_sell_samples"`
	SidePercentages   SidePercentagesData `json:"side_percentages"`
}

// SidePercentagesData represents the average side percentages.
type SidePercentagesData struct {
	BuyerAverage  string `json:"buyer_average"`
	BuyerSamples  int    `json:"buyer_samples"`
	SellerAverage string `json:"seller_average"`
	SellerSamples int    `json:"seller_samples"`
}

// RankingResponse represents the response for the advisor ranking.
type RankingResponse struct {
	Data RankingData `json:"data"`
}

// RankingData represents the data section of the ranking response.
type RankingData struct {
	Year     int                 `json:"year"`
	Advisors []RankingItemResult `json:"advisors"`
}

// RankingItemResult represents one advisor in the ranking.
type RankingItemResult struct {
	Position          int     `json:"position"`
	AdvisorID         string  `json:"advisor_id"`
	Name              string  `json:"name"`
	AdjustedBrokerFee float64 `json:"adjusted_broker_fee"`
	Points            int     `json:"points"`
	Operations        int     `json:"operations"`
}

// ExpenseSummaryResponse represents the response for the expense summary.
type ExpenseSummaryResponse struct {
	Data ExpenseSummaryData `json:"data"`
}

// ExpenseSummaryData represents the data section of the expense summary response.
type ExpenseSummaryData struct {
	Year             int                     `json:"year"`
	Total            float64                 `json:"total"`
	TotalReference   float64                 `json:"total_reference"`
	Personal         float64                 `json:"personal"`
	Team             float64                 `json:"team"`
	MonthlyAverage   float64                 `json:"monthly_average"`
	ExpenseCount     int                     `json:"expense_count"`
	Monthly          []float64               `json:"monthly"`
	ByCategory       []ExpenseCategoryResult `json:"by_category"`
	NetClosed        float64                 `json:"net_closed"`
	NetAfterExpenses float64                 `json:"net_after_expenses"`
}

// ExpenseCategoryResult represents one expense category.
type ExpenseCategoryResult struct {
	Label           string  `json:"label"`
	Amount          float64 `json:"amount"`
	AmountReference float64 `json:"amount_reference"`
	Count           int     `json:"count"`
}

func amount(d decimal.Decimal) float64 {
	return analytics.Round2(d).InexactFloat64()
}

func optionalAmount(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	v := amount(*d)
	return &v
}

func optionalDate(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func series(s analytics.MonthlySeries) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = amount(v)
	}
	return out
}

func filterValue[T any](v *T, render func(T) string) string {
	if v == nil {
		return analytics.FilterAll
	}
	return render(*v)
}

// ToOperationsResponse converts a ListOperationsOutput to OperationsResponse DTO.
// OwnShare and Points are computed for the requesting user.
func ToOperationsResponse(output *dashboard.ListOperationsOutput, user *entity.UserContext) OperationsResponse {
	ops := make([]OperationResponse, len(output.Operations))
	for i, op := range output.Operations {
		fees := analytics.OperationFees(op)
		item := OperationResponse{
			ID:               op.ID.String(),
			Type:             string(op.Type),
			Status:           string(op.Status),
			Address:          op.Address,
			Value:            amount(op.Value),
			GrossFee:         amount(fees.BrokerFee),
			NetFee:           amount(fees.AdvisorFee),
			Exclusive:        op.Exclusive,
			BuyerSide:        op.BuyerSide,
			SellerSide:       op.SellerSide,
			AdvisorID:        op.AdvisorID.String(),
			ReferralPartyIDs: op.ReferralPartyIDs,
			CaptureDate:      optionalDate(op.CaptureDate),
			ReservationDate:  optionalDate(op.ReservationDate),
			ClosingDate:      optionalDate(op.ClosingDate),
		}
		if user.IsTeamLeader() {
			item.OwnShare = amount(analytics.TeamNetFee(op))
			item.Points = analytics.Sides(op)
		} else {
			item.OwnShare = amount(analytics.AdvisorShare(op, user.UserID))
			item.Points = analytics.PointsFor(op, user.UserID)
		}
		if op.SecondaryAdvisorID != nil {
			id := op.SecondaryAdvisorID.String()
			item.SecondaryAdvisorID = &id
		}
		ops[i] = item
	}

	f := output.Filter
	return OperationsResponse{
		Data: OperationsData{
			Filter: FilterResponse{
				Status: filterValue(f.Status, func(s entity.OperationStatus) string { return string(s) }),
				Year:   filterValue(f.Year, strconv.Itoa),
				Month:  filterValue(f.Month, strconv.Itoa),
				Type:   filterValue(f.Type, func(t entity.OperationType) string { return string(t) }),
			},
			Count:      len(ops),
			Operations: ops,
		},
	}
}

// ToTotalsResponse converts analytics Totals to TotalsResponse DTO.
func ToTotalsResponse(totals *analytics.Totals, currencySymbol string) TotalsResponse {
	share := make(map[string][]float64, len(totals.MonthlyShare))
	for year, s := range totals.MonthlyShare {
		share[strconv.Itoa(year)] = series(s)
	}

	return TotalsResponse{
		Data: TotalsData{
			Year:             totals.Year,
			GrossTotal:       amount(totals.GrossTotal),
			GrossOpen:        amount(totals.GrossOpen),
			GrossClosed:      amount(totals.GrossClosed),
			NetTotal:         amount(totals.NetTotal),
			NetOpen:          amount(totals.NetOpen),
			NetClosed:        amount(totals.NetClosed),
			ClosedValue:      amount(totals.ClosedValue),
			AverageDealValue: amount(totals.AverageDealValue),
			ClosedCount:      totals.ClosedCount,
			OpenCount:        totals.OpenCount,
			FallenCount:      totals.FallenCount,
			FallenValue:      amount(totals.FallenValue),
			Points: PointsResponse{
				BuyerSides:  totals.Points.BuyerSides,
				SellerSides: totals.Points.SellerSides,
				Total:       totals.Points.Total,
			},
			Objective:         amount(totals.Objective),
			ObjectiveProgress: format.Percentage(totals.GrossClosed, totals.Objective),
			MonthlyShare:      share,
			Display: TotalsDisplay{
				GrossClosed:      format.Money(totals.GrossClosed, currencySymbol),
				NetClosed:        format.Money(totals.NetClosed, currencySymbol),
				GrossOpen:        format.Money(totals.GrossOpen, currencySymbol),
				AverageDealValue: format.Money(totals.AverageDealValue, currencySymbol),
			},
		},
	}
}

// ToTypeBreakdownResponse converts a GetTypeBreakdownOutput to TypeBreakdownResponse DTO.
func ToTypeBreakdownResponse(output *dashboard.GetTypeBreakdownOutput) TypeBreakdownResponse {
	types := make([]TypeSummaryResult, len(output.Types))
	for i, t := range output.Types {
		types[i] = TypeSummaryResult{
			Type:         string(t.Type),
			Count:        t.Count,
			TotalFee:     amount(t.TotalFee),
			TotalValue:   amount(t.TotalValue),
			AverageValue: amount(t.AverageValue),
		}
	}
	return TypeBreakdownResponse{
		Data: TypeBreakdownData{
			Year:              output.Year,
			Types:             types,
			GroupAverageValue: amount(output.GroupAverageValue),
		},
	}
}

// ToGroupSummaryResponse converts a GetGroupSummaryOutput to GroupSummaryResponse DTO.
func ToGroupSummaryResponse(output *dashboard.GetGroupSummaryOutput) GroupSummaryResponse {
	groups := make([]GroupSummaryResult, len(output.Report.Groups))
	for i, g := range output.Report.Groups {
		groups[i] = GroupSummaryResult{
			Group:      string(g.Group),
			Count:      g.Count,
			BrokerFee:  amount(g.BrokerFee),
			Value:      amount(g.Value),
			Percentage: format.Percentage(g.BrokerFee, output.Report.TotalBrokerFee),
		}
	}
	return GroupSummaryResponse{
		Data: GroupSummaryData{
			Year:           output.Year,
			Groups:         groups,
			TotalBrokerFee: amount(output.Report.TotalBrokerFee),
		},
	}
}

// ToSeriesResponse converts a GetSeriesOutput to SeriesResponse DTO.
func ToSeriesResponse(output *dashboard.GetSeriesOutput) SeriesResponse {
	points := make([]SeriesPointResponse, len(output.Points))
	for i, p := range output.Points {
		points[i] = SeriesPointResponse{
			Month:     p.Month,
			Label:     p.Label,
			Value:     optionalAmount(p.Value),
			Previous:  optionalAmount(p.Previous),
			Projected: optionalAmount(p.Projected),
		}
	}
	return SeriesResponse{
		Data: SeriesData{
			Year:   output.Year,
			Field:  string(output.Field),
			Mode:   string(output.Mode),
			Points: points,
		},
	}
}

// ToKPIsResponse converts a GetKPIsOutput to KPIsResponse DTO.
func ToKPIsResponse(output *dashboard.GetKPIsOutput) KPIsResponse {
	return KPIsResponse{
		Data: KPIsData{
			Year:              output.Year,
			Exclusive:         output.Exclusivity.Exclusive,
			NonExclusive:      output.Exclusivity.NonExclusive,
			ExclusivePct:      format.Percent(output.Exclusivity.ExclusivePct),
			NonExclusivePct:   format.Percent(output.Exclusivity.NonExclusivePct),
			AverageDaysToSell: amount(output.AverageDaysToSell),
			DaysToSellSamples: output.DaysToSellSamples,
			SidePercentages: SidePercentagesData{
				BuyerAverage:  format.Percent(output.SidePercentages.BuyerAverage),
				BuyerSamples:  output.SidePercentages.BuyerSamples,
				SellerAverage: format.Percent(output.SidePercentages.SellerAverage),
				SellerSamples: output.SidePercentages.SellerSamples,
			},
		},
	}
}

// ToRankingResponse converts a GetRankingOutput to RankingResponse DTO.
func ToRankingResponse(output *dashboard.GetRankingOutput) RankingResponse {
	advisors := make([]RankingItemResult, len(output.Advisors))
	for i, a := range output.Advisors {
		advisors[i] = RankingItemResult{
			Position:          a.Position,
			AdvisorID:         a.AdvisorID.String(),
			Name:              a.Name,
			AdjustedBrokerFee: amount(a.AdjustedBrokerFee),
			Points:            a.Points,
			Operations:        a.Operations,
		}
	}
	return RankingResponse{
		Data: RankingData{
			Year:     output.Year,
			Advisors: advisors,
		},
	}
}

// ToExpenseSummaryResponse converts a GetExpenseSummaryOutput to ExpenseSummaryResponse DTO.
func ToExpenseSummaryResponse(output *dashboard.GetExpenseSummaryOutput) ExpenseSummaryResponse {
	s := output.Summary
	categories := make([]ExpenseCategoryResult, len(s.ByCategory))
	for i, c := range s.ByCategory {
		categories[i] = ExpenseCategoryResult{
			Label:           c.Label,
			Amount:          amount(c.Amount),
			AmountReference: amount(c.AmountReference),
			Count:           c.Count,
		}
	}
	return ExpenseSummaryResponse{
		Data: ExpenseSummaryData{
			Year:             output.Year,
			Total:            amount(s.Total),
			TotalReference:   amount(s.TotalReference),
			Personal:         amount(s.Personal),
			Team:             amount(s.Team),
			MonthlyAverage:   amount(s.MonthlyAverage),
			ExpenseCount:     s.ExpenseCount,
			Monthly:          series(s.Monthly),
			ByCategory:       categories,
			NetClosed:        amount(output.NetClosed),
			NetAfterExpenses: amount(output.NetAfterExpenses),
		},
	}
}
