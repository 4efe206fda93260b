package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brokerdash/backend/internal/domain/entity"
)

// ExpenseCategoryTotal is the spend of one category label.
type ExpenseCategoryTotal struct {
	Label           string
	Amount          decimal.Decimal
	AmountReference decimal.Decimal
	Count           int
}

// ExpenseSummary aggregates the expenses of a year.
type ExpenseSummary struct {
	Total          decimal.Decimal
	TotalReference decimal.Decimal
	Personal       decimal.Decimal
	Team           decimal.Decimal
	ByCategory     []ExpenseCategoryTotal
	Monthly        MonthlySeries
	// MonthlyAverage spreads Total over the months of year reached at the
	// reference time: all twelve for past years, January through the current
	// month for the current one.
	MonthlyAverage decimal.Decimal
	ExpenseCount   int
}

// SummarizeExpenses aggregates the expenses dated in year as seen at now.
// "Other" expenses are grouped under their free-text label. Categories are
// sorted by amount, largest first, then by label.
func SummarizeExpenses(expenses []entity.Expense, year int, now time.Time) ExpenseSummary {
	s := ExpenseSummary{
		Total:          decimal.Zero,
		TotalReference: decimal.Zero,
		Personal:       decimal.Zero,
		Team:           decimal.Zero,
		Monthly:        NewMonthlySeries(),
		MonthlyAverage: decimal.Zero,
	}

	byLabel := make(map[string]*ExpenseCategoryTotal)
	for _, e := range expenses {
		if e.Date.IsZero() || e.Date.Year() != year {
			continue
		}
		s.ExpenseCount++
		s.Total = s.Total.Add(e.Amount)
		s.TotalReference = s.TotalReference.Add(e.AmountReference)
		if e.Association == entity.ExpenseAssociationTeam {
			s.Team = s.Team.Add(e.Amount)
		} else {
			s.Personal = s.Personal.Add(e.Amount)
		}
		m := int(e.Date.Month()) - 1
		s.Monthly[m] = s.Monthly[m].Add(e.Amount)

		label := e.CategoryLabel()
		c, ok := byLabel[label]
		if !ok {
			c = &ExpenseCategoryTotal{Label: label}
			byLabel[label] = c
		}
		c.Amount = c.Amount.Add(e.Amount)
		c.AmountReference = c.AmountReference.Add(e.AmountReference)
		c.Count++
	}

	s.ByCategory = make([]ExpenseCategoryTotal, 0, len(byLabel))
	for _, c := range byLabel {
		s.ByCategory = append(s.ByCategory, *c)
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		if c := s.ByCategory[i].Amount.Cmp(s.ByCategory[j].Amount); c != 0 {
			return c > 0
		}
		return s.ByCategory[i].Label < s.ByCategory[j].Label
	})

	s.MonthlyAverage = s.Total.Div(decimal.NewFromInt(int64(monthsReached(year, now))))
	return s
}

// monthsReached counts the months of year started by now, current one
// included. Future years count as a full year.
func monthsReached(year int, now time.Time) int {
	if year == now.Year() {
		return int(now.Month())
	}
	return Months
}
