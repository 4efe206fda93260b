// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brokerdash/backend/internal/application/adapter"
	"github.com/brokerdash/backend/internal/domain/analytics"
	"github.com/brokerdash/backend/internal/domain/entity"
	domainerror "github.com/brokerdash/backend/internal/domain/error"
)

// SeriesMode selects how the monthly buckets are presented.
type SeriesMode string

const (
	// SeriesModeMonthly returns the raw monthly buckets.
	SeriesModeMonthly SeriesMode = "monthly"
	// SeriesModeCompare pairs every month with the same month of the previous year.
	SeriesModeCompare SeriesMode = "compare"
	// SeriesModeCumulative returns the running total.
	SeriesModeCumulative SeriesMode = "cumulative"
	// SeriesModeProjection returns the year-end projection.
	SeriesModeProjection SeriesMode = "projection"
)

// monthAbbreviations maps months to chart labels.
var monthAbbreviations = map[time.Month]string{
	time.January:   "Jan",
	time.February:  "Feb",
	time.March:     "Mar",
	time.April:     "Apr",
	time.May:       "May",
	time.June:      "Jun",
	time.July:      "Jul",
	time.August:    "Aug",
	time.September: "Sep",
	time.October:   "Oct",
	time.November:  "Nov",
	time.December:  "Dec",
}

// GetSeriesInput represents the input for getting a monthly series.
type GetSeriesInput struct {
	User *entity.UserContext
	Year *int
	// Field defaults to broker_fee, Mode to monthly.
	Field string
	Mode  string
}

// SeriesPoint is one month of a series. Value holds the monthly, cumulative,
// current-year or actual figure; Previous is set in compare mode and
// Projected in projection mode.
type SeriesPoint struct {
	Month     int
	Label     string
	Value     *decimal.Decimal
	Previous  *decimal.Decimal
	Projected *decimal.Decimal
}

// GetSeriesOutput is a twelve-month series.
type GetSeriesOutput struct {
	Year   int
	Field  analytics.FieldName
	Mode   SeriesMode
	Points []SeriesPoint
}

// GetSeriesUseCase handles the monthly chart series.
type GetSeriesUseCase struct {
	loader *Loader
}

// NewGetSeriesUseCase creates a new GetSeriesUseCase instance.
func NewGetSeriesUseCase(loader *Loader) *GetSeriesUseCase {
	return &GetSeriesUseCase{
		loader: loader,
	}
}

// Execute buckets the active operations by month and shapes them per mode.
func (uc *GetSeriesUseCase) Execute(ctx context.Context, input GetSeriesInput) (*GetSeriesOutput, error) {
	if err := requireUser(input.User); err != nil {
		return nil, err
	}
	year, err := uc.loader.ReportingYear(input.Year)
	if err != nil {
		return nil, err
	}

	fieldName, field, err := resolveField(input.User, input.Field)
	if err != nil {
		return nil, err
	}
	mode, err := parseSeriesMode(input.Mode)
	if err != nil {
		return nil, err
	}

	params := []string{string(fieldName), string(mode)}
	if mode == SeriesModeProjection {
		// Projections move with the calendar month.
		params = append(params, uc.loader.Now().Format("2006-01"))
	}
	key := adapter.ReportKey(input.User.TeamID, input.User.UserID, year, "series", params...)

	return cached(ctx, uc.loader, key, func() (*GetSeriesOutput, error) {
		ops, err := uc.loader.Operations(ctx, input.User)
		if err != nil {
			return nil, err
		}
		active := analytics.Active(ops)

		out := &GetSeriesOutput{
			Year:   year,
			Field:  fieldName,
			Mode:   mode,
			Points: make([]SeriesPoint, analytics.Months),
		}
		for i := range out.Points {
			out.Points[i].Month = i + 1
			out.Points[i].Label = monthAbbreviations[time.Month(i+1)]
		}

		switch mode {
		case SeriesModeMonthly:
			fill(out.Points, analytics.BucketByMonth(active, year, field))
		case SeriesModeCumulative:
			fill(out.Points, analytics.Cumulative(analytics.BucketByMonth(active, year, field)))
		case SeriesModeCompare:
			for i, m := range analytics.CompareYears(active, year, year-1, field) {
				current, previous := m.Current, m.Previous
				out.Points[i].Value = &current
				out.Points[i].Previous = &previous
			}
		case SeriesModeProjection:
			for i, p := range analytics.Projection(active, year, uc.loader.Now(), field) {
				out.Points[i].Value = p.Actual
				out.Points[i].Projected = p.Projected
			}
		}
		return out, nil
	})
}

func fill(points []SeriesPoint, s analytics.MonthlySeries) {
	for i := range s {
		v := s[i]
		points[i].Value = &v
	}
}

// resolveField maps a wire field name to the Field the user should see.
func resolveField(user *entity.UserContext, name string) (analytics.FieldName, analytics.Field, error) {
	fieldName := analytics.FieldName(strings.ToLower(strings.TrimSpace(name)))
	if fieldName == "" {
		fieldName = analytics.FieldNameBrokerFee
	}

	var (
		field analytics.Field
		ok    bool
	)
	if user.IsTeamLeader() {
		field, ok = analytics.LookupField(fieldName)
	} else {
		field, ok = analytics.LookupFieldFor(fieldName, user.UserID)
	}
	if !ok {
		return "", nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidSeriesField,
			"unknown series field",
			domainerror.ErrInvalidSeriesField,
		)
	}
	return fieldName, field, nil
}

func parseSeriesMode(v string) (SeriesMode, error) {
	mode := SeriesMode(strings.ToLower(strings.TrimSpace(v)))
	switch mode {
	case "":
		return SeriesModeMonthly, nil
	case SeriesModeMonthly, SeriesModeCompare, SeriesModeCumulative, SeriesModeProjection:
		return mode, nil
	default:
		return "", domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidSeriesMode,
			"unknown series mode",
			domainerror.ErrInvalidSeriesMode,
		)
	}
}
