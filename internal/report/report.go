// Package report turns a set of derived work sessions into the dashboard
// summary: period totals, an average rate, and a per-day chart series. It is
// a read-only reduction; session selection happens in the database layer.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/profitrider/backend/internal/model"
)

type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// ParsePeriod maps a query-string value to a period. Anything unrecognized
// selects the unbounded all-time view; callers pick their own default for an
// absent parameter.
func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodToday, PeriodWeek, PeriodMonth:
		return Period(s)
	}
	return PeriodAll
}

// Window is an inclusive date range. Bounded is false for the all-time view.
type Window struct {
	From    time.Time
	To      time.Time
	Bounded bool
}

// PeriodWindow anchors a period on the caller's reference date: "week" is
// the Monday-Sunday week containing ref, "month" its calendar month.
func PeriodWindow(p Period, ref time.Time) Window {
	day := truncateToDay(ref)

	switch p {
	case PeriodToday:
		return Window{From: day, To: day, Bounded: true}
	case PeriodWeek:
		offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
		from := day.AddDate(0, 0, -offset)
		return Window{From: from, To: from.AddDate(0, 0, 6), Bounded: true}
	case PeriodMonth:
		from := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return Window{From: from, To: from.AddDate(0, 1, -1), Bounded: true}
	}

	return Window{}
}

// RangeWindow builds an explicit inclusive date range.
func RangeWindow(from, to time.Time) Window {
	return Window{From: truncateToDay(from), To: truncateToDay(to), Bounded: true}
}

// ChartPoint is one day of the dashboard chart. Costs is defined as
// earnings minus profit, which by construction equals the day's full costs
// including tax.
type ChartPoint struct {
	Date     string          `json:"date"`
	FullDate string          `json:"fullDate"`
	Profit   decimal.Decimal `json:"profit"`
	Earnings decimal.Decimal `json:"earnings"`
	Costs    decimal.Decimal `json:"costs"`
}

// Summary is the aggregate view over a period selection.
//
// TotalCosts sums the five component categories (fuel, rent, depreciation,
// other, platform fees) and deliberately leaves out the application fee: the
// fee is already folded into per-session net profit, and the dashboard
// surfaces the remaining categories separately.
type Summary struct {
	TotalNetProfit     decimal.Decimal `json:"totalNetProfit"`
	TotalEarnings      decimal.Decimal `json:"totalEarnings"`
	TotalCosts         decimal.Decimal `json:"totalCosts"`
	AvgProfitPerHour   decimal.Decimal `json:"avgProfitPerHour"`
	TotalDurationHours decimal.Decimal `json:"totalDurationHours"`
	TotalDistanceKm    decimal.Decimal `json:"totalDistanceKm"`
	SessionCount       int             `json:"sessionCount"`
	ChartData          []ChartPoint    `json:"chartData"`
}

// Build reduces a period's sessions to a summary. An empty selection yields
// all-zero totals and an empty chart, never an error.
func Build(sessions []model.WorkSession) Summary {
	sum := Summary{
		SessionCount: len(sessions),
		ChartData:    []ChartPoint{},
	}

	type dayTotals struct {
		date     time.Time
		profit   decimal.Decimal
		earnings decimal.Decimal
	}
	days := make(map[string]*dayTotals)

	for _, s := range sessions {
		sum.TotalNetProfit = sum.TotalNetProfit.Add(s.NetProfit)
		sum.TotalEarnings = sum.TotalEarnings.Add(s.TotalEarnings)
		sum.TotalCosts = sum.TotalCosts.
			Add(s.FuelCost).
			Add(s.VehicleRent).
			Add(s.DepreciationCost).
			Add(s.OtherExpenses).
			Add(s.PlatformFees)
		sum.TotalDurationHours = sum.TotalDurationHours.Add(s.DurationHours)
		sum.TotalDistanceKm = sum.TotalDistanceKm.Add(s.TotalDistanceKm)

		key := s.Date.Format(time.DateOnly)
		day, ok := days[key]
		if !ok {
			day = &dayTotals{date: truncateToDay(s.Date)}
			days[key] = day
		}
		day.profit = day.profit.Add(s.NetProfit)
		day.earnings = day.earnings.Add(s.TotalEarnings)
	}

	if sum.TotalDurationHours.IsPositive() {
		sum.AvgProfitPerHour = sum.TotalNetProfit.Div(sum.TotalDurationHours).Round(2)
	}

	keys := make([]string, 0, len(days))
	for key := range days {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		day := days[key]
		sum.ChartData = append(sum.ChartData, ChartPoint{
			Date:     day.date.Format("Mon, 02"),
			FullDate: key,
			Profit:   day.profit,
			Earnings: day.earnings,
			Costs:    day.earnings.Sub(day.profit),
		})
	}

	return sum
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
