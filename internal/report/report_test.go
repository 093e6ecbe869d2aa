package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/profitrider/backend/internal/model"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return v
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in   string
		want Period
	}{
		{"today", PeriodToday},
		{"week", PeriodWeek},
		{"month", PeriodMonth},
		{"all", PeriodAll},
		{"", PeriodAll},
		{"fortnight", PeriodAll},
	}

	for _, tt := range tests {
		if got := ParsePeriod(tt.in); got != tt.want {
			t.Errorf("ParsePeriod(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPeriodWindow(t *testing.T) {
	tests := []struct {
		name    string
		period  Period
		ref     time.Time
		from    time.Time
		to      time.Time
		bounded bool
	}{
		{
			name:   "today is a single day",
			period: PeriodToday,
			ref:    date(2025, time.January, 15),
			from:   date(2025, time.January, 15),
			to:     date(2025, time.January, 15), bounded: true,
		},
		{
			name:   "week runs monday to sunday",
			period: PeriodWeek,
			ref:    date(2025, time.January, 15), // a Wednesday
			from:   date(2025, time.January, 13),
			to:     date(2025, time.January, 19), bounded: true,
		},
		{
			name:   "week anchored on monday starts there",
			period: PeriodWeek,
			ref:    date(2025, time.January, 13),
			from:   date(2025, time.January, 13),
			to:     date(2025, time.January, 19), bounded: true,
		},
		{
			name:   "week anchored on sunday reaches back",
			period: PeriodWeek,
			ref:    date(2025, time.January, 19),
			from:   date(2025, time.January, 13),
			to:     date(2025, time.January, 19), bounded: true,
		},
		{
			name:   "week can span a year boundary",
			period: PeriodWeek,
			ref:    date(2025, time.January, 1), // a Wednesday
			from:   date(2024, time.December, 30),
			to:     date(2025, time.January, 5), bounded: true,
		},
		{
			name:   "month covers the calendar month",
			period: PeriodMonth,
			ref:    date(2024, time.February, 10),
			from:   date(2024, time.February, 1),
			to:     date(2024, time.February, 29), bounded: true,
		},
		{
			name:    "all time is unbounded",
			period:  PeriodAll,
			ref:     date(2025, time.January, 15),
			bounded: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PeriodWindow(tt.period, tt.ref)
			if got.Bounded != tt.bounded {
				t.Fatalf("bounded = %v, want %v", got.Bounded, tt.bounded)
			}
			if !tt.bounded {
				return
			}
			if !got.From.Equal(tt.from) || !got.To.Equal(tt.to) {
				t.Errorf("window = [%s, %s], want [%s, %s]",
					got.From.Format(time.DateOnly), got.To.Format(time.DateOnly),
					tt.from.Format(time.DateOnly), tt.to.Format(time.DateOnly))
			}
		})
	}
}

func TestRangeWindowTruncatesToDays(t *testing.T) {
	from := time.Date(2025, time.March, 1, 13, 45, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 8, 2, 30, 0, 0, time.UTC)

	got := RangeWindow(from, to)

	if !got.Bounded {
		t.Fatal("range window must be bounded")
	}
	if !got.From.Equal(date(2025, time.March, 1)) || !got.To.Equal(date(2025, time.March, 8)) {
		t.Errorf("window = [%s, %s], want [2025-03-01, 2025-03-08]",
			got.From.Format(time.DateOnly), got.To.Format(time.DateOnly))
	}
}

func TestBuildEmptySelection(t *testing.T) {
	got := Build(nil)

	if got.SessionCount != 0 {
		t.Errorf("session count = %d, want 0", got.SessionCount)
	}
	if !got.TotalNetProfit.IsZero() || !got.TotalEarnings.IsZero() || !got.TotalCosts.IsZero() {
		t.Error("totals over an empty selection must be zero")
	}
	if !got.AvgProfitPerHour.IsZero() {
		t.Errorf("avg profit per hour = %s, want 0", got.AvgProfitPerHour)
	}
	if got.ChartData == nil || len(got.ChartData) != 0 {
		t.Errorf("chart data = %v, want empty non-nil series", got.ChartData)
	}
}

func session(t *testing.T, day time.Time, net, earnings, fuel, rent, fee, duration string) model.WorkSession {
	t.Helper()
	return model.WorkSession{
		Date:           day,
		NetProfit:      dec(t, net),
		TotalEarnings:  dec(t, earnings),
		FuelCost:       dec(t, fuel),
		VehicleRent:    dec(t, rent),
		ApplicationFee: dec(t, fee),
		DurationHours:  dec(t, duration),
	}
}

func TestBuildSummary(t *testing.T) {
	day1 := date(2025, time.April, 7)
	day2 := date(2025, time.April, 8)

	sessions := []model.WorkSession{
		// Deliberately out of date order: the chart must still come out
		// ascending.
		session(t, day2, "40.00", "55.00", "3.00", "0.00", "2.00", "2.00"),
		session(t, day1, "80.00", "100.00", "5.00", "10.00", "4.00", "4.00"),
		session(t, day1, "20.00", "30.00", "2.00", "0.00", "1.00", "2.00"),
	}

	got := Build(sessions)

	if got.SessionCount != 3 {
		t.Errorf("session count = %d, want 3", got.SessionCount)
	}
	if !got.TotalNetProfit.Equal(dec(t, "140.00")) {
		t.Errorf("total net profit = %s, want 140.00", got.TotalNetProfit)
	}
	if !got.TotalEarnings.Equal(dec(t, "185.00")) {
		t.Errorf("total earnings = %s, want 185.00", got.TotalEarnings)
	}

	// The report-level cost total sums the five component categories and
	// leaves the application fee out.
	if !got.TotalCosts.Equal(dec(t, "20.00")) {
		t.Errorf("total costs = %s, want 20.00", got.TotalCosts)
	}

	// 140 / 8 hours
	if !got.AvgProfitPerHour.Equal(dec(t, "17.50")) {
		t.Errorf("avg profit per hour = %s, want 17.50", got.AvgProfitPerHour)
	}

	if len(got.ChartData) != 2 {
		t.Fatalf("chart length = %d, want 2", len(got.ChartData))
	}
	if got.ChartData[0].FullDate != "2025-04-07" || got.ChartData[1].FullDate != "2025-04-08" {
		t.Errorf("chart dates = [%s, %s], want ascending [2025-04-07, 2025-04-08]",
			got.ChartData[0].FullDate, got.ChartData[1].FullDate)
	}

	// Day one aggregates both of its sessions.
	first := got.ChartData[0]
	if !first.Profit.Equal(dec(t, "100.00")) || !first.Earnings.Equal(dec(t, "130.00")) {
		t.Errorf("day one profit/earnings = %s/%s, want 100.00/130.00", first.Profit, first.Earnings)
	}
	if !first.Costs.Equal(dec(t, "30.00")) {
		t.Errorf("day one costs = %s, want earnings minus profit = 30.00", first.Costs)
	}

	// Chart profit sums back to the period total.
	chartProfit := decimal.Zero
	for _, point := range got.ChartData {
		chartProfit = chartProfit.Add(point.Profit)
	}
	if !chartProfit.Equal(got.TotalNetProfit) {
		t.Errorf("chart profit sum = %s, want %s", chartProfit, got.TotalNetProfit)
	}
}

func TestBuildZeroDurationHasNoAverage(t *testing.T) {
	sessions := []model.WorkSession{
		session(t, date(2025, time.April, 7), "10.00", "10.00", "0", "0", "0", "0"),
	}

	got := Build(sessions)

	if !got.AvgProfitPerHour.IsZero() {
		t.Errorf("avg profit per hour = %s, want 0", got.AvgProfitPerHour)
	}
}
