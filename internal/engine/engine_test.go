package engine

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

func carProfile(taxRate string) *ProfileSnapshot {
	return &ProfileSnapshot{
		TransportType:  model.TransportCar,
		CourierType:    model.CourierFleet,
		FeePercent:     decimal.Zero,
		TaxRatePercent: decimal.RequireFromString(taxRate),
		RentAmount:     decimal.Zero,
		RentFrequency:  model.RentDaily,
	}
}

func TestDeriveDurationHours(t *testing.T) {
	tests := []struct {
		name  string
		start model.ClockTime
		end   model.ClockTime
		want  string
	}{
		{"two full hours", model.NewClockTime(18, 0), model.NewClockTime(20, 0), "2"},
		{"half hour", model.NewClockTime(10, 0), model.NewClockTime(10, 30), "0.5"},
		{"eight and a half", model.NewClockTime(9, 15), model.NewClockTime(17, 45), "8.5"},
		{"crosses midnight", model.NewClockTime(23, 0), model.NewClockTime(1, 0), "2"},
		{"late evening into morning", model.NewClockTime(19, 30), model.NewClockTime(2, 15), "6.75"},
		{"start equals end", model.NewClockTime(8, 0), model.NewClockTime(8, 0), "0"},
		{"uneven minutes", model.NewClockTime(9, 0), model.NewClockTime(9, 40), "0.67"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Inputs{StartTime: tt.start, EndTime: tt.end}
			got := Derive(in, carProfile("0"), false).DurationHours
			if !got.Equal(dec(t, tt.want)) {
				t.Errorf("duration = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDeriveFuelEnforcement(t *testing.T) {
	tests := []struct {
		transport model.TransportType
		want      string
	}{
		{model.TransportBicycle, "0"},
		{model.TransportScooter, "0"},
		{model.TransportMotorcycle, "12.50"},
		{model.TransportCar, "12.50"},
	}

	for _, tt := range tests {
		t.Run(string(tt.transport), func(t *testing.T) {
			profile := carProfile("0")
			profile.TransportType = tt.transport

			in := Inputs{
				StartTime: model.NewClockTime(9, 0),
				EndTime:   model.NewClockTime(17, 0),
				FuelCost:  dec(t, "12.50"),
			}

			got := Derive(in, profile, false).FuelCost
			if !got.Equal(dec(t, tt.want)) {
				t.Errorf("fuel cost = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDeriveReferenceVector(t *testing.T) {
	// gross 100, tips 10, fuel 5, depreciation 2, tax 10%, 2h, 20km, 10
	// orders: the canonical worked example.
	in := Inputs{
		Date:             time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		StartTime:        model.NewClockTime(18, 0),
		EndTime:          model.NewClockTime(20, 0),
		GrossEarnings:    dec(t, "100.00"),
		Tips:             dec(t, "10.00"),
		FuelCost:         dec(t, "5.00"),
		DepreciationCost: dec(t, "2.00"),
		TotalDistanceKm:  dec(t, "20.0"),
		TotalOrders:      10,
	}

	got := Derive(in, carProfile("10.00"), true)

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"duration", got.DurationHours, "2.00"},
		{"total earnings", got.TotalEarnings, "110.00"},
		{"vehicle rent", got.VehicleRent, "0"},
		{"application fee", got.ApplicationFee, "0"},
		{"tax estimate", got.TaxEstimate, "10.30"},
		{"net profit", got.NetProfit, "92.70"},
		{"profit per hour", got.ProfitPerHour, "46.35"},
		{"profit per km", got.ProfitPerKm, "4.64"},
		{"profit per order", got.ProfitPerOrder, "9.27"},
	}

	for _, c := range checks {
		if !c.got.Equal(dec(t, c.want)) {
			t.Errorf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}
}

func TestDeriveApplicationFee(t *testing.T) {
	in := Inputs{
		StartTime:     model.NewClockTime(10, 0),
		EndTime:       model.NewClockTime(12, 0),
		GrossEarnings: dec(t, "200.00"),
	}

	solo := carProfile("0")
	solo.CourierType = model.CourierSolo
	solo.FeePercent = dec(t, "15.00")

	if got := Derive(in, solo, false).ApplicationFee; !got.IsZero() {
		t.Errorf("solo fee = %s, want 0", got)
	}

	fleet := carProfile("0")
	fleet.FeePercent = dec(t, "15.00")

	if got := Derive(in, fleet, false).ApplicationFee; !got.Equal(dec(t, "30.00")) {
		t.Errorf("fleet fee = %s, want 30.00", got)
	}
}

func TestDailyRent(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name      string
		amount    string
		frequency model.RentFrequency
		date      time.Time
		want      string
	}{
		{"daily unchanged", "15.00", model.RentDaily, date(2025, time.June, 3), "15.00"},
		{"weekly divided by seven", "70.00", model.RentWeekly, date(2025, time.June, 3), "10.00"},
		{"weekly rounds", "100.00", model.RentWeekly, date(2025, time.June, 3), "14.29"},
		{"monthly june has 30 days", "300.00", model.RentMonthly, date(2025, time.June, 3), "10.00"},
		{"monthly leap february", "290.00", model.RentMonthly, date(2024, time.February, 15), "10.00"},
		{"monthly plain february", "280.00", model.RentMonthly, date(2023, time.February, 15), "10.00"},
		{"monthly december", "310.00", model.RentMonthly, date(2025, time.December, 1), "10.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := carProfile("0")
			profile.RentAmount = dec(t, tt.amount)
			profile.RentFrequency = tt.frequency

			got := DailyRent(profile, tt.date)
			if !got.Equal(dec(t, tt.want)) {
				t.Errorf("daily rent = %s, want %s", got, tt.want)
			}
		})
	}

	if got := DailyRent(nil, date(2025, time.June, 3)); !got.IsZero() {
		t.Errorf("nil profile rent = %s, want 0", got)
	}
}

func TestDeriveRentAllocation(t *testing.T) {
	profile := carProfile("0")
	profile.RentAmount = dec(t, "21.00")
	profile.RentFrequency = model.RentWeekly

	in := Inputs{
		Date:      time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC),
		StartTime: model.NewClockTime(9, 0),
		EndTime:   model.NewClockTime(12, 0),
	}

	first := Derive(in, profile, true)
	if !first.VehicleRent.Equal(dec(t, "3.00")) {
		t.Errorf("first session rent = %s, want 3.00", first.VehicleRent)
	}

	second := Derive(in, profile, false)
	if !second.VehicleRent.IsZero() {
		t.Errorf("second session rent = %s, want 0", second.VehicleRent)
	}
}

func TestDeriveLossHasNoTax(t *testing.T) {
	in := Inputs{
		StartTime:     model.NewClockTime(9, 0),
		EndTime:       model.NewClockTime(11, 0),
		GrossEarnings: dec(t, "10.00"),
		FuelCost:      dec(t, "25.00"),
	}

	got := Derive(in, carProfile("20.00"), false)

	if !got.TaxEstimate.IsZero() {
		t.Errorf("tax on a loss = %s, want 0", got.TaxEstimate)
	}
	if !got.NetProfit.Equal(dec(t, "-15.00")) {
		t.Errorf("net profit = %s, want -15.00", got.NetProfit)
	}
}

func TestDeriveUnresolvedProfile(t *testing.T) {
	in := Inputs{
		StartTime:     model.NewClockTime(9, 0),
		EndTime:       model.NewClockTime(10, 0),
		GrossEarnings: dec(t, "50.00"),
		FuelCost:      dec(t, "4.00"),
	}

	got := Derive(in, nil, true)

	// Without a profile there is no transport type to enforce against, no
	// rent configuration, no fee and no tax: everything degrades to a safe
	// default instead of failing.
	if !got.FuelCost.Equal(dec(t, "4.00")) {
		t.Errorf("fuel cost = %s, want 4.00", got.FuelCost)
	}
	if !got.VehicleRent.IsZero() {
		t.Errorf("vehicle rent = %s, want 0", got.VehicleRent)
	}
	if !got.ApplicationFee.IsZero() {
		t.Errorf("application fee = %s, want 0", got.ApplicationFee)
	}
	if !got.TaxEstimate.IsZero() {
		t.Errorf("tax estimate = %s, want 0", got.TaxEstimate)
	}
	if !got.NetProfit.Equal(dec(t, "46.00")) {
		t.Errorf("net profit = %s, want 46.00", got.NetProfit)
	}
}

func TestDeriveZeroDivisorsYieldZeroRates(t *testing.T) {
	in := Inputs{
		StartTime:     model.NewClockTime(9, 0),
		EndTime:       model.NewClockTime(9, 0),
		GrossEarnings: dec(t, "80.00"),
	}

	got := Derive(in, carProfile("0"), false)

	if !got.ProfitPerHour.IsZero() {
		t.Errorf("profit per hour = %s, want 0", got.ProfitPerHour)
	}
	if !got.ProfitPerKm.IsZero() {
		t.Errorf("profit per km = %s, want 0", got.ProfitPerKm)
	}
	if !got.ProfitPerOrder.IsZero() {
		t.Errorf("profit per order = %s, want 0", got.ProfitPerOrder)
	}
}

func TestDeriveIsIdempotent(t *testing.T) {
	profile := carProfile("19.00")
	profile.FeePercent = dec(t, "7.50")
	profile.RentAmount = dec(t, "210.00")
	profile.RentFrequency = model.RentWeekly

	in := Inputs{
		Date:             time.Date(2025, time.August, 20, 0, 0, 0, 0, time.UTC),
		StartTime:        model.NewClockTime(17, 30),
		EndTime:          model.NewClockTime(23, 45),
		GrossEarnings:    dec(t, "143.37"),
		Tips:             dec(t, "12.80"),
		FuelCost:         dec(t, "9.95"),
		DepreciationCost: dec(t, "3.10"),
		OtherExpenses:    dec(t, "1.50"),
		PlatformFees:     dec(t, "4.25"),
		TotalDistanceKm:  dec(t, "57.3"),
		TotalOrders:      19,
	}

	first := Derive(in, profile, true)
	second := Derive(in, profile, true)

	pairs := []struct {
		name string
		a, b decimal.Decimal
	}{
		{"duration", first.DurationHours, second.DurationHours},
		{"fuel", first.FuelCost, second.FuelCost},
		{"rent", first.VehicleRent, second.VehicleRent},
		{"fee", first.ApplicationFee, second.ApplicationFee},
		{"earnings", first.TotalEarnings, second.TotalEarnings},
		{"tax", first.TaxEstimate, second.TaxEstimate},
		{"net", first.NetProfit, second.NetProfit},
		{"per hour", first.ProfitPerHour, second.ProfitPerHour},
		{"per km", first.ProfitPerKm, second.ProfitPerKm},
		{"per order", first.ProfitPerOrder, second.ProfitPerOrder},
	}

	for _, p := range pairs {
		if !p.a.Equal(p.b) {
			t.Errorf("%s drifted between runs: %s vs %s", p.name, p.a, p.b)
		}
	}
}
