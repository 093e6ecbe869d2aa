// Package engine derives the financial fields of a work session from its raw
// inputs and the owner's profile. Derivation is a pure function: it reads its
// arguments and returns values, so every save recomputes the full derived
// block and repeated saves cannot drift.
package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/profitrider/backend/internal/model"
)

var (
	hundred    = decimal.NewFromInt(100)
	daysInWeek = decimal.NewFromInt(7)
)

// ProfileSnapshot is the slice of a user profile the engine needs, captured
// at save time. A nil snapshot means the profile could not be resolved; the
// engine then degrades rent, fee and tax to zero instead of failing the save.
type ProfileSnapshot struct {
	TransportType model.TransportType
	CourierType   model.CourierType
	FeePercent    decimal.Decimal

	// TaxRatePercent is the profile country's rate, already resolved by the
	// caller. Zero when the profile has no country.
	TaxRatePercent decimal.Decimal

	RentAmount    decimal.Decimal
	RentFrequency model.RentFrequency
}

// Inputs are the caller-supplied session fields.
type Inputs struct {
	Date      time.Time
	StartTime model.ClockTime
	EndTime   model.ClockTime

	GrossEarnings    decimal.Decimal
	Tips             decimal.Decimal
	FuelCost         decimal.Decimal
	DepreciationCost decimal.Decimal
	OtherExpenses    decimal.Decimal
	PlatformFees     decimal.Decimal

	TotalDistanceKm decimal.Decimal
	TotalOrders     int
}

// Derived is the complete computed block of a session. FuelCost is included
// because the engine may override the submitted value for fuel-free
// transport types.
type Derived struct {
	DurationHours  decimal.Decimal
	FuelCost       decimal.Decimal
	VehicleRent    decimal.Decimal
	ApplicationFee decimal.Decimal
	TotalEarnings  decimal.Decimal
	TaxEstimate    decimal.Decimal
	NetProfit      decimal.Decimal
	ProfitPerHour  decimal.Decimal
	ProfitPerKm    decimal.Decimal
	ProfitPerOrder decimal.Decimal
}

// Derive computes the full derived block for one session.
//
// ownsDailyRent tells the engine whether this session is the one session of
// its calendar date that carries the day's rent allocation. The decision is
// made by the persistence layer inside the per-user transaction (first
// existing session of the date wins, excluding the session itself on
// update), so two concurrent saves cannot both claim the rent.
func Derive(in Inputs, profile *ProfileSnapshot, ownsDailyRent bool) Derived {
	var d Derived

	d.DurationHours = durationHours(in.StartTime, in.EndTime)

	// Fuel enforcement is a server-side invariant: bicycles and scooters
	// have no fuel cost no matter what the client submitted.
	d.FuelCost = in.FuelCost
	if profile != nil && !profile.TransportType.UsesFuel() {
		d.FuelCost = decimal.Zero
	}

	if ownsDailyRent {
		d.VehicleRent = DailyRent(profile, in.Date)
	} else {
		d.VehicleRent = decimal.Zero
	}

	d.ApplicationFee = applicationFee(in.GrossEarnings, profile)

	d.TotalEarnings = in.GrossEarnings.Add(in.Tips).Round(2)

	totalCosts := d.FuelCost.
		Add(d.VehicleRent).
		Add(in.DepreciationCost).
		Add(in.OtherExpenses).
		Add(in.PlatformFees).
		Add(d.ApplicationFee)

	preTaxProfit := d.TotalEarnings.Sub(totalCosts)

	// No tax benefit is modeled for losses.
	d.TaxEstimate = decimal.Zero
	if profile != nil && preTaxProfit.IsPositive() {
		rate := profile.TaxRatePercent.Div(hundred)
		d.TaxEstimate = preTaxProfit.Mul(rate).Round(2)
	}

	d.NetProfit = preTaxProfit.Sub(d.TaxEstimate).Round(2)

	d.ProfitPerHour = safeRate(d.NetProfit, d.DurationHours)
	d.ProfitPerKm = safeRate(d.NetProfit, in.TotalDistanceKm)
	d.ProfitPerOrder = safeRate(d.NetProfit, decimal.NewFromInt(int64(in.TotalOrders)))

	return d
}

// DailyRent allocates the profile's periodic rent to a single day. Monthly
// rent divides by the actual number of days in the session's month, so leap
// years come out right. A nil profile yields zero.
func DailyRent(profile *ProfileSnapshot, date time.Time) decimal.Decimal {
	if profile == nil {
		return decimal.Zero
	}

	switch profile.RentFrequency {
	case model.RentDaily:
		return profile.RentAmount.Round(2)
	case model.RentWeekly:
		return profile.RentAmount.Div(daysInWeek).Round(2)
	case model.RentMonthly:
		days := daysInMonth(date.Year(), date.Month())
		return profile.RentAmount.Div(decimal.NewFromInt(int64(days))).Round(2)
	}

	return decimal.Zero
}

// Apply copies the derived block onto a session record.
func (d Derived) Apply(s *model.WorkSession) {
	s.DurationHours = d.DurationHours
	s.FuelCost = d.FuelCost
	s.VehicleRent = d.VehicleRent
	s.ApplicationFee = d.ApplicationFee
	s.TotalEarnings = d.TotalEarnings
	s.TaxEstimate = d.TaxEstimate
	s.NetProfit = d.NetProfit
	s.ProfitPerHour = d.ProfitPerHour
	s.ProfitPerKm = d.ProfitPerKm
	s.ProfitPerOrder = d.ProfitPerOrder
}

// durationHours treats the start and end as wall-clock times on a shared
// day. An end strictly earlier than the start means the shift crossed
// midnight.
func durationHours(start, end model.ClockTime) decimal.Decimal {
	seconds := end.SecondsOfDay() - start.SecondsOfDay()
	if seconds < 0 {
		seconds += 24 * 3600
	}
	return decimal.NewFromInt(int64(seconds)).
		Div(decimal.NewFromInt(3600)).
		Round(2)
}

func applicationFee(gross decimal.Decimal, profile *ProfileSnapshot) decimal.Decimal {
	if profile == nil || profile.CourierType == model.CourierSolo {
		return decimal.Zero
	}
	return gross.Mul(profile.FeePercent.Div(hundred)).Round(2)
}

// safeRate reports zero instead of failing when there is no basis for a
// rate. A session with no time, distance or orders has no profit-rate
// signal.
func safeRate(profit, basis decimal.Decimal) decimal.Decimal {
	if !basis.IsPositive() {
		return decimal.Zero
	}
	return profit.Div(basis).Round(2)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
