package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ID = uint

type TransportType string

const (
	TransportBicycle    TransportType = "bicycle"
	TransportMotorcycle TransportType = "motorcycle"
	TransportCar        TransportType = "car"
	TransportScooter    TransportType = "scooter"
)

// UsesFuel reports whether the transport type has a fuel cost at all.
// Sessions owned by fuel-free transport types store fuel_cost = 0 no matter
// what the client submits.
func (t TransportType) UsesFuel() bool {
	return t == TransportMotorcycle || t == TransportCar
}

func (t TransportType) Valid() bool {
	switch t {
	case TransportBicycle, TransportMotorcycle, TransportCar, TransportScooter:
		return true
	}
	return false
}

type CourierType string

const (
	CourierSolo  CourierType = "SOLOPRENEUR"
	CourierFleet CourierType = "FLEET_COMPANY"
)

func (c CourierType) Valid() bool {
	return c == CourierSolo || c == CourierFleet
}

type RentFrequency string

const (
	RentDaily   RentFrequency = "daily"
	RentWeekly  RentFrequency = "weekly"
	RentMonthly RentFrequency = "monthly"
)

func (f RentFrequency) Valid() bool {
	switch f {
	case RentDaily, RentWeekly, RentMonthly:
		return true
	}
	return false
}

type User struct {
	ID        ID        `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Username     string `json:"username" db:"username"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
}

type Country struct {
	ID             ID              `json:"id" db:"id"`
	Name           string          `json:"name" db:"name"`
	CurrencySymbol string          `json:"currencySymbol" db:"currency_symbol"`
	TaxRatePercent decimal.Decimal `json:"taxRatePercentage" db:"tax_rate_percentage"`
	DistanceUnit   string          `json:"distanceUnit" db:"distance_unit"`
}

type Platform struct {
	ID             ID              `json:"id" db:"id"`
	Name           string          `json:"name" db:"name"`
	BaseFeePercent decimal.Decimal `json:"baseFeePercentage" db:"base_fee_percentage"`
	Country        ID              `json:"countryId" db:"country_id"`
	CountryName    string          `json:"countryName,omitempty" db:"country_name"`
}

// UserProfile is the per-user configuration the derivation engine reads.
// Exactly one exists per user; it is created in the same transaction as the
// user row.
type UserProfile struct {
	ID        ID        `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	User    ID  `json:"userId" db:"user_id"`
	Country *ID `json:"countryId" db:"country_id"`

	TransportType TransportType   `json:"transportType" db:"transport_type"`
	CourierType   CourierType     `json:"courierType" db:"courier_type"`
	FeePercent    decimal.Decimal `json:"feePercent" db:"fee_percent"`

	RentAmount    decimal.Decimal `json:"rentAmount" db:"rent_amount"`
	RentFrequency RentFrequency   `json:"rentFrequency" db:"rent_frequency"`

	DefaultFuelCostPerKm         decimal.Decimal `json:"defaultFuelCostPerKm" db:"default_fuel_cost_per_km"`
	DefaultDepreciationRatePerKm decimal.Decimal `json:"defaultDepreciationRatePerKm" db:"default_depreciation_rate_per_km"`
	DefaultStartTime             NullClockTime   `json:"defaultStartTime" db:"default_start_time"`
	DefaultEndTime               NullClockTime   `json:"defaultEndTime" db:"default_end_time"`

	Credits  int    `json:"credits" db:"credits"`
	IsPro    bool   `json:"isPro" db:"is_pro"`
	PlanName string `json:"planName" db:"plan_name"`
}

// WorkSession is one delivery shift. Fields past the raw-input block are
// derived by the engine on every save and never written directly.
type WorkSession struct {
	ID        ID        `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	User     ID  `json:"userId" db:"user_id"`
	Platform *ID `json:"platformId" db:"platform_id"`

	Date      time.Time `json:"date" db:"sess_date"`
	StartTime ClockTime `json:"startTime" db:"start_time"`
	EndTime   ClockTime `json:"endTime" db:"end_time"`

	TotalOrders     int             `json:"totalOrders" db:"total_orders"`
	TotalDistanceKm decimal.Decimal `json:"totalDistanceKm" db:"total_distance_km"`

	GrossEarnings    decimal.Decimal `json:"grossEarnings" db:"gross_earnings"`
	Tips             decimal.Decimal `json:"tips" db:"tips"`
	FuelCost         decimal.Decimal `json:"fuelCost" db:"fuel_cost"`
	DepreciationCost decimal.Decimal `json:"depreciationCost" db:"depreciation_cost"`
	OtherExpenses    decimal.Decimal `json:"otherExpenses" db:"other_expenses"`
	PlatformFees     decimal.Decimal `json:"platformFees" db:"platform_fees"`

	DurationHours  decimal.Decimal `json:"durationHours" db:"duration_hours"`
	VehicleRent    decimal.Decimal `json:"vehicleRent" db:"vehicle_rent"`
	ApplicationFee decimal.Decimal `json:"applicationFee" db:"application_fee"`
	TotalEarnings  decimal.Decimal `json:"totalEarnings" db:"total_earnings"`
	TaxEstimate    decimal.Decimal `json:"taxEstimate" db:"tax_estimate"`
	NetProfit      decimal.Decimal `json:"netProfit" db:"net_profit"`
	ProfitPerHour  decimal.Decimal `json:"profitPerHour" db:"profit_per_hour"`
	ProfitPerKm    decimal.Decimal `json:"profitPerKm" db:"profit_per_km"`
	ProfitPerOrder decimal.Decimal `json:"profitPerOrder" db:"profit_per_order"`
}

type WaitlistEntry struct {
	ID        ID        `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Source    string    `json:"source" db:"source"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
