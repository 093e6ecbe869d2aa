package main

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/profitrider/backend/internal/validator"
)

// Validation rules

func validateSessionInput(v *validator.Validator, input requestSessionInput) {
	if _, err := time.Parse(time.DateOnly, input.Date); err != nil {
		v.AddFieldError("date", "must be a valid date (YYYY-MM-DD)")
	}

	v.CheckField(input.TotalOrders >= 0, "totalOrders", "must not be negative")
	validateNonNegative(v, "totalDistanceKm", input.TotalDistanceKm)
	validateNonNegative(v, "grossEarnings", input.GrossEarnings)
	validateNonNegative(v, "tips", input.Tips)
	validateNonNegative(v, "fuelCost", input.FuelCost)
	validateNonNegative(v, "depreciationCost", input.DepreciationCost)
	validateNonNegative(v, "otherExpenses", input.OtherExpenses)
	validateNonNegative(v, "platformFees", input.PlatformFees)
}

func validateRequestUpdateProfile(v *validator.Validator, input requestUpdateProfile) {
	if input.TransportType != nil {
		v.CheckField(input.TransportType.Valid(), "transportType", "must be one of: bicycle, motorcycle, car, scooter")
	}
	if input.CourierType != nil {
		v.CheckField(input.CourierType.Valid(), "courierType", "must be one of: SOLOPRENEUR, FLEET_COMPANY")
	}
	if input.FeePercent != nil {
		v.CheckField(isPercent(*input.FeePercent), "feePercent", "must be between 0 and 100")
	}
	if input.RentAmount != nil {
		validateNonNegative(v, "rentAmount", *input.RentAmount)
	}
	if input.RentFrequency != nil {
		v.CheckField(input.RentFrequency.Valid(), "rentFrequency", "must be one of: daily, weekly, monthly")
	}
	if input.DefaultFuelCostPerKm != nil {
		validateNonNegative(v, "defaultFuelCostPerKm", *input.DefaultFuelCostPerKm)
	}
	if input.DefaultDepreciationRatePerKm != nil {
		validateNonNegative(v, "defaultDepreciationRatePerKm", *input.DefaultDepreciationRatePerKm)
	}
}

func validateNonNegative(v *validator.Validator, field string, value decimal.Decimal) {
	v.CheckField(!value.IsNegative(), field, "must not be negative")
}

func isPercent(value decimal.Decimal) bool {
	return !value.IsNegative() && value.LessThanOrEqual(decimal.NewFromInt(100))
}
