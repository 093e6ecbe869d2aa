package main

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/profitrider/backend/internal/database"
	"github.com/profitrider/backend/internal/model"
	"github.com/profitrider/backend/internal/request"
	"github.com/profitrider/backend/internal/response"
	"github.com/profitrider/backend/internal/validator"
)

func (app *application) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := contextUserID(r)

	dao := database.NewProfileDAO(app.requestLogger(r), app.db)

	profile, err := dao.GetByUser(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			app.errorMessage(w, r, http.StatusNotFound, err.Error(), nil)
			return
		}

		app.serverError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, responseProfile{Profile: profile}); err != nil {
		app.serverError(w, r, err)
	}
}

type responseProfile struct {
	Profile model.UserProfile `json:"profile"`
}

type requestUpdateProfile struct {
	CountryID     *model.ID            `json:"countryId"`
	TransportType *model.TransportType `json:"transportType"`
	CourierType   *model.CourierType   `json:"courierType"`
	FeePercent    *decimal.Decimal     `json:"feePercent"`

	RentAmount    *decimal.Decimal     `json:"rentAmount"`
	RentFrequency *model.RentFrequency `json:"rentFrequency"`

	DefaultFuelCostPerKm         *decimal.Decimal     `json:"defaultFuelCostPerKm"`
	DefaultDepreciationRatePerKm *decimal.Decimal     `json:"defaultDepreciationRatePerKm"`
	DefaultStartTime             *model.NullClockTime `json:"defaultStartTime"`
	DefaultEndTime               *model.NullClockTime `json:"defaultEndTime"`
}

// handleUpdateProfile patches the caller's profile. Derived session fields
// are not touched here: they are recomputed from the updated profile the
// next time each session is saved.
func (app *application) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := contextUserID(r)

	var input requestUpdateProfile
	if err := request.DecodeJSON(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	var v validator.Validator
	validateRequestUpdateProfile(&v, input)
	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	dao := database.NewProfileDAO(app.requestLogger(r), app.db)

	// countryId: 0 clears the country (and with it the tax rate).
	country := input.CountryID
	countryUnset := false
	if country != nil && *country == 0 {
		country = nil
		countryUnset = true
	}

	dto := database.UpdateProfileDTO{
		Country:                      country,
		CountryUnset:                 countryUnset,
		TransportType:                input.TransportType,
		CourierType:                  input.CourierType,
		FeePercent:                   input.FeePercent,
		RentAmount:                   input.RentAmount,
		RentFrequency:                input.RentFrequency,
		DefaultFuelCostPerKm:         input.DefaultFuelCostPerKm,
		DefaultDepreciationRatePerKm: input.DefaultDepreciationRatePerKm,
		DefaultStartTime:             input.DefaultStartTime,
		DefaultEndTime:               input.DefaultEndTime,
	}

	if err := dao.Update(ctx, user, dto); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			app.errorMessage(w, r, http.StatusNotFound, err.Error(), nil)
			return
		}

		app.serverError(w, r, err)
		return
	}

	profile, err := dao.GetByUser(ctx, user)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, responseProfile{Profile: profile}); err != nil {
		app.serverError(w, r, err)
	}
}

const _creditsTotal = 300

func (app *application) handleBillingConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := contextUserID(r)

	dao := database.NewProfileDAO(app.requestLogger(r), app.db)

	profile, err := dao.GetByUser(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			app.errorMessage(w, r, http.StatusNotFound, err.Error(), nil)
			return
		}

		app.serverError(w, r, err)
		return
	}

	plan := "starter"
	planDisplay := "Starter (Free)"
	subscriptionStatus := "none"
	if profile.IsPro {
		plan = "pro"
		planDisplay = "Pro"
		subscriptionStatus = "active"
	}

	err = response.JSON(w, http.StatusOK, response.JSONObject{
		"plan":               plan,
		"planDisplay":        planDisplay,
		"creditsRemaining":   profile.Credits,
		"creditsTotal":       _creditsTotal,
		"isPro":              profile.IsPro,
		"subscriptionStatus": subscriptionStatus,
	})
	if err != nil {
		app.serverError(w, r, err)
	}
}
