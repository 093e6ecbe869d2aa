package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/profitrider/backend/internal/database"
	"github.com/profitrider/backend/internal/model"
	"github.com/profitrider/backend/internal/request"
	"github.com/profitrider/backend/internal/response"
	"github.com/profitrider/backend/internal/validator"
)

func (app *application) handleStatus(w http.ResponseWriter, r *http.Request) {
	if err := response.JSON(w, http.StatusOK, response.JSONObject{"status": "OK"}); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleListCountries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dao := database.NewRefDataDAO(app.requestLogger(r), app.db)

	countries, err := dao.FindCountries(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, response.JSONObject{"countries": countries}); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleListPlatforms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dao := database.NewRefDataDAO(app.requestLogger(r), app.db)

	platforms, err := dao.FindPlatforms(ctx, database.FindPlatformsFilter{
		Country: optionalIDQueryParams(r, "country"),
	})
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, response.JSONObject{"platforms": platforms}); err != nil {
		app.serverError(w, r, err)
	}
}

type requestCreatePlatform struct {
	Name           string          `json:"name"`
	BaseFeePercent decimal.Decimal `json:"baseFeePercentage"`
	CountryID      model.ID        `json:"countryId"`
}

func (app *application) handleCreatePlatform(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input requestCreatePlatform
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	var v validator.Validator
	v.CheckField(validator.NotBlank(input.Name), "name", "cannot be blank")
	v.CheckField(validator.MaxRunes(input.Name, 100), "name", "too long")
	v.CheckField(isPercent(input.BaseFeePercent), "baseFeePercentage", "must be between 0 and 100")
	v.CheckField(input.CountryID > 0, "countryId", "must be set")

	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	dao := database.NewRefDataDAO(app.requestLogger(r), app.db)

	id, err := dao.InsertPlatform(ctx, database.InsertPlatformDTO{
		Name:           strings.TrimSpace(input.Name),
		BaseFeePercent: input.BaseFeePercent,
		Country:        input.CountryID,
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			app.errorMessage(w, r, http.StatusUnprocessableEntity, err.Error(), nil)
			return
		}

		app.serverError(w, r, err)
		return
	}

	err = response.JSON(w, http.StatusCreated, response.JSONObject{"id": id})
	if err != nil {
		app.serverError(w, r, err)
	}
}

type requestJoinWaitlist struct {
	Email  string `json:"email"`
	Source string `json:"source"`
}

func (app *application) handleJoinWaitlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input requestJoinWaitlist
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Source == "" {
		input.Source = "subscription_page"
	}

	var v validator.Validator
	v.CheckField(validator.IsEmail(input.Email), "email", "must be a valid email address")
	v.CheckField(validator.MaxRunes(input.Source, 50), "source", "too long")

	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	dao := database.NewWaitlistDAO(app.requestLogger(r), app.db)

	if _, err := dao.Insert(ctx, input.Email, input.Source); err != nil {
		if errors.Is(err, model.ErrExists) {
			app.errorMessage(w, r, http.StatusConflict, "this email is already on the waitlist", nil)
			return
		}

		app.serverError(w, r, err)
		return
	}

	err := response.JSON(w, http.StatusCreated, response.JSONObject{
		"message": "Successfully added to waitlist",
	})
	if err != nil {
		app.serverError(w, r, err)
	}
}
