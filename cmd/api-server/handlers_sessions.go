package main

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/profitrider/backend/internal/database"
	"github.com/profitrider/backend/internal/export"
	"github.com/profitrider/backend/internal/model"
	"github.com/profitrider/backend/internal/request"
	"github.com/profitrider/backend/internal/response"
	"github.com/profitrider/backend/internal/validator"
)

const (
	_defaultPageSize = 20
	_maxPageSize     = 100
)

type requestSessionInput struct {
	Date       string          `json:"date"`
	StartTime  model.ClockTime `json:"startTime"`
	EndTime    model.ClockTime `json:"endTime"`
	PlatformID *model.ID       `json:"platformId"`

	TotalOrders     int             `json:"totalOrders"`
	TotalDistanceKm decimal.Decimal `json:"totalDistanceKm"`

	GrossEarnings    decimal.Decimal `json:"grossEarnings"`
	Tips             decimal.Decimal `json:"tips"`
	FuelCost         decimal.Decimal `json:"fuelCost"`
	DepreciationCost decimal.Decimal `json:"depreciationCost"`
	OtherExpenses    decimal.Decimal `json:"otherExpenses"`
	PlatformFees     decimal.Decimal `json:"platformFees"`
}

func (input requestSessionInput) toSession(user model.ID) (model.WorkSession, error) {
	date, err := time.Parse(time.DateOnly, input.Date)
	if err != nil {
		return model.WorkSession{}, err
	}

	return model.WorkSession{
		User:             user,
		Platform:         input.PlatformID,
		Date:             date,
		StartTime:        input.StartTime,
		EndTime:          input.EndTime,
		TotalOrders:      input.TotalOrders,
		TotalDistanceKm:  input.TotalDistanceKm,
		GrossEarnings:    input.GrossEarnings,
		Tips:             input.Tips,
		FuelCost:         input.FuelCost,
		DepreciationCost: input.DepreciationCost,
		OtherExpenses:    input.OtherExpenses,
		PlatformFees:     input.PlatformFees,
	}, nil
}

type responseSession struct {
	Session model.WorkSession `json:"session"`
}

func (app *application) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := contextUserID(r)

	page := defaultIntQueryParams(r, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := defaultIntQueryParams(r, "page_size", _defaultPageSize)
	if pageSize < 1 || pageSize > _maxPageSize {
		pageSize = _defaultPageSize
	}

	dao := database.NewSessionDAO(app.requestLogger(r), app.db)

	sessions, err := dao.Find(ctx, user, database.FindOptions{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	total, err := dao.CountByUser(ctx, user)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	err = response.JSON(w, http.StatusOK, response.JSONObject{
		"sessions":   sessions,
		"page":       page,
		"pageSize":   pageSize,
		"totalCount": total,
	})
	if err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := contextUserID(r)

	var input requestSessionInput
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	var v validator.Validator
	validateSessionInput(&v, input)
	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	session, err := input.toSession(user)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	dao := database.NewSessionDAO(app.requestLogger(r), app.db)

	if err := dao.Create(ctx, &session); err != nil {
		switch {
		case errors.Is(err, model.ErrCreditsExhausted):
			app.errorMessage(w, r, http.StatusPaymentRequired,
				"you have used all your free credits, upgrade to continue tracking", nil)
		case errors.Is(err, model.ErrNotFound):
			app.errorMessage(w, r, http.StatusUnprocessableEntity, err.Error(), nil)
		default:
			app.serverError(w, r, err)
		}
		return
	}

	if err := response.JSON(w, http.StatusCreated, responseSession{Session: session}); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleGetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := contextUserID(r)

	id, err := sessionIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	dao := database.NewSessionDAO(app.requestLogger(r), app.db)

	session, err := dao.Get(ctx, id, user)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			app.errorMessage(w, r, http.StatusNotFound, err.Error(), nil)
			return
		}

		app.serverError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, responseSession{Session: session}); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := contextUserID(r)

	id, err := sessionIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	var input requestSessionInput
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	var v validator.Validator
	validateSessionInput(&v, input)
	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	session, err := input.toSession(user)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}
	session.ID = id

	dao := database.NewSessionDAO(app.requestLogger(r), app.db)

	if err := dao.Update(ctx, &session); err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			app.errorMessage(w, r, http.StatusNotFound, err.Error(), nil)
		default:
			app.serverError(w, r, err)
		}
		return
	}

	session, err = dao.Get(ctx, id, user)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, responseSession{Session: session}); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := contextUserID(r)

	id, err := sessionIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	dao := database.NewSessionDAO(app.requestLogger(r), app.db)

	if err := dao.Delete(ctx, id, user); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			app.errorMessage(w, r, http.StatusNotFound, err.Error(), nil)
			return
		}

		app.serverError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) handleExportSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := contextUserID(r)

	window := app.reportWindow(r)

	dao := database.NewSessionDAO(app.requestLogger(r), app.db)

	sessions, err := dao.FindInWindow(ctx, user, window)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.SessionsXLSX(&buf, sessions); err != nil {
		app.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="sessions.xlsx"`)
	if _, err := buf.WriteTo(w); err != nil {
		app.reportServerError(r, err)
	}
}
