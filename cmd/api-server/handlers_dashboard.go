package main

import (
	"net/http"
	"time"

	"github.com/profitrider/backend/internal/database"
	"github.com/profitrider/backend/internal/model"
	"github.com/profitrider/backend/internal/report"
	"github.com/profitrider/backend/internal/response"
)

const _recentSessionLimit = 5

type responseDashboard struct {
	report.Summary
	RecentSessions []model.WorkSession `json:"recentSessions"`
}

func (app *application) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := contextUserID(r)

	window := app.reportWindow(r)

	dao := database.NewSessionDAO(app.requestLogger(r), app.db)

	sessions, err := dao.FindInWindow(ctx, user, window)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	recent, err := dao.FindRecent(ctx, user, _recentSessionLimit)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	result := responseDashboard{
		Summary:        report.Build(sessions),
		RecentSessions: recent,
	}

	if err := response.JSON(w, http.StatusOK, result); err != nil {
		app.serverError(w, r, err)
	}
}

// reportWindow resolves the period selection for dashboard and export. An
// explicit from/to range wins over the period selector; the reference date
// comes from the client's local calendar via local_date, falling back to the
// server's current date when absent or malformed. An absent period means
// today; an unrecognized one selects everything.
func (app *application) reportWindow(r *http.Request) report.Window {
	if from, okFrom := dateQueryParams(r, "from"); okFrom {
		if to, okTo := dateQueryParams(r, "to"); okTo && !to.Before(from) {
			return report.RangeWindow(from, to)
		}
	}

	ref, ok := dateQueryParams(r, "local_date")
	if !ok {
		ref = time.Now()
	}

	periodParam := r.URL.Query().Get("period")
	if periodParam == "" {
		periodParam = string(report.PeriodToday)
	}

	return report.PeriodWindow(report.ParsePeriod(periodParam), ref)
}
