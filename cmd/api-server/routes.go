package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (app *application) routes() http.Handler {
	mux := chi.NewRouter()

	mux.NotFound(app.notFound)
	mux.MethodNotAllowed(app.methodNotAllowed)

	mux.Use(app.traceID)
	mux.Use(app.logAccess)
	mux.Use(app.recoverPanic)

	mux.Use(app.CORS)

	mux.Get("/api/v1/status", app.handleStatus)

	mux.Post("/api/v1/auth/register", app.handleRegister)
	mux.Post("/api/v1/auth/login", app.handleLogin)

	mux.Get("/api/v1/countries", app.handleListCountries)
	mux.Get("/api/v1/platforms", app.handleListPlatforms)

	mux.Post("/api/v1/waitlist", app.handleJoinWaitlist)

	mux.Group(func(mux chi.Router) {
		mux.Use(app.authenticate)

		mux.Get("/api/v1/profile", app.handleGetProfile)
		mux.Put("/api/v1/profile", app.handleUpdateProfile)
		mux.Get("/api/v1/me/billing", app.handleBillingConfig)

		mux.Post("/api/v1/platforms", app.handleCreatePlatform)

		mux.Get("/api/v1/sessions", app.handleListSessions)
		mux.Post("/api/v1/sessions", app.handleCreateSession)
		mux.Get("/api/v1/sessions/export", app.handleExportSessions)
		mux.Get("/api/v1/sessions/{sessionId}", app.handleGetSession)
		mux.Put("/api/v1/sessions/{sessionId}", app.handleUpdateSession)
		mux.Delete("/api/v1/sessions/{sessionId}", app.handleDeleteSession)

		mux.Get("/api/v1/dashboard", app.handleDashboard)
	})

	app.logger.Debug("routes configured", "routes", chiRoutesToStrings(mux.Routes()))

	return mux
}

func chiRoutesToStrings(routes []chi.Route) []string {
	parsedRoutes := make([]string, 0, len(routes))
	for _, route := range routes {
		parsedRoutes = append(parsedRoutes, route.Pattern)
	}
	return parsedRoutes
}
