package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/profitrider/backend/internal/ctxstore"
	"github.com/profitrider/backend/internal/model"
	"github.com/profitrider/backend/internal/response"
	"github.com/rs/cors"

	"github.com/tomasen/realip"
)

const (
	_traceIDKey = ctxstore.Key("traceId")
	_userIDKey  = ctxstore.Key("userId")
)

func (app *application) traceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tid := genTraceID()
		ctx := ctxstore.With(r.Context(), _traceIDKey, tid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			err := recover()
			if err != nil {
				app.serverError(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *application) logAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mw := response.NewMetricsResponseWriter(w)
		next.ServeHTTP(mw, r)

		var (
			ip     = realip.FromRequest(r)
			method = r.Method
			url    = r.URL.String()
			proto  = r.Proto
			tid    = ctxstore.MustFrom[string](r.Context(), _traceIDKey)
		)

		userAttrs := slog.Group("user", "ip", ip)
		requestAttrs := slog.Group("request", "method", method, "url", url, "proto", proto, _traceIDKey.String(), tid)
		responseAttrs := slog.Group("response", "status", mw.StatusCode, "size", mw.BytesCount)

		app.serverLogger().Info("access", userAttrs, requestAttrs, responseAttrs)
	})
}

func (app *application) CORS(next http.Handler) http.Handler {
	return cors.AllowAll().Handler(next)
}

// authenticate requires a bearer token and stores the caller's user id in
// the request context.
func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		authorizationHeader := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(authorizationHeader, "Bearer ")
		if !found || token == "" {
			app.authenticationRequired(w, r)
			return
		}

		userID, err := app.tokens.Verify(token)
		if err != nil {
			app.authenticationRequired(w, r)
			return
		}

		ctx := ctxstore.With(r.Context(), _userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *application) requestLogger(r *http.Request) *slog.Logger {
	logger := app.logger
	if tid, ok := ctxstore.From[string](r.Context(), _traceIDKey); ok {
		logger = logger.With(_traceIDKey.String(), tid)
	}
	return logger
}

func contextUserID(r *http.Request) model.ID {
	return ctxstore.MustFrom[model.ID](r.Context(), _userIDKey)
}

func genTraceID() string {
	id, _ := uuid.NewRandom()
	return id.String()
}
