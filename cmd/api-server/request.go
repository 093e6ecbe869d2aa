package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/profitrider/backend/internal/model"
)

func sessionIDFromRequest(r *http.Request) (model.ID, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "sessionId"))
	return model.ID(id), err
}

func defaultIntQueryParams(r *http.Request, key string, def int) int {
	val, ok := r.URL.Query().Get(key), r.URL.Query().Has(key)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return i
}

func optionalIDQueryParams(r *http.Request, key string) *model.ID {
	val, ok := r.URL.Query().Get(key), r.URL.Query().Has(key)
	if !ok {
		return nil
	}
	intVal, err := strconv.Atoi(val)
	if err != nil || intVal < 0 {
		return nil
	}
	ref := new(model.ID)
	*ref = model.ID(intVal)
	return ref
}

// dateQueryParams parses a YYYY-MM-DD query value. ok is false when the
// parameter is absent or malformed, so callers can fall back to the server's
// current date.
func dateQueryParams(r *http.Request, key string) (time.Time, bool) {
	val, has := r.URL.Query().Get(key), r.URL.Query().Has(key)
	if !has {
		return time.Time{}, false
	}
	t, err := time.Parse(time.DateOnly, val)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
