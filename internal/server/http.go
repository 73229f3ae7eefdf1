package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/at-ishikawa/flashrev/internal/item"
	"github.com/at-ishikawa/flashrev/internal/review"
	"github.com/at-ishikawa/flashrev/internal/scheduling"
)

const maxBodyBytes = 1 << 20

type ownerKey struct{}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func requireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner := r.Header.Get(OwnerHeader)
		if owner == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: OwnerHeader + " header is required"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ownerKey{}, owner)))
	})
}

func ownerFrom(r *http.Request) string {
	owner, _ := r.Context().Value(ownerKey{}).(string)
	return owner
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Default().Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("failed to write response", "error", err)
	}
}

// writeError maps domain errors to status codes: validation 400, missing 404, concurrent or state conflicts 409,
// archived items 422. Anything else is logged and reported as 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *scheduling.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Reason, Field: validationErr.Field})
	case errors.Is(err, item.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: item.ErrNotFound.Error()})
	case errors.Is(err, item.ErrVersionConflict), errors.Is(err, review.ErrNotArchived):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, scheduling.ErrItemArchived):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: scheduling.ErrItemArchived.Error()})
	case errors.Is(err, context.Canceled):
		// client went away
	default:
		slog.Default().Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
