// Package respond writes JSON responses and maps ledger errors onto HTTP
// status codes.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
)

type errorResponse struct {
	Error      string           `json:"error"`
	Dependents map[string]int64 `json:"dependents,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Status maps an error onto the HTTP status its kind stands for.
func Status(err error) int {
	switch apperr.Kind(err) {
	case apperr.ErrValidation:
		return http.StatusBadRequest
	case apperr.ErrNotFound:
		return http.StatusNotFound
	case apperr.ErrInvalidState, apperr.ErrIntegrity:
		return http.StatusConflict
	case apperr.ErrPermission:
		return http.StatusForbidden
	}

	return http.StatusInternalServerError
}

// Error writes err as a JSON body. Unclassified errors are logged and
// replaced with a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)
	resp := errorResponse{Error: err.Error()}

	if status == http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)

		resp.Error = "internal error"
	}

	var integrity *apperr.IntegrityError
	if errors.As(err, &integrity) {
		resp.Dependents = integrity.Dependents
	}

	JSON(w, status, resp)
}

// Decode reads a JSON request body into v.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return apperr.Validation("invalid request body: %v", err)
	}

	return nil
}

// ID parses the named URL parameter as a uuid.
func ID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid %s", name)
	}

	return id, nil
}

// QueryID parses an optional uuid query parameter.
func QueryID(r *http.Request, name string) (*uuid.UUID, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return nil, apperr.Validation("invalid %s", name)
	}

	return &id, nil
}
