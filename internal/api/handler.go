// Package api implements the wizard REST API consumed by the browser UI.
// One wizard session lives per process; every handler serialises access to it.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/genaidss/genaidss/internal/export"
	"github.com/genaidss/genaidss/internal/session"
	"github.com/genaidss/genaidss/pkg/scoring"
	"github.com/genaidss/genaidss/pkg/wizard"
)

// Handler is the top-level API handler.
type Handler struct {
	mu       sync.Mutex
	sess     *session.Session
	exporter *export.Service

	defaultDepartment string
	logger            *zap.Logger
}

// HandlerOptions carries the optional collaborators of a Handler.
type HandlerOptions struct {
	// Exporter publishes results; POST /api/export returns 503 without one.
	Exporter *export.Service
	// DefaultDepartment is advertised to the UI for preselection.
	DefaultDepartment string
	Logger            *zap.Logger
}

// NewHandler creates a new API handler around a session.
func NewHandler(sess *session.Session, opts HandlerOptions) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		sess:              sess,
		exporter:          opts.Exporter,
		defaultDepartment: opts.DefaultDepartment,
		logger:            logger,
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeErr maps a domain error to its HTTP status.
func writeErr(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, wizard.ErrInvalidRating),
		errors.Is(err, wizard.ErrInvalidWeight),
		errors.Is(err, wizard.ErrUnknownStep),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, wizard.ErrUnknownOption),
		errors.Is(err, wizard.ErrUnknownIndicator),
		errors.Is(err, wizard.ErrUnknownDepartment):
		return http.StatusNotFound
	case errors.Is(err, wizard.ErrInvalidTransition),
		errors.Is(err, session.ErrWeightsInvalid),
		errors.Is(err, session.ErrNotReady):
		return http.StatusConflict
	case errors.Is(err, scoring.ErrEmptyCatalog),
		errors.Is(err, scoring.ErrEmptyOptions):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

var errBadRequest = errors.New("bad request")

// decode reads a JSON body into v.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}
