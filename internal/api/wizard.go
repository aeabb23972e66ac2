package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/genaidss/genaidss/internal/session"
	"github.com/genaidss/genaidss/pkg/catalog"
	"github.com/genaidss/genaidss/pkg/scoring"
	"github.com/genaidss/genaidss/pkg/wizard"
)

type stateResponse struct {
	SessionID string `json:"session_id"`
	wizard.Snapshot
	Validation scoring.ValidationResult `json:"validation"`
	Unrated    []string                 `json:"unrated,omitempty"`
	Changes    []catalog.WeightChange   `json:"weight_changes,omitempty"`
	Guards     session.Options          `json:"guards"`
}

// state builds the response body. Callers hold h.mu.
func (h *Handler) state() stateResponse {
	return stateResponse{
		SessionID:  h.sess.ID(),
		Snapshot:   h.sess.Snapshot(),
		Validation: h.sess.Validation(),
		Unrated:    h.sess.Unrated(),
		Changes:    h.sess.WeightChanges(),
		Guards:     h.sess.GuardOptions(),
	}
}

// State handles GET /api/state.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	writeJSON(w, http.StatusOK, h.state())
}

// Advance handles POST /api/advance with body {"to": "<step>"}.
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		To string `json:"to"`
	}
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	to, err := wizard.ParseStep(req.To)
	if err != nil {
		writeErr(w, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.advance(w, to)
}

// Restart handles POST /api/restart.
func (h *Handler) Restart(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.advance(w, wizard.StepLanding)
}

func (h *Handler) advance(w http.ResponseWriter, to wizard.Step) {
	from := h.sess.Step()
	err := h.sess.Advance(to)
	transitionsTotal.WithLabelValues(string(from), string(to), outcome(err)).Inc()
	if err != nil {
		writeErr(w, err)
		return
	}
	if to == wizard.StepResults {
		scoringRunsTotal.Inc()
	}
	writeJSON(w, http.StatusOK, h.state())
}

// SetWeights handles PUT /api/weights with a full or partial weight map.
func (h *Handler) SetWeights(w http.ResponseWriter, r *http.Request) {
	var weights catalog.Weights
	if err := decode(r, &weights); err != nil {
		writeErr(w, err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.respond(w, h.sess.SetWeights(weights))
}

// SetWeight handles PATCH /api/weights/{indicatorID} with body {"value": 0.2}.
func (h *Handler) SetWeight(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value *float64 `json:"value"`
	}
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, "value is required")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.respond(w, h.sess.SetWeight(chi.URLParam(r, "indicatorID"), *req.Value))
}

// ResetWeights handles POST /api/weights/reset.
func (h *Handler) ResetWeights(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sess.ResetWeights()
	writeJSON(w, http.StatusOK, h.state())
}

// SelectDepartment handles POST /api/department with body {"id": "hcd"}.
func (h *Handler) SelectDepartment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.respond(w, h.sess.SelectDepartment(req.ID))
}

// Validation handles GET /api/validation.
func (h *Handler) Validation(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	writeJSON(w, http.StatusOK, h.sess.Validation())
}

// SetRating handles PUT /api/ratings/{optionID}/{indicatorID} with body
// {"value": n}. A value of 0 clears the rating.
func (h *Handler) SetRating(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value *int `json:"value"`
	}
	if err := decode(r, &req); err != nil {
		ratingUpdatesTotal.WithLabelValues("rejected").Inc()
		writeErr(w, err)
		return
	}
	if req.Value == nil {
		ratingUpdatesTotal.WithLabelValues("rejected").Inc()
		writeError(w, http.StatusBadRequest, "value is required")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	err := h.sess.SetRating(chi.URLParam(r, "optionID"), chi.URLParam(r, "indicatorID"), *req.Value)
	ratingUpdatesTotal.WithLabelValues(outcome(err)).Inc()
	h.respond(w, err)
}

// ResetOption handles POST /api/options/{optionID}/reset.
func (h *Handler) ResetOption(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.respond(w, h.sess.ResetOption(chi.URLParam(r, "optionID")))
}

// Preview handles GET /api/preview.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	preview := h.sess.Preview()
	if preview == nil {
		preview = []scoring.PreviewScore{}
	}
	writeJSON(w, http.StatusOK, preview)
}

// respond writes the state after a mutation, or the mutation's error.
// Callers hold h.mu.
func (h *Handler) respond(w http.ResponseWriter, err error) {
	if err != nil {
		h.logger.Debug("request rejected", zap.Error(err))
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.state())
}
