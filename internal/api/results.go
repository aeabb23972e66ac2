package api

import (
	"bytes"
	"net/http"

	"go.uber.org/zap"

	"github.com/genaidss/genaidss/pkg/surface"
)

// Results handles GET /api/results. The cached ranking is returned when the
// wizard is on the results step; otherwise it is computed from current data.
func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	report, err := h.sess.Report()
	h.mu.Unlock()
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ResultsCSV handles GET /api/results.csv.
func (h *Handler) ResultsCSV(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	report, err := h.sess.Report()
	h.mu.Unlock()
	if err != nil {
		writeErr(w, err)
		return
	}

	var buf bytes.Buffer
	renderer := &surface.CSVRenderer{WithRatings: true, WithWeights: true}
	if err := renderer.Render(&buf, report); err != nil {
		writeErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="genaidss-results.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// Export handles POST /api/export.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	if h.exporter == nil {
		writeError(w, http.StatusServiceUnavailable, "export sink not configured")
		return
	}

	h.mu.Lock()
	id := h.sess.ID()
	report, err := h.sess.Report()
	h.mu.Unlock()
	if err != nil {
		exportsTotal.WithLabelValues("error").Inc()
		writeErr(w, err)
		return
	}

	receipt, err := h.exporter.Publish(r.Context(), id, report)
	if err != nil {
		exportsTotal.WithLabelValues("error").Inc()
		h.logger.Warn("export failed", zap.String("session", id), zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	exportsTotal.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusCreated, receipt)
}
