package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter builds the API router. allowedOrigin feeds the CORS header.
func NewRouter(h *Handler, allowedOrigin string, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(CORS(allowedOrigin))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", h.Catalog)
		r.Get("/indicators/{id}/attributes", h.IndicatorAttributes)

		r.Get("/state", h.State)
		r.Post("/advance", h.Advance)
		r.Post("/restart", h.Restart)

		r.Put("/weights", h.SetWeights)
		r.Patch("/weights/{indicatorID}", h.SetWeight)
		r.Post("/weights/reset", h.ResetWeights)
		r.Post("/department", h.SelectDepartment)
		r.Get("/validation", h.Validation)

		r.Put("/ratings/{optionID}/{indicatorID}", h.SetRating)
		r.Post("/options/{optionID}/reset", h.ResetOption)
		r.Get("/preview", h.Preview)

		r.Get("/results", h.Results)
		r.Get("/results.csv", h.ResultsCSV)
		r.Post("/export", h.Export)
	})

	return r
}

// NewMetricsRouter serves Prometheus metrics and a health probe.
func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
