package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "genaidss_transitions_total",
		Help: "Wizard step transitions by outcome.",
	}, []string{"from", "to", "outcome"})

	scoringRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "genaidss_scoring_runs_total",
		Help: "Rankings computed on entering the results step.",
	})

	ratingUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "genaidss_rating_updates_total",
		Help: "Option rating updates by outcome.",
	}, []string{"outcome"})

	exportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "genaidss_exports_total",
		Help: "Result exports by outcome.",
	}, []string{"outcome"})
)

// outcome labels a request result for the counters.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	switch statusFor(err) {
	case 400, 404:
		return "rejected"
	case 409:
		return "blocked"
	default:
		return "error"
	}
}
