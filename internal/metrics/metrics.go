// Package metrics exposes the service's prometheus counters.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// IntakeEvents counts intake-gate outcomes. Results: created,
	// exists, unavailable, skipped (no store or empty message id).
	IntakeEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wabuddy_intake_events_total",
		Help: "Intake gate outcomes by result.",
	}, []string{"result"})

	// ClassifierRequests counts classification calls by mode.
	ClassifierRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wabuddy_classifier_requests_total",
		Help: "Intent classification calls by mode (heuristic or assisted).",
	}, []string{"mode"})

	// ClassifierFallbacks counts assisted-mode calls that degraded to
	// the canned reply.
	ClassifierFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wabuddy_classifier_fallbacks_total",
		Help: "Assisted classifications that fell back to the canned reply.",
	})

	// RateLimited counts intake requests rejected by the rate limiter.
	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wabuddy_rate_limited_total",
		Help: "Requests rejected with 429 on the intake endpoint.",
	})
)

// Handler adapts the prometheus scrape handler to gin.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
