package ratelimit

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/avvvet/wabuddy-mcp/internal/logging"
	"github.com/avvvet/wabuddy-mcp/internal/metrics"
)

// RejectMessage mirrors the wire format clients already depend on.
const RejectMessage = "Too many normalize_event requests, please try again later."

// Middleware enforces the per-IP window on the routes it is attached
// to. A counter-store error fails open: availability of intake must not
// depend on availability of the counter store.
func Middleware(store CounterStore, window time.Duration, max int, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := store.Incr(c.Request.Context(), c.ClientIP(), window)
		if err != nil {
			reqLog := logging.C(c.Request.Context(), log)
			reqLog.Warn().Err(err).Msg("rate counter unavailable, allowing request")
			c.Next()
			return
		}
		if count > int64(max) {
			metrics.RateLimited.Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": RejectMessage})
			return
		}
		c.Next()
	}
}
