package transport

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/avvvet/wabuddy-mcp/internal/auth"
	"github.com/avvvet/wabuddy-mcp/internal/config"
	"github.com/avvvet/wabuddy-mcp/internal/handlers"
	"github.com/avvvet/wabuddy-mcp/internal/logging"
	"github.com/avvvet/wabuddy-mcp/internal/metrics"
	"github.com/avvvet/wabuddy-mcp/internal/ratelimit"
)

// Deps carries the wired handlers into the router.
type Deps struct {
	Log       zerolog.Logger
	Health    *handlers.HealthHandler
	Normalize *handlers.NormalizeHandler
	Intent    *handlers.IntentHandler
	RateStore ratelimit.CounterStore
}

// NewRouter wires middleware and routes. Every route sits behind bearer
// auth; only the intake endpoint is rate limited, so a rejected request
// never writes a dedup marker.
func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	// No trusted proxies: ClientIP must come from the socket peer, or a
	// caller could rotate X-Forwarded-For to escape the per-IP limit.
	_ = r.SetTrustedProxies(nil)
	r.Use(gin.Recovery())
	r.Use(logging.Middleware(deps.Log))
	r.Use(auth.BearerMiddleware(cfg.APIKey))

	r.GET("/health", deps.Health.Health)
	r.GET("/ready", deps.Health.Ready)
	r.GET("/metrics", metrics.Handler())

	r.POST("/normalize_event",
		ratelimit.Middleware(deps.RateStore, cfg.RateWindow, cfg.RateMax, deps.Log),
		deps.Normalize.Handle,
	)
	r.POST("/ai_intent", deps.Intent.Handle)
	r.POST("/send_whatsapp", handlers.SendWhatsApp)
	r.POST("/schedule_followup", handlers.ScheduleFollowup)

	return r
}
