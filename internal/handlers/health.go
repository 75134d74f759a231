package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avvvet/wabuddy-mcp/internal/dedup"
)

// HealthHandler serves liveness and readiness.
type HealthHandler struct {
	model string
	store dedup.Store // nil when dedup is disabled
}

func NewHealthHandler(model string, store dedup.Store) *HealthHandler {
	return &HealthHandler{
		model: model,
		store: store,
	}
}

// Health is GET /health: confirms the process is up and echoes the
// configured model name.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "model": h.model})
}

// Ready is GET /ready: confirms the dedup store is reachable when one
// is configured. With dedup disabled the service is trivially ready.
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if err := h.store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
