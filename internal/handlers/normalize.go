package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/avvvet/wabuddy-mcp/internal/dedup"
	"github.com/avvvet/wabuddy-mcp/internal/logging"
	"github.com/avvvet/wabuddy-mcp/internal/metrics"
	"github.com/avvvet/wabuddy-mcp/internal/models"
)

// NormalizeHandler is the intake gate. It classifies each inbound event
// as first-seen or duplicate and echoes the caller's fields unchanged.
type NormalizeHandler struct {
	store dedup.Store // nil disables dedup entirely
	log   zerolog.Logger
}

func NewNormalizeHandler(store dedup.Store, log zerolog.Logger) *NormalizeHandler {
	return &NormalizeHandler{
		store: store,
		log:   log,
	}
}

// Gate resolves the dedup verdict for one event. With no store, an
// empty message id, or an unreachable store it fails open: the event is
// reported as first-seen and no error surfaces to the caller. The race
// between concurrent first deliveries is resolved solely by the store's
// atomic reserve; there is no in-process coordination per message id.
func (h *NormalizeHandler) Gate(ctx context.Context, event models.InboundEvent) models.NormalizeResult {
	result := models.NormalizeResult{
		MessageID: event.MessageID,
		Phone:     event.Phone,
		ClientID:  event.ClientID,
	}

	if h.store == nil || event.MessageID == "" {
		metrics.IntakeEvents.WithLabelValues("skipped").Inc()
		return result
	}

	outcome := h.store.Reserve(ctx, event.MessageID)
	metrics.IntakeEvents.WithLabelValues(outcome.String()).Inc()

	switch outcome {
	case dedup.Exists:
		result.Duplicate = true
	case dedup.Unavailable:
		reqLog := logging.C(ctx, h.log)
		reqLog.Warn().Str("message_id", event.MessageID).Msg("dedup store unavailable, failing open")
	}
	return result
}

// Handle is POST /normalize_event. The body is decoded tolerantly:
// missing or malformed fields default to empty strings.
func (h *NormalizeHandler) Handle(c *gin.Context) {
	var event models.InboundEvent
	_ = c.ShouldBindJSON(&event)

	c.JSON(http.StatusOK, h.Gate(c.Request.Context(), event))
}
