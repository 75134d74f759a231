package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/avvvet/wabuddy-mcp/internal/llm"
	"github.com/avvvet/wabuddy-mcp/internal/logging"
	"github.com/avvvet/wabuddy-mcp/internal/metrics"
	"github.com/avvvet/wabuddy-mcp/internal/models"
	"github.com/avvvet/wabuddy-mcp/internal/prompts"
)

// IntentHandler classifies free text. The mode is fixed at startup: a
// nil provider selects heuristic-only classification.
type IntentHandler struct {
	provider llm.Provider
	log      zerolog.Logger
}

func NewIntentHandler(provider llm.Provider, log zerolog.Logger) *IntentHandler {
	return &IntentHandler{
		provider: provider,
		log:      log,
	}
}

// Classify never fails. In assisted mode the Gemini call is isolated:
// any error or empty output degrades to the canned reply, and the
// intent label is always computed locally from the original input.
func (h *IntentHandler) Classify(ctx context.Context, text string) models.IntentResult {
	if h.provider == nil {
		metrics.ClassifierRequests.WithLabelValues("heuristic").Inc()
		return models.IntentResult{
			Intent:    llm.ClassifyIntent(text),
			ReplyText: prompts.HeuristicReply,
			Actions:   []models.Action{},
		}
	}

	metrics.ClassifierRequests.WithLabelValues("assisted").Inc()

	reply, err := h.provider.Generate(ctx, prompts.BuildIntentPrompt(text))
	if err != nil || strings.TrimSpace(reply) == "" {
		if err != nil {
			reqLog := logging.C(ctx, h.log)
			reqLog.Warn().Err(err).Msg("gemini call failed, using fallback reply")
		}
		metrics.ClassifierFallbacks.Inc()
		reply = prompts.FallbackReply
	}

	return models.IntentResult{
		Intent:    llm.ClassifyAssisted(text),
		ReplyText: reply,
		Actions:   []models.Action{},
	}
}

// Handle is POST /ai_intent. A missing or malformed body classifies the
// empty string.
func (h *IntentHandler) Handle(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	_ = c.ShouldBindJSON(&req)

	c.JSON(http.StatusOK, h.Classify(c.Request.Context(), req.Text))
}
