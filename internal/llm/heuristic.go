package llm

import (
	"strings"

	"github.com/avvvet/wabuddy-mcp/internal/models"
)

// Keyword tiers, checked in priority order. Matching is
// case-insensitive substring matching on the raw input.
var (
	paymentKeywords = []string{"price", "cost", "pay"}
	bookingKeywords = []string{"book", "meeting", "call"}
	inquiryKeywords = []string{"hi", "hello", "help"}

	// The assisted path deliberately checks a narrower booking tier.
	assistedBookingKeywords = []string{"book", "meeting"}
)

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// ClassifyIntent is the deterministic classifier used when no Gemini
// credential is configured. Same input always yields the same label.
func ClassifyIntent(text string) models.Intent {
	t := strings.ToLower(text)
	switch {
	case containsAny(t, paymentKeywords):
		return models.IntentPayment
	case containsAny(t, bookingKeywords):
		return models.IntentBooking
	case containsAny(t, inquiryKeywords):
		return models.IntentInquiry
	default:
		return models.IntentGeneric
	}
}

// ClassifyAssisted is the local heuristic applied alongside a Gemini
// call. The model's own classification is never parsed; keeping intent
// routing local limits the blast radius of a misbehaving remote.
func ClassifyAssisted(text string) models.Intent {
	t := strings.ToLower(text)
	switch {
	case containsAny(t, paymentKeywords):
		return models.IntentPayment
	case containsAny(t, assistedBookingKeywords):
		return models.IntentBooking
	default:
		return models.IntentInquiry
	}
}
