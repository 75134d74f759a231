package models

// InboundEvent is the raw webhook payload from the messaging channel.
// Every field is optional; missing fields default to empty strings at
// the boundary and no normalization is applied.
type InboundEvent struct {
	MessageID string `json:"message_id"`
	Phone     string `json:"phone"`
	Text      string `json:"text"`
	ClientID  string `json:"client_id"`
}

// NormalizeResult echoes the event fields back with the dedup verdict.
type NormalizeResult struct {
	Duplicate bool   `json:"duplicate"`
	MessageID string `json:"message_id"`
	Phone     string `json:"phone"`
	ClientID  string `json:"client_id"`
}

// Intent is the classification label for a piece of free text.
type Intent string

const (
	IntentInquiry  Intent = "INQUIRY"
	IntentPayment  Intent = "PAYMENT"
	IntentBooking  Intent = "BOOKING"
	IntentFeedback Intent = "FEEDBACK"
	IntentGeneric  Intent = "GENERIC"
)

// Action is a follow-up step attached to an intent result. No actions
// are emitted today; the slice is an extension point kept in the wire
// format so downstream consumers can rely on its presence.
type Action struct {
	Type   string            `json:"type"`
	Params map[string]string `json:"params,omitempty"`
}

// IntentResult is the classifier output. Actions is always non-nil so
// the JSON field serializes as an array, never null.
type IntentResult struct {
	Intent    Intent   `json:"intent"`
	ReplyText string   `json:"reply_text"`
	Actions   []Action `json:"actions"`
}
