package transport

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/avvvet/wabuddy-mcp/internal/config"
	"github.com/avvvet/wabuddy-mcp/internal/handlers"
	"github.com/avvvet/wabuddy-mcp/internal/models"
)

// ingressResult is the reply published for request/reply ingress
// messages. Intent fields are omitted for duplicates, which are not
// classified.
type ingressResult struct {
	Duplicate bool          `json:"duplicate"`
	MessageID string        `json:"message_id"`
	Intent    models.Intent `json:"intent,omitempty"`
	ReplyText string        `json:"reply_text,omitempty"`
}

// NATSIngress is an optional second intake path: inbound events arrive
// on a subject instead of the HTTP endpoint and run through the same
// dedup gate and classifier. Broker auth replaces the bearer check on
// this path.
type NATSIngress struct {
	conn      *nats.Conn
	sub       *nats.Subscription
	subject   string
	normalize *handlers.NormalizeHandler
	intent    *handlers.IntentHandler
	log       zerolog.Logger
}

func NewNATSIngress(cfg *config.Config, normalize *handlers.NormalizeHandler, intent *handlers.IntentHandler, log zerolog.Logger) (*NATSIngress, error) {
	conn, err := nats.Connect(cfg.NatsURL,
		nats.Name(cfg.ServiceName),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, err
	}

	return &NATSIngress{
		conn:      conn,
		subject:   cfg.NatsSubject,
		normalize: normalize,
		intent:    intent,
		log:       log,
	}, nil
}

// Start subscribes to the configured subject.
func (n *NATSIngress) Start() error {
	sub, err := n.conn.Subscribe(n.subject, n.handleEvent)
	if err != nil {
		return err
	}
	n.sub = sub
	n.log.Info().Str("subject", n.subject).Msg("nats ingress subscribed")
	return nil
}

func (n *NATSIngress) handleEvent(msg *nats.Msg) {
	// Same tolerant decoding as the HTTP boundary: a broken payload
	// becomes the zero-value event.
	var event models.InboundEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		n.log.Warn().Err(err).Msg("invalid ingress payload, treating as empty event")
		event = models.InboundEvent{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	gate := n.normalize.Gate(ctx, event)
	out := ingressResult{
		Duplicate: gate.Duplicate,
		MessageID: gate.MessageID,
	}
	if !gate.Duplicate {
		res := n.intent.Classify(ctx, event.Text)
		out.Intent = res.Intent
		out.ReplyText = res.ReplyText
	}

	if msg.Reply == "" {
		return
	}
	data, err := json.Marshal(out)
	if err != nil {
		n.log.Error().Err(err).Msg("failed to marshal ingress reply")
		return
	}
	if err := msg.Respond(data); err != nil {
		n.log.Warn().Err(err).Msg("failed to send ingress reply")
	}
}

// Close drains the subscription and closes the connection.
func (n *NATSIngress) Close() error {
	if n.sub != nil {
		if err := n.sub.Unsubscribe(); err != nil {
			n.log.Warn().Err(err).Msg("failed to unsubscribe ingress")
		}
	}
	if n.conn != nil {
		n.conn.Close()
	}
	return nil
}
