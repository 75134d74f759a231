package transport

import (
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/avvvet/wabuddy-mcp/internal/handlers"
)

func testIngress(store *recordingStore) *NATSIngress {
	return &NATSIngress{
		subject:   "wabuddy.inbound",
		normalize: handlers.NewNormalizeHandler(store, zerolog.Nop()),
		intent:    handlers.NewIntentHandler(nil, zerolog.Nop()),
		log:       zerolog.Nop(),
	}
}

func TestIngressGatesEvents(t *testing.T) {
	store := newRecordingStore()
	ingress := testIngress(store)

	msg := &nats.Msg{Subject: "wabuddy.inbound", Data: []byte(`{"message_id":"m1","text":"hello"}`)}
	ingress.handleEvent(msg)
	require.True(t, store.keys["m1"])
	require.Equal(t, 1, store.reserves)

	// redelivery reserves again but observes the existing marker
	ingress.handleEvent(msg)
	require.Equal(t, 2, store.reserves)
}

func TestIngressToleratesBrokenPayload(t *testing.T) {
	store := newRecordingStore()
	ingress := testIngress(store)

	ingress.handleEvent(&nats.Msg{Subject: "wabuddy.inbound", Data: []byte("not json")})

	// a broken payload degrades to the empty event: no id, no reserve
	require.Zero(t, store.reserves)
}
