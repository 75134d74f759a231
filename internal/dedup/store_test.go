package dedup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOutcomeString(t *testing.T) {
	require.Equal(t, "created", Created.String())
	require.Equal(t, "exists", Exists.String())
	require.Equal(t, "unavailable", Unavailable.String())
	require.Equal(t, "unknown", Outcome(42).String())
}

func TestNewRedisStoreRejectsBadURL(t *testing.T) {
	_, err := NewRedisStore("://not-a-url", 600*time.Second)
	require.Error(t, err)
}

func TestNewRedisStorePropagatesTTL(t *testing.T) {
	// The TTL handed to the constructor is what Reserve passes to
	// SET NX; the 600s expiry window must survive the wiring.
	store, err := NewRedisStore("redis://127.0.0.1:1/0", 600*time.Second)
	require.NoError(t, err)
	defer store.Close()

	require.Equal(t, 600*time.Second, store.ttl)
	require.Equal(t, "wa:m1", store.dedupKey("m1"))
}

func TestNewRedisStoreDoesNotDialAtConstruction(t *testing.T) {
	// The server may be down at boot; the gate fails open until it
	// recovers, so construction must succeed regardless.
	store, err := NewRedisStore("redis://127.0.0.1:1/0", 600*time.Second)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}
