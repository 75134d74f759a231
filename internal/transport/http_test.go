package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/avvvet/wabuddy-mcp/internal/config"
	"github.com/avvvet/wabuddy-mcp/internal/dedup"
	"github.com/avvvet/wabuddy-mcp/internal/handlers"
	"github.com/avvvet/wabuddy-mcp/internal/models"
	"github.com/avvvet/wabuddy-mcp/internal/ratelimit"
)

type recordingStore struct {
	mu       sync.Mutex
	keys     map[string]bool
	reserves int
	pingErr  error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{keys: make(map[string]bool)}
}

func (s *recordingStore) Reserve(_ context.Context, messageID string) dedup.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reserves++
	if s.keys[messageID] {
		return dedup.Exists
	}
	s.keys[messageID] = true
	return dedup.Created
}

func (s *recordingStore) Ping(context.Context) error { return s.pingErr }
func (s *recordingStore) Close() error               { return nil }

type recordingCounter struct {
	mu    sync.Mutex
	incrs int
}

func (c *recordingCounter) Incr(context.Context, string, time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.incrs++
	return int64(c.incrs), nil
}

func testRouter(store *recordingStore, counter *recordingCounter, rateMax int) *gin.Engine {
	cfg := &config.Config{
		APIKey:     "secret",
		ModelName:  "gemini-flash",
		RateWindow: 15 * time.Minute,
		RateMax:    rateMax,
	}
	return NewRouter(cfg, Deps{
		Log:       zerolog.Nop(),
		Health:    handlers.NewHealthHandler(cfg.ModelName, store),
		Normalize: handlers.NewNormalizeHandler(store, zerolog.Nop()),
		Intent:    handlers.NewIntentHandler(nil, zerolog.Nop()),
		RateStore: counter,
	})
}

func do(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUnauthorizedRequestHasNoSideEffects(t *testing.T) {
	store := newRecordingStore()
	counter := &recordingCounter{}
	r := testRouter(store, counter, 100)

	w := do(r, http.MethodPost, "/normalize_event", "wrong", `{"message_id":"m1"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Zero(t, store.reserves, "no dedup key may be written")
	require.Zero(t, counter.incrs, "no rate counter may be incremented")
}

func TestHealth(t *testing.T) {
	r := testRouter(newRecordingStore(), &recordingCounter{}, 100)

	w := do(r, http.MethodGet, "/health", "secret", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"ok":true,"model":"gemini-flash"}`, w.Body.String())

	require.Equal(t, http.StatusUnauthorized,
		do(r, http.MethodGet, "/health", "", "").Code)
}

func TestReadyReflectsStoreHealth(t *testing.T) {
	store := newRecordingStore()
	r := testRouter(store, &recordingCounter{}, 100)

	require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ready", "secret", "").Code)

	store.pingErr = context.DeadlineExceeded
	require.Equal(t, http.StatusServiceUnavailable, do(r, http.MethodGet, "/ready", "secret", "").Code)
}

func TestNormalizeEventFlow(t *testing.T) {
	r := testRouter(newRecordingStore(), &recordingCounter{}, 100)

	w := do(r, http.MethodPost, "/normalize_event", "secret", `{"message_id":"m1","phone":"+1555","client_id":"c1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var first models.NormalizeResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	require.False(t, first.Duplicate)
	require.Equal(t, "m1", first.MessageID)
	require.Equal(t, "+1555", first.Phone)
	require.Equal(t, "c1", first.ClientID)

	w = do(r, http.MethodPost, "/normalize_event", "secret", `{"message_id":"m1"}`)
	var second models.NormalizeResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	require.True(t, second.Duplicate)
}

func TestRateLimitAppliesOnlyToIntake(t *testing.T) {
	store := newRecordingStore()
	r := testRouter(store, &recordingCounter{}, 2)

	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/normalize_event", "secret", `{"message_id":"a"}`).Code)
	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/normalize_event", "secret", `{"message_id":"b"}`).Code)

	w := do(r, http.MethodPost, "/normalize_event", "secret", `{"message_id":"c"}`)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, 2, store.reserves, "rejected request must not reach the gate")

	// other endpoints are not limited
	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/ai_intent", "secret", `{"text":"hi"}`).Code)
	}
}

func TestRateLimitIgnoresForgedForwardedFor(t *testing.T) {
	cfg := &config.Config{
		APIKey:     "secret",
		ModelName:  "gemini-flash",
		RateWindow: 15 * time.Minute,
		RateMax:    1,
	}
	store := newRecordingStore()
	r := NewRouter(cfg, Deps{
		Log:       zerolog.Nop(),
		Health:    handlers.NewHealthHandler(cfg.ModelName, store),
		Normalize: handlers.NewNormalizeHandler(store, zerolog.Nop()),
		Intent:    handlers.NewIntentHandler(nil, zerolog.Nop()),
		RateStore: ratelimit.NewMemoryStore(),
	})

	// rotating X-Forwarded-For must not rotate the counter key; the
	// limiter sees the socket peer, which is constant here
	for i, forged := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		req := httptest.NewRequest(http.MethodPost, "/normalize_event", strings.NewReader(`{"message_id":"m"}`))
		req.Header.Set("Authorization", "Bearer secret")
		req.Header.Set("X-Forwarded-For", forged)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if i == 0 {
			require.Equal(t, http.StatusOK, w.Code)
		} else {
			require.Equal(t, http.StatusTooManyRequests, w.Code)
		}
	}
}

func TestStubs(t *testing.T) {
	r := testRouter(newRecordingStore(), &recordingCounter{}, 100)

	w := do(r, http.MethodPost, "/send_whatsapp", "secret", `{}`)
	require.Equal(t, http.StatusOK, w.Code)

	var sent struct {
		MessageID string `json:"message_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sent))
	require.True(t, strings.HasPrefix(sent.MessageID, "wamid."))
	require.Len(t, sent.MessageID, len("wamid.")+12)

	// ids are opaque and fresh per call
	w2 := do(r, http.MethodPost, "/send_whatsapp", "secret", `{}`)
	var sent2 struct {
		MessageID string `json:"message_id"`
	}
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &sent2))
	require.NotEqual(t, sent.MessageID, sent2.MessageID)

	w = do(r, http.MethodPost, "/schedule_followup", "secret", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"scheduled":true}`, w.Body.String())
}
