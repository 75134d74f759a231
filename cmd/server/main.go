package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/avvvet/wabuddy-mcp/internal/config"
	"github.com/avvvet/wabuddy-mcp/internal/dedup"
	"github.com/avvvet/wabuddy-mcp/internal/handlers"
	"github.com/avvvet/wabuddy-mcp/internal/llm"
	"github.com/avvvet/wabuddy-mcp/internal/logging"
	"github.com/avvvet/wabuddy-mcp/internal/ratelimit"
	"github.com/avvvet/wabuddy-mcp/internal/transport"
)

func main() {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.Init(cfg.ServiceName)

	log.Info().
		Str("model", cfg.ModelName).
		Str("port", cfg.Port).
		Bool("dedup", cfg.RedisURL != "").
		Bool("assisted", cfg.GeminiAPIKey != "").
		Msg("starting")

	// Dedup store. Absence of REDIS_URL disables dedup; an unreachable
	// server at boot is only warned about because the gate fails open
	// and the client reconnects on its own.
	var store dedup.Store
	if cfg.RedisURL != "" {
		redisStore, err := dedup.NewRedisStore(cfg.RedisURL, cfg.DedupTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		defer redisStore.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisStore.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Msg("redis unreachable at boot, intake will fail open until it recovers")
		}
		cancel()
		store = redisStore
	} else {
		log.Warn().Msg("REDIS_URL not set, dedup disabled")
	}

	// Rate counter store for the intake endpoint.
	var rateStore ratelimit.CounterStore = ratelimit.NewMemoryStore()
	if cfg.RateStore == config.RateStoreRedis && cfg.RedisURL != "" {
		redisCounter, err := ratelimit.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid REDIS_URL for rate store")
		}
		defer redisCounter.Close()
		rateStore = redisCounter
	}

	// Classifier mode is fixed here: presence of the Gemini credential
	// selects assisted mode.
	var provider llm.Provider
	if cfg.GeminiAPIKey != "" {
		geminiProvider, err := llm.NewGeminiProvider(context.Background(), cfg.GeminiAPIKey, cfg.ModelName, cfg.GeminiTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Gemini provider")
		}
		provider = geminiProvider
	}

	normalizeHandler := handlers.NewNormalizeHandler(store, log)
	intentHandler := handlers.NewIntentHandler(provider, log)
	healthHandler := handlers.NewHealthHandler(cfg.ModelName, store)

	router := transport.NewRouter(cfg, transport.Deps{
		Log:       log,
		Health:    healthHandler,
		Normalize: normalizeHandler,
		Intent:    intentHandler,
		RateStore: rateStore,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Optional NATS ingress feeding the same pipeline.
	var ingress *transport.NATSIngress
	if cfg.NatsURL != "" {
		var err error
		ingress, err = transport.NewNATSIngress(cfg, normalizeHandler, intentHandler, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to NATS")
		}
		if err := ingress.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to start NATS ingress")
		}
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown error")
	}
	if ingress != nil {
		if err := ingress.Close(); err != nil {
			log.Warn().Err(err).Msg("nats ingress close error")
		}
	}

	log.Info().Msg("stopped")
}
