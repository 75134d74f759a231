// Package logging wires zerolog with request-scoped fields for the
// HTTP surface.
package logging

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Init builds the root logger. Level comes from LOG_LEVEL (default info).
func Init(service string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(os.Stdout).
		Level(parseLevel(os.Getenv("LOG_LEVEL"))).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

type requestIDKey struct{}

// WithRequestID annotates ctx with the request ID.
func WithRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, reqID)
}

// RequestIDFromContext returns the request ID carried by ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	s, _ := ctx.Value(requestIDKey{}).(string)
	return s
}

// C returns a child of log enriched with the request ID from ctx, so
// warnings emitted deep in a handler correlate with the access log.
func C(ctx context.Context, log zerolog.Logger) zerolog.Logger {
	if reqID := RequestIDFromContext(ctx); reqID != "" {
		return log.With().Str("request_id", reqID).Logger()
	}
	return log
}

// Middleware tags each request with a fresh request ID and emits one
// access-log line when the handler chain finishes.
func Middleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := uuid.NewString()
		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), reqID))
		c.Header("X-Request-ID", reqID)

		start := time.Now()
		c.Next()

		log.Info().
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("client_ip", c.ClientIP()).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
