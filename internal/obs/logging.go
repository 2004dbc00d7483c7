// Package obs carries the observability plumbing shared by the API and the
// worker: zerolog setup, request logging, Prometheus metrics and OpenTelemetry
// tracing for HTTP, Postgres and Redis.
package obs

import (
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// NewLogger builds the root zerolog logger. Format "console" is for local
// development; everything else emits JSON lines.
func NewLogger(format, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	var out io.Writer = os.Stdout
	if f := strings.ToLower(strings.TrimSpace(format)); f == "console" || f == "text" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).With().Timestamp().Logger()
}

// RequestLogger emits one structured log line per request, correlated with
// the request ID and the active trace. Requests slower than SlowThreshold
// log at warn so a stuck line-item load stands out.
type RequestLogger struct {
	Logger        zerolog.Logger
	SlowThreshold time.Duration
}

// Middleware implements the chi middleware shape.
func (l RequestLogger) Middleware(next http.Handler) http.Handler {
	slow := l.SlowThreshold
	if slow <= 0 {
		slow = 5 * time.Second
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		meter := newResponseMeter(w)
		start := time.Now()
		next.ServeHTTP(meter, r)
		elapsed := time.Since(start)

		route := RoutePatternFromContext(r.Context())
		if route == "" {
			route = r.URL.Path
		}

		evt := l.Logger.Info()
		if elapsed >= slow {
			evt = l.Logger.Warn()
		}
		evt = evt.
			Str("method", r.Method).
			Str("route", route).
			Str("path", r.URL.Path).
			Int("status", meter.Status()).
			Int64("duration_ms", elapsed.Milliseconds()).
			Int64("bytes", meter.BytesWritten()).
			Str("request_id", middleware.GetReqID(r.Context()))
		if spanCtx := trace.SpanContextFromContext(r.Context()); spanCtx.IsValid() {
			evt = evt.
				Str("trace_id", spanCtx.TraceID().String()).
				Str("span_id", spanCtx.SpanID().String())
		}
		if addr := strings.TrimSpace(r.RemoteAddr); addr != "" {
			evt = evt.Str("remote_addr", addr)
		}
		evt.Msg("http request")
	})
}
