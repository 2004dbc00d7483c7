// Package health exposes liveness and readiness probes for the invoice API.
package health

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/wecare-vn/invoice-api/internal/common"
)

var ready atomic.Bool

func init() { ready.Store(true) }

// SetReady flips the readiness gate. Shutdown clears it first so the load
// balancer drains traffic before connections close.
func SetReady(v bool) { ready.Store(v) }

// Probe checks one dependency within the caller's deadline.
type Probe func(ctx context.Context) error

// Handler serves the health endpoints. Probes are named so the readiness
// payload tells which dependency is down.
type Handler struct {
	Probes  map[string]Probe
	Timeout time.Duration
}

// Live reports process liveness.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready probes every dependency and reports per-dependency status.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !ready.Load() {
		common.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "shutting down"})
		return
	}

	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}

	status := make(map[string]string, len(h.Probes))
	healthy := true
	for name, probe := range h.Probes {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		err := probe(ctx)
		cancel()
		if err != nil {
			status[name] = err.Error()
			healthy = false
			continue
		}
		status[name] = "ok"
	}

	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	common.JSON(w, code, status)
}
