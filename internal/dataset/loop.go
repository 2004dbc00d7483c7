package dataset

import (
	"context"
	"time"

	"github.com/wecare-vn/invoice-api/internal/order"
)

// Defaults for the completion loop.
const (
	DefaultTarget      = 1000
	DefaultMaxAttempts = 5
	DefaultDelay       = 500 * time.Millisecond
	defaultResetGuard  = 1
)

// Pager is the paged source of one order's line records. Loaded returns the
// rows accumulated so far; LoadNext fetches one more page into the
// accumulation.
type Pager interface {
	Loaded() []order.Line
	HasNext() bool
	LoadNext(ctx context.Context) error
}

// Outcome classifies how a load session ended.
type Outcome int

const (
	// Complete means the loop stopped at a normal terminal condition:
	// enough records, no further page, or the attempt ceiling.
	Complete Outcome = iota
	// Partial means a page fetch failed and the loop kept what it had.
	Partial
	// Superseded means a newer session took over; the result is discarded.
	Superseded
)

func (o Outcome) String() string {
	switch o {
	case Complete:
		return "complete"
	case Partial:
		return "partial"
	case Superseded:
		return "superseded"
	default:
		return "unknown"
	}
}

// Config bounds one run of the completion loop.
type Config struct {
	// Target is the record count to force-load up to.
	Target int
	// MaxAttempts caps page fetches for the session.
	MaxAttempts int
	// Delay is the fixed pause before each page fetch.
	Delay time.Duration
	// ResetGuard: an accumulated count falling below this after having been
	// at or above it means a newer session reset the shared dataset.
	ResetGuard int
}

func (c Config) withDefaults() Config {
	if c.Target <= 0 {
		c.Target = DefaultTarget
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.Delay <= 0 {
		c.Delay = DefaultDelay
	}
	if c.ResetGuard <= 0 {
		c.ResetGuard = defaultResetGuard
	}
	return c
}

// Result carries what the loop accumulated and how it stopped.
type Result struct {
	Outcome  Outcome
	Lines    []order.Line
	Attempts int
	// Err is the fetch failure that ended a Partial session.
	Err error
}

// LoadAll drives the pager until the target count is reached, the source has
// no further page, or the attempt ceiling is hit. Cancellation is cooperative
// only: the token is consulted at loop entry, after every delay and after
// every fetch, never preemptively. A fetch failure is terminal but not fatal;
// whatever was accumulated is handed back for calculation.
func LoadAll(ctx context.Context, p Pager, tok Token, cfg Config) Result {
	cfg = cfg.withDefaults()
	if tok.Superseded() {
		return Result{Outcome: Superseded}
	}

	attempts := 0
	peak := len(p.Loaded())
	for len(p.Loaded()) < cfg.Target && p.HasNext() && attempts < cfg.MaxAttempts {
		attempts++
		if err := wait(ctx, cfg.Delay); err != nil {
			return Result{Outcome: Superseded, Attempts: attempts}
		}
		if tok.Superseded() {
			return Result{Outcome: Superseded, Attempts: attempts}
		}
		if err := p.LoadNext(ctx); err != nil {
			return Result{Outcome: Partial, Lines: p.Loaded(), Attempts: attempts, Err: err}
		}
		if tok.Superseded() {
			return Result{Outcome: Superseded, Attempts: attempts}
		}
		n := len(p.Loaded())
		if n < peak && n < cfg.ResetGuard {
			// the shared dataset shrank underneath us
			return Result{Outcome: Superseded, Attempts: attempts}
		}
		if n > peak {
			peak = n
		}
	}
	return Result{Outcome: Complete, Lines: p.Loaded(), Attempts: attempts}
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
