package invoice

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/wecare-vn/invoice-api/internal/dataset"
	"github.com/wecare-vn/invoice-api/internal/obs"
	"github.com/wecare-vn/invoice-api/internal/order"
	"github.com/wecare-vn/invoice-api/internal/repo"
)

// Status classifies the outcome of an invoice build.
type Status string

const (
	// StatusOK means the order's line items loaded completely.
	StatusOK Status = "ok"
	// StatusNoData means the order does not exist; nothing to render.
	StatusNoData Status = "no_data"
	// StatusPartial means a page fetch failed mid-load; the view covers the
	// rows accumulated before the failure.
	StatusPartial Status = "partial"
	// StatusSuperseded means a newer build for the same order took over.
	StatusSuperseded Status = "superseded"
)

// Result pairs a build status with the computed view, when there is one.
type Result struct {
	Status   Status
	View     *View
	Attempts int
}

// Store is the subset of the order store the service needs.
type Store interface {
	GetHeader(ctx context.Context, id string) (order.Header, error)
	CountLines(ctx context.Context, orderID string) (int, error)
	ListLines(ctx context.Context, orderID string, limit, offset int) ([]order.Line, error)
}

// Service builds invoice views for stored sale orders. One Service owns the
// session registry: a build starting for an order supersedes any build still
// loading the same order.
type Service struct {
	Store    Store
	Cache    *Cache
	Sessions *dataset.Sessions
	Log      zerolog.Logger

	// Loading limits; zero values fall back to the dataset defaults.
	MaxLines    int
	PageSize    int
	MaxAttempts int
	Delay       time.Duration
	ResetGuard  int

	initOnce sync.Once
}

// Build returns the invoice view for an order, serving the cache when the
// order already completed a load at the current ceiling.
func (s *Service) Build(ctx context.Context, orderID string) (Result, error) {
	if s.Cache != nil && s.sessions().Completed(orderID, s.maxLines()) {
		view, ok, err := s.Cache.Get(ctx, orderID)
		if err != nil {
			s.Log.Warn().Err(err).Str("order_id", orderID).Msg("invoice cache read")
		}
		countCache(ok)
		if ok {
			return Result{Status: StatusOK, View: view}, nil
		}
	}
	return s.Rebuild(ctx, orderID)
}

// Rebuild computes the view from the store, bypassing the cache, and
// refreshes the cached copy on a complete load.
func (s *Service) Rebuild(ctx context.Context, orderID string) (Result, error) {
	header, err := s.Store.GetHeader(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		countBuild(StatusNoData)
		return Result{Status: StatusNoData}, nil
	}
	if err != nil {
		return Result{}, err
	}

	total, err := s.Store.CountLines(ctx, orderID)
	if err != nil {
		return Result{}, err
	}
	if total == 0 {
		view := Compose(header, nil)
		s.sessions().MarkComplete(orderID, s.maxLines())
		countBuild(StatusOK)
		return Result{Status: StatusOK, View: view}, nil
	}

	tok := s.sessions().Begin(orderID)
	if obs.LoadSessionsStarted != nil {
		obs.LoadSessionsStarted.Inc()
	}

	pager := &repo.LinePager{Lister: s.Store, OrderID: orderID, PageSize: s.PageSize}
	res := dataset.LoadAll(ctx, pager, tok, dataset.Config{
		Target:      s.maxLines(),
		MaxAttempts: s.MaxAttempts,
		Delay:       s.Delay,
		ResetGuard:  s.ResetGuard,
	})
	if obs.LoadPagesFetched != nil {
		obs.LoadPagesFetched.Add(float64(res.Attempts))
	}

	switch res.Outcome {
	case dataset.Superseded:
		if obs.LoadSessionsSuperseded != nil {
			obs.LoadSessionsSuperseded.Inc()
		}
		countBuild(StatusSuperseded)
		return Result{Status: StatusSuperseded, Attempts: res.Attempts}, nil
	case dataset.Partial:
		s.Log.Warn().Err(res.Err).Str("order_id", orderID).
			Int("loaded", len(res.Lines)).Msg("line load ended early, rendering partial data")
		countBuild(StatusPartial)
		return Result{
			Status:   StatusPartial,
			View:     Compose(header, res.Lines),
			Attempts: res.Attempts,
		}, nil
	}

	view := Compose(header, res.Lines)
	s.sessions().MarkComplete(orderID, s.maxLines())
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, orderID, view); err != nil {
			s.Log.Warn().Err(err).Str("order_id", orderID).Msg("invoice cache write")
		}
	}
	countBuild(StatusOK)
	return Result{Status: StatusOK, View: view, Attempts: res.Attempts}, nil
}

// Preview computes a view directly from pushed host records without touching
// the store or the cache.
func (s *Service) Preview(header order.HeaderRecord, lines []order.LineRecord) *View {
	return Compose(header.Header(), order.Lines(lines))
}

func (s *Service) sessions() *dataset.Sessions {
	s.initOnce.Do(func() {
		if s.Sessions == nil {
			s.Sessions = dataset.NewSessions()
		}
	})
	return s.Sessions
}

func (s *Service) maxLines() int {
	if s.MaxLines <= 0 {
		return dataset.DefaultTarget
	}
	return s.MaxLines
}

func countBuild(status Status) {
	if obs.InvoiceBuildTotal != nil {
		obs.InvoiceBuildTotal.WithLabelValues(string(status)).Inc()
	}
}

func countCache(hit bool) {
	if obs.InvoiceCacheTotal == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	obs.InvoiceCacheTotal.WithLabelValues(result).Inc()
}
