package repo

import (
	"context"
	"fmt"
	"testing"

	"github.com/wecare-vn/invoice-api/internal/order"
)

type stubLister struct {
	total   int
	queries []int
}

func (s *stubLister) ListLines(_ context.Context, _ string, limit, offset int) ([]order.Line, error) {
	s.queries = append(s.queries, offset)
	if offset >= s.total {
		return nil, nil
	}
	end := offset + limit
	if end > s.total {
		end = s.total
	}
	lines := make([]order.Line, 0, end-offset)
	for i := offset; i < end; i++ {
		lines = append(lines, order.Line{Product: fmt.Sprintf("p%d", i)})
	}
	return lines, nil
}

func TestLinePagerAccumulatesPages(t *testing.T) {
	lister := &stubLister{total: 7}
	pager := &LinePager{Lister: lister, OrderID: "o1", PageSize: 3}

	ctx := context.Background()
	for pager.HasNext() {
		if err := pager.LoadNext(ctx); err != nil {
			t.Fatalf("load next: %v", err)
		}
	}

	if got := len(pager.Loaded()); got != 7 {
		t.Fatalf("expected 7 rows, got %d", got)
	}
	if len(lister.queries) != 3 {
		t.Fatalf("expected 3 page queries, got %d", len(lister.queries))
	}
	if pager.HasNext() {
		t.Fatal("short page must mark the source exhausted")
	}
}

func TestLinePagerEmptySource(t *testing.T) {
	pager := &LinePager{Lister: &stubLister{total: 0}, OrderID: "o1", PageSize: 3}
	if err := pager.LoadNext(context.Background()); err != nil {
		t.Fatalf("load next: %v", err)
	}
	if pager.HasNext() {
		t.Fatal("expected exhausted source")
	}
	if len(pager.Loaded()) != 0 {
		t.Fatal("expected no rows")
	}
}
