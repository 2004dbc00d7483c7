package repo

import (
	"context"

	"github.com/wecare-vn/invoice-api/internal/order"
)

// DefaultPageSize bounds one line-item page fetch.
const DefaultPageSize = 200

// LineLister is the slice of the store the pager needs.
type LineLister interface {
	ListLines(ctx context.Context, orderID string, limit, offset int) ([]order.Line, error)
}

// LinePager accumulates an order's line items page by page. It satisfies the
// dataset.Pager contract: a short page marks the source exhausted.
type LinePager struct {
	Lister   LineLister
	OrderID  string
	PageSize int

	lines     []order.Line
	exhausted bool
}

// Loaded returns the rows accumulated so far.
func (p *LinePager) Loaded() []order.Line { return p.lines }

// HasNext reports whether the source may have another page.
func (p *LinePager) HasNext() bool { return !p.exhausted }

// LoadNext fetches one more page into the accumulation.
func (p *LinePager) LoadNext(ctx context.Context) error {
	size := p.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	rows, err := p.Lister.ListLines(ctx, p.OrderID, size, len(p.lines))
	if err != nil {
		return err
	}
	p.lines = append(p.lines, rows...)
	if len(rows) < size {
		p.exhausted = true
	}
	return nil
}
