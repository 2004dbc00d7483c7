// Package repo provides read access to sale orders and their line items in
// Postgres. Line items are served page-wise so the invoice loader can bound
// how much it pulls per attempt.
package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wecare-vn/invoice-api/internal/order"
)

// ErrNotFound is returned when a sale order does not exist.
var ErrNotFound = errors.New("repo: order not found")

// Store wraps the connection pool with order queries.
type Store struct {
	Pool *pgxpool.Pool
}

const headerColumns = `id, name, trade_name, customer_name, vat_status_code,
payment_term_code, region, address, phone, notes, created_on`

// GetHeader fetches one sale order's top-level fields.
func (s *Store) GetHeader(ctx context.Context, id string) (order.Header, error) {
	row := s.Pool.QueryRow(ctx,
		`SELECT `+headerColumns+` FROM sale_orders WHERE id = $1`, id)
	h, err := scanHeader(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return order.Header{}, ErrNotFound
	}
	return h, err
}

// ListHeaders returns sale orders ordered by creation time, newest first,
// along with the total row count for pagination. The total rides on the page
// query itself so it cannot drift from the page under concurrent writes.
func (s *Store) ListHeaders(ctx context.Context, limit, offset int) ([]order.Header, int64, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT `+headerColumns+`, count(*) OVER () FROM sale_orders
		 ORDER BY created_on DESC, id
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var headers []order.Header
	var total int64
	for rows.Next() {
		var h order.Header
		if err := rows.Scan(&h.ID, &h.Name, &h.TradeName, &h.Customer, &h.VATStatusCode,
			&h.PaymentTermCode, &h.Region, &h.Address, &h.Phone, &h.Notes, &h.CreatedOn,
			&total); err != nil {
			return nil, 0, err
		}
		headers = append(headers, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(headers) == 0 {
		// a page past the end carries no window total
		if err := s.Pool.QueryRow(ctx, `SELECT count(*) FROM sale_orders`).Scan(&total); err != nil {
			return nil, 0, err
		}
	}
	return headers, total, nil
}

// CountLines reports how many line items an order has in total.
func (s *Store) CountLines(ctx context.Context, orderID string) (int, error) {
	var n int
	err := s.Pool.QueryRow(ctx,
		`SELECT count(*) FROM sale_order_lines WHERE order_id = $1`, orderID).Scan(&n)
	return n, err
}

// ListLines returns one page of an order's line items in print order.
func (s *Store) ListLines(ctx context.Context, orderID string, limit, offset int) ([]order.Line, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT product_name, quantity, unit_price, discount1, discount2,
		        discount_amount, vat_code, unit, delivery_date
		 FROM sale_order_lines
		 WHERE order_id = $1
		 ORDER BY position, id
		 LIMIT $2 OFFSET $3`, orderID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []order.Line
	for rows.Next() {
		var l order.Line
		if err := rows.Scan(&l.Product, &l.Quantity, &l.UnitPrice, &l.Discount1,
			&l.Discount2, &l.DiscountAmount, &l.VATCode, &l.Unit, &l.DeliveryDate); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func scanHeader(row pgx.Row) (order.Header, error) {
	var h order.Header
	err := row.Scan(&h.ID, &h.Name, &h.TradeName, &h.Customer, &h.VATStatusCode,
		&h.PaymentTermCode, &h.Region, &h.Address, &h.Phone, &h.Notes, &h.CreatedOn)
	return h, err
}
