package order

import (
	"strings"
	"time"

	"github.com/wecare-vn/invoice-api/internal/pricing"
)

// HeaderRecord mirrors the header fields the data-binding layer pushes to the
// preview endpoint. Numeric fields arrive as display text and coerce through
// the never-fails parsing helpers.
type HeaderRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	TradeName   string `json:"trade_name"`
	Customer    string `json:"customer" validate:"required"`
	VATStatus   string `json:"vat_status"`
	PaymentTerm string `json:"payment_term"`
	Region      string `json:"region"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Notes       string `json:"notes"`
	CreatedOn   string `json:"created_on"`
}

// Header materialises the record into the typed model.
func (r HeaderRecord) Header() Header {
	h := Header{
		ID:              r.ID,
		Name:            r.Name,
		TradeName:       r.TradeName,
		Customer:        r.Customer,
		VATStatusCode:   pricing.ParseCode(r.VATStatus),
		PaymentTermCode: pricing.ParseCode(r.PaymentTerm),
		Region:          strings.TrimSpace(r.Region),
		Address:         r.Address,
		Phone:           r.Phone,
		Notes:           r.Notes,
	}
	if ts, ok := parseTimestamp(r.CreatedOn); ok {
		h.CreatedOn = ts
	}
	return h
}

// LineRecord mirrors one line-item record from the data-binding layer.
type LineRecord struct {
	Product        string `json:"product" validate:"required"`
	Quantity       string `json:"quantity"`
	UnitPrice      string `json:"unit_price"`
	Discount1      string `json:"discount1"`
	Discount2      string `json:"discount2"`
	DiscountAmount string `json:"discount_amount"`
	VATCode        string `json:"vat_code"`
	Unit           string `json:"unit"`
	DeliveryDate   string `json:"delivery_date"`
}

// Line materialises the record into the typed model.
func (r LineRecord) Line() Line {
	l := Line{
		Product:        r.Product,
		Quantity:       pricing.ParseAmount(r.Quantity),
		UnitPrice:      pricing.ParseAmount(r.UnitPrice),
		Discount1:      pricing.ParseAmount(r.Discount1),
		Discount2:      pricing.ParseAmount(r.Discount2),
		DiscountAmount: pricing.ParseAmount(r.DiscountAmount),
		VATCode:        pricing.ParseCode(r.VATCode),
		Unit:           strings.TrimSpace(r.Unit),
	}
	if ts, ok := parseTimestamp(r.DeliveryDate); ok {
		l.DeliveryDate = &ts
	}
	return l
}

// Lines materialises a batch of line records.
func Lines(records []LineRecord) []Line {
	out := make([]Line, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Line())
	}
	return out
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
