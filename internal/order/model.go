// Package order holds the sale-order data model materialised from the
// upstream data-binding layer. Headers and lines are read-only snapshots for
// the duration of one invoice build; nothing in this service mutates them.
package order

import (
	"time"

	"github.com/wecare-vn/invoice-api/internal/pricing"
)

// DefaultUnit labels lines whose unit-of-measure field is absent.
const DefaultUnit = "Cái"

// Header carries one sale order's top-level fields.
type Header struct {
	ID              string
	Name            string
	TradeName       string
	Customer        string
	VATStatusCode   int
	PaymentTermCode int
	Region          string
	Address         string
	Phone           string
	Notes           string
	CreatedOn       time.Time
}

// VATApplicable reports whether the order carries VAT.
func (h Header) VATApplicable() bool {
	return h.VATStatusCode == pricing.HeaderVATApplicable
}

// Line is one product entry within an order. Discount1 and Discount2 are
// fractions; DiscountAmount is an absolute currency discount that takes the
// place of Discount1 when the fraction is absent or zero.
type Line struct {
	Product        string
	Quantity       float64
	UnitPrice      float64
	Discount1      float64
	Discount2      float64
	DiscountAmount float64
	VATCode        int
	Unit           string
	DeliveryDate   *time.Time
}

// UnitOrDefault returns the unit-of-measure text, falling back to the generic
// unit label.
func (l Line) UnitOrDefault() string {
	if l.Unit == "" {
		return DefaultUnit
	}
	return l.Unit
}

// PricingInput maps the line onto the calculator's input, selecting the
// absolute discount only when the fractional one is absent.
func (l Line) PricingInput() pricing.LineInput {
	in := pricing.LineInput{
		Quantity:  l.Quantity,
		UnitPrice: l.UnitPrice,
		Discount1: l.Discount1,
		Discount2: l.Discount2,
		VATCode:   l.VATCode,
	}
	if l.Discount1 == 0 && l.DiscountAmount != 0 {
		in.Discount1 = l.DiscountAmount
		in.Discount1Absolute = true
	}
	return in
}
