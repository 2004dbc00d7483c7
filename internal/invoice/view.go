// Package invoice builds display-ready invoice documents for sale orders:
// it force-loads an order's line items through the dataset completion loop,
// runs the pricing calculator, and formats the figures for print.
package invoice

import (
	"github.com/wecare-vn/invoice-api/internal/order"
	"github.com/wecare-vn/invoice-api/internal/pricing"
	"github.com/wecare-vn/invoice-api/internal/terms"
	"github.com/wecare-vn/invoice-api/internal/vnd"
)

// LineView is one computed invoice row, every figure already formatted.
type LineView struct {
	Position               int    `json:"position"`
	Product                string `json:"product"`
	VATRate                string `json:"vat_rate"`
	Discount1              string `json:"discount1"`
	Discount2              string `json:"discount2"`
	Unit                   string `json:"unit"`
	Quantity               string `json:"quantity"`
	UnitPrice              string `json:"unit_price"`
	UnitPriceAfterDiscount string `json:"unit_price_after_discount"`
	Subtotal               string `json:"subtotal"`
	DeliveryDate           string `json:"delivery_date,omitempty"`
}

// View is a fully computed invoice document. Markup rendering and print
// triggering belong to the caller.
type View struct {
	OrderID          string     `json:"order_id,omitempty"`
	Name             string     `json:"name"`
	TradeName        string     `json:"trade_name,omitempty"`
	Customer         string     `json:"customer"`
	Address          string     `json:"address,omitempty"`
	Phone            string     `json:"phone,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	OrderedOn        string     `json:"ordered_on,omitempty"`
	Lines            []LineView `json:"lines"`
	Subtotal         string     `json:"subtotal"`
	OrderDiscount    string     `json:"order_discount"`
	VAT              string     `json:"vat"`
	GrandTotal       string     `json:"grand_total"`
	PaymentTerm      string     `json:"payment_term,omitempty"`
	BankTransferInfo string     `json:"bank_transfer_info,omitempty"`
}

// Compose computes and formats the invoice for a header and its lines. It is
// pure; both the stored and the pushed data paths go through it.
func Compose(h order.Header, lines []order.Line) *View {
	lineViews := make([]LineView, 0, len(lines))
	totals := make([]pricing.LineTotals, 0, len(lines))

	for i, l := range lines {
		in := l.PricingInput()
		lt := pricing.ComputeLine(in)
		totals = append(totals, lt)

		lv := LineView{
			Position:               i + 1,
			Product:                l.Product,
			VATRate:                vnd.Rate(pricing.VATRate(l.VATCode)),
			Discount2:              vnd.Percent(l.Discount2),
			Unit:                   l.UnitOrDefault(),
			Quantity:               vnd.Number(l.Quantity),
			UnitPrice:              vnd.Currency(l.UnitPrice),
			UnitPriceAfterDiscount: vnd.Currency(lt.UnitPriceAfterDiscount),
			Subtotal:               vnd.Currency(lt.Subtotal),
		}
		if in.Discount1Absolute {
			lv.Discount1 = vnd.Currency(in.Discount1)
		} else {
			lv.Discount1 = vnd.Percent(l.Discount1)
		}
		if l.DeliveryDate != nil {
			lv.DeliveryDate = vnd.Date(*l.DeliveryDate)
		}
		lineViews = append(lineViews, lv)
	}

	ot := pricing.ComputeOrder(h.VATApplicable(), totals)

	view := &View{
		OrderID:          h.ID,
		Name:             h.Name,
		TradeName:        h.TradeName,
		Customer:         h.Customer,
		Address:          h.Address,
		Phone:            h.Phone,
		Notes:            h.Notes,
		Lines:            lineViews,
		Subtotal:         vnd.Currency(ot.Subtotal),
		OrderDiscount:    vnd.Currency(ot.OrderDiscount),
		VAT:              vnd.Currency(ot.VATTotal),
		GrandTotal:       vnd.Currency(ot.GrandTotal),
		PaymentTerm:      terms.PaymentTerm(h.PaymentTermCode),
		BankTransferInfo: terms.BankTransferInfo(h.Region),
	}
	if !h.CreatedOn.IsZero() {
		view.OrderedOn = vnd.Date(h.CreatedOn)
	}
	return view
}
