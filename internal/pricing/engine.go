package pricing

import (
	"strconv"
	"strings"
)

// Option-set codes carried on order records for VAT handling.
const (
	VATCodeZero  = 191920000
	VATCodeFive  = 191920001
	VATCodeEight = 191920002
	VATCodeTen   = 191920003

	// HeaderVATApplicable is the header status code meaning the order carries VAT.
	HeaderVATApplicable = 191920000
)

// DefaultVATRate applies when a line carries no recognised VAT code.
const DefaultVATRate = 0.10

var vatRates = map[int]float64{
	VATCodeZero:  0,
	VATCodeFive:  0.05,
	VATCodeEight: 0.08,
	VATCodeTen:   0.10,
}

// VATRate resolves a line VAT code to its rate fraction. Unknown or absent
// codes fall back to the default rate.
func VATRate(code int) float64 {
	if rate, ok := vatRates[code]; ok {
		return rate
	}
	return DefaultVATRate
}

// LineInput describes one order line for calculation. Discount1 is a fraction
// in [0,1] unless Discount1Absolute is set, in which case it is a currency
// amount subtracted from the unit price. Discount2 is always a fraction and
// applies after the first discount.
type LineInput struct {
	Quantity          float64
	UnitPrice         float64
	Discount1         float64
	Discount1Absolute bool
	Discount2         float64
	VATCode           int
}

// LineTotals aggregates the computed figures for one line. Values are kept
// unrounded; rounding happens at display time only.
type LineTotals struct {
	UnitPriceAfterDiscount float64
	Subtotal               float64
	VAT                    float64
}

// ComputeLine applies the two sequential discounts and the line VAT rate.
// The order of operations matters: discount2 applies to the price remaining
// after discount1, and VAT applies to the post-discount subtotal.
func ComputeLine(in LineInput) LineTotals {
	discount1 := in.UnitPrice * in.Discount1
	if in.Discount1Absolute {
		discount1 = in.Discount1
	}
	afterFirst := in.UnitPrice - discount1
	afterSecond := afterFirst - afterFirst*in.Discount2
	subtotal := in.Quantity * afterSecond
	return LineTotals{
		UnitPriceAfterDiscount: afterSecond,
		Subtotal:               subtotal,
		VAT:                    subtotal * VATRate(in.VATCode),
	}
}

// OrderTotals aggregates line figures across one order.
type OrderTotals struct {
	Subtotal      float64
	OrderDiscount float64
	VATTotal      float64
	GrandTotal    float64
}

// ComputeOrder sums line subtotals and line VAT across the order. VAT is
// computed per line but discarded wholesale when the header says the order is
// not VAT applicable, regardless of the codes on individual lines.
func ComputeOrder(vatApplicable bool, lines []LineTotals) OrderTotals {
	var subtotal, vat float64
	for _, lt := range lines {
		subtotal += lt.Subtotal
		vat += lt.VAT
	}
	if !vatApplicable {
		vat = 0
	}
	// The order-level discount has never been wired to real data upstream;
	// it stays a zero placeholder until the sales team defines its source.
	const orderDiscount = 0.0
	return OrderTotals{
		Subtotal:      subtotal,
		OrderDiscount: orderDiscount,
		VATTotal:      vat,
		GrandTotal:    subtotal - orderDiscount + vat,
	}
}

// ParseAmount converts a raw numeric field from the data-binding layer to a
// float. It never fails: empty or malformed input yields zero.
func ParseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseCode converts a raw option-set code to an integer. Like ParseAmount it
// never fails; unparseable input yields zero.
func ParseCode(raw string) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return v
}
