package pricing

import (
	"math"
	"testing"
)

func TestComputeLinePercentageDiscounts(t *testing.T) {
	got := ComputeLine(LineInput{
		Quantity:  10,
		UnitPrice: 150_000,
		Discount1: 0.05,
		Discount2: 0,
		VATCode:   VATCodeTen,
	})
	if got.UnitPriceAfterDiscount != 142_500 {
		t.Fatalf("expected unit price 142500, got %v", got.UnitPriceAfterDiscount)
	}
	if got.Subtotal != 1_425_000 {
		t.Fatalf("expected subtotal 1425000, got %v", got.Subtotal)
	}
	if got.VAT != 142_500 {
		t.Fatalf("expected vat 142500, got %v", got.VAT)
	}
}

func TestComputeLineStacksDiscountsInOrder(t *testing.T) {
	cases := []struct {
		name string
		in   LineInput
	}{
		{"both fractions", LineInput{Quantity: 3, UnitPrice: 75_000, Discount1: 0.1, Discount2: 0.02}},
		{"only second", LineInput{Quantity: 20, UnitPrice: 1_234, Discount2: 0.15}},
		{"full first discount", LineInput{Quantity: 5, UnitPrice: 9_000, Discount1: 1, Discount2: 0.5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeLine(tc.in)
			want := tc.in.Quantity * tc.in.UnitPrice * (1 - tc.in.Discount1) * (1 - tc.in.Discount2)
			if math.Abs(got.Subtotal-want) > 1e-9 {
				t.Fatalf("expected subtotal %v, got %v", want, got.Subtotal)
			}
		})
	}
}

func TestComputeLineAbsoluteFirstDiscount(t *testing.T) {
	got := ComputeLine(LineInput{
		Quantity:          4,
		UnitPrice:         200_000,
		Discount1:         25_000,
		Discount1Absolute: true,
		Discount2:         0.1,
		VATCode:           VATCodeZero,
	})
	// (200000-25000) * 0.9 = 157500 per unit
	if got.UnitPriceAfterDiscount != 157_500 {
		t.Fatalf("expected unit price 157500, got %v", got.UnitPriceAfterDiscount)
	}
	if got.Subtotal != 630_000 {
		t.Fatalf("expected subtotal 630000, got %v", got.Subtotal)
	}
	if got.VAT != 0 {
		t.Fatalf("expected zero vat, got %v", got.VAT)
	}
}

func TestVATRateUnknownCodeDefaultsToTenPercent(t *testing.T) {
	if rate := VATRate(999); rate != DefaultVATRate {
		t.Fatalf("expected default rate for unknown code, got %v", rate)
	}
	if rate := VATRate(0); rate != DefaultVATRate {
		t.Fatalf("expected default rate for absent code, got %v", rate)
	}
	if rate := VATRate(VATCodeEight); rate != 0.08 {
		t.Fatalf("expected 8%% rate, got %v", rate)
	}
}

func TestComputeOrderSumsLines(t *testing.T) {
	lines := []LineTotals{
		{Subtotal: 1_425_000, VAT: 142_500},
		{Subtotal: 250_000, VAT: 0},
	}
	got := ComputeOrder(true, lines)
	if got.Subtotal != 1_675_000 {
		t.Fatalf("expected subtotal 1675000, got %v", got.Subtotal)
	}
	if got.VATTotal != 142_500 {
		t.Fatalf("expected vat total 142500, got %v", got.VATTotal)
	}
	if got.GrandTotal != 1_817_500 {
		t.Fatalf("expected grand total 1817500, got %v", got.GrandTotal)
	}
	if got.OrderDiscount != 0 {
		t.Fatalf("expected zero order discount, got %v", got.OrderDiscount)
	}
}

func TestComputeOrderDropsVATWhenNotApplicable(t *testing.T) {
	lines := []LineTotals{
		{Subtotal: 100_000, VAT: 10_000},
		{Subtotal: 50_000, VAT: 4_000},
	}
	got := ComputeOrder(false, lines)
	if got.VATTotal != 0 {
		t.Fatalf("expected vat suppressed, got %v", got.VATTotal)
	}
	if got.GrandTotal != got.Subtotal {
		t.Fatalf("expected grand total to equal subtotal, got %v vs %v", got.GrandTotal, got.Subtotal)
	}
}

func TestComputeOrderIsPure(t *testing.T) {
	lines := []LineTotals{{Subtotal: 123.45, VAT: 12.345}}
	first := ComputeOrder(true, lines)
	second := ComputeOrder(true, lines)
	if first != second {
		t.Fatalf("expected identical outputs, got %v and %v", first, second)
	}
}

func TestParseAmountNeverFails(t *testing.T) {
	cases := map[string]float64{
		"":        0,
		"abc":     0,
		"1,500":   0,
		"0.05":    0.05,
		" 150000": 150_000,
		"-3.5":    -3.5,
	}
	for raw, want := range cases {
		if got := ParseAmount(raw); got != want {
			t.Fatalf("ParseAmount(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestParseCode(t *testing.T) {
	if got := ParseCode("191920003"); got != VATCodeTen {
		t.Fatalf("expected vat code ten, got %d", got)
	}
	if got := ParseCode("garbage"); got != 0 {
		t.Fatalf("expected zero for garbage input, got %d", got)
	}
}
