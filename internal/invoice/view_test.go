package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wecare-vn/invoice-api/internal/order"
	"github.com/wecare-vn/invoice-api/internal/pricing"
)

func TestComposeFormatsLines(t *testing.T) {
	delivery := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	h := testHeader()
	h.CreatedOn = time.Date(2026, time.February, 27, 10, 30, 0, 0, time.UTC)

	view := Compose(h, []order.Line{
		{
			Product:      "Ống nhựa PVC",
			Quantity:     10,
			UnitPrice:    150000,
			Discount1:    0.05,
			VATCode:      pricing.VATCodeTen,
			DeliveryDate: &delivery,
		},
		{
			Product:        "Thép hộp 40x80",
			Quantity:       4,
			UnitPrice:      200000,
			DiscountAmount: 25000,
			Discount2:      0.1,
			VATCode:        pricing.VATCodeEight,
			Unit:           "Cây",
		},
	})

	require.Equal(t, "27/02/2026", view.OrderedOn)
	require.Equal(t, "Công nợ 30 ngày", view.PaymentTerm)
	require.Contains(t, view.BankTransferInfo, "58010001687927")

	first := view.Lines[0]
	require.Equal(t, 1, first.Position)
	require.Equal(t, "5.0%", first.Discount1)
	require.Equal(t, "Cái", first.Unit)
	require.Equal(t, "10%", first.VATRate)
	require.Equal(t, "142,500 đ", first.UnitPriceAfterDiscount)
	require.Equal(t, "1,425,000 đ", first.Subtotal)
	require.Equal(t, "09/03/2026", first.DeliveryDate)

	second := view.Lines[1]
	require.Equal(t, "25,000 đ", second.Discount1)
	require.Equal(t, "Cây", second.Unit)
	require.Equal(t, "8%", second.VATRate)
	require.Equal(t, "630,000 đ", second.Subtotal)

	require.Equal(t, "2,055,000 đ", view.Subtotal)
	require.Equal(t, "0 đ", view.OrderDiscount)
	require.Equal(t, "192,900 đ", view.VAT)
	require.Equal(t, "2,247,900 đ", view.GrandTotal)
}

func TestComposeSuppressesVAT(t *testing.T) {
	h := testHeader()
	h.VATStatusCode = 191920001
	view := Compose(h, testLines(1))

	require.Equal(t, "0 đ", view.VAT)
	require.Equal(t, view.Subtotal, view.GrandTotal)
}

func TestComposeEmptyOrder(t *testing.T) {
	view := Compose(order.Header{Name: "SO-3000", Customer: "Khách lẻ"}, nil)
	require.Empty(t, view.Lines)
	require.Equal(t, "0 đ", view.Subtotal)
	require.Equal(t, "0 đ", view.GrandTotal)
	require.Empty(t, view.OrderedOn)
	// an absent payment-term code is the enumerated code 0, not an unknown one
	require.Equal(t, "Thanh toán sau khi nhận hàng", view.PaymentTerm)
	require.Empty(t, view.BankTransferInfo)
}

func TestComposeUnknownPaymentTermCode(t *testing.T) {
	view := Compose(order.Header{Name: "SO-3001", PaymentTermCode: 999}, nil)
	require.Empty(t, view.PaymentTerm)
}
