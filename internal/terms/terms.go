// Package terms resolves the option-set codes and region keys carried on
// sale orders into the display texts printed on invoices.
package terms

var paymentTerms = map[int]string{
	283640005: "Thanh toán trước khi nhận hàng",
	283640004: "Công nợ 60 ngày",
	283640003: "Công nợ 45 ngày",
	283640002: "Công nợ 30 ngày",
	283640001: "Công nợ 7 ngày",
	283640000: "Tiền mặt",
	30:        "Thanh toán vào ngày 5 hàng tháng",
	14:        "Thanh toán 2 lần vào ngày 10 và 25",
	0:         "Thanh toán sau khi nhận hàng",
}

// PaymentTerm resolves a payment-term code to its display text. Unknown codes
// resolve to an empty string rather than an error.
func PaymentTerm(code int) string {
	return paymentTerms[code]
}

// RegionSaigon is the only region with dedicated bank-transfer instructions.
const RegionSaigon = "Sài Gòn"

const saigonBankInfo = `THÔNG TIN CHUYỂN KHOẢN
Lê Thị Ngọc Anh
Tài khoản: 58010001687927
Ngân hàng: BIDV
Chi nhánh: Bình Định`

// BankTransferInfo returns the transfer instruction block for the given
// region. Every region other than Sài Gòn yields empty text.
func BankTransferInfo(region string) string {
	if region == RegionSaigon {
		return saigonBankInfo
	}
	return ""
}
