// Package vnd formats computed invoice figures for display: whole-unit
// Vietnamese currency with thousands separators, quantities, percentages and
// dd/mm/yyyy dates.
package vnd

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// CurrencySuffix trails every formatted amount.
const CurrencySuffix = " đ"

// Currency renders an amount as a whole-unit figure with thousands separators
// and the currency suffix. Rounding is half away from zero; this is the only
// place amounts are rounded.
func Currency(amount float64) string {
	rounded := int64(math.Round(amount))
	return group(strconv.FormatInt(rounded, 10)) + CurrencySuffix
}

// Number renders a quantity with thousands separators on the integer part,
// keeping any fractional digits as-is.
func Number(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	intPart, frac, hasFrac := strings.Cut(s, ".")
	out := group(intPart)
	if hasFrac {
		out += "." + frac
	}
	return out
}

// Percent renders a discount fraction as a percentage with one decimal place,
// the way order prints show it.
func Percent(fraction float64) string {
	return strconv.FormatFloat(fraction*100, 'f', 1, 64) + "%"
}

// Rate renders a VAT rate fraction as a whole percentage.
func Rate(fraction float64) string {
	return strconv.FormatFloat(fraction*100, 'f', -1, 64) + "%"
}

// Date formats a timestamp as dd/mm/yyyy.
func Date(t time.Time) string {
	return t.Format("02/01/2006")
}

func group(digits string) string {
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}
	if len(digits) > 3 {
		var b strings.Builder
		lead := len(digits) % 3
		if lead > 0 {
			b.WriteString(digits[:lead])
		}
		for i := lead; i < len(digits); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(digits[i : i+3])
		}
		digits = b.String()
	}
	if neg {
		return "-" + digits
	}
	return digits
}
