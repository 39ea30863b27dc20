package l10n

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// groupDigits inserts sep into an unsigned run of integer digits. The last
// group has primary width, every group before it secondary width.
// Standard grouping is (3, 3); Indian grouping is (3, 2).
func groupDigits(digits string, primary, secondary int, sep string) string {
	if primary <= 0 || len(digits) <= primary {
		return digits
	}
	if secondary <= 0 {
		secondary = primary
	}

	head := digits[:len(digits)-primary]
	tail := digits[len(digits)-primary:]

	groups := make([]string, 0, len(head)/secondary+2)
	for len(head) > secondary {
		groups = append(groups, head[len(head)-secondary:])
		head = head[:len(head)-secondary]
	}
	if head != "" {
		groups = append(groups, head)
	}

	var b strings.Builder
	for i := len(groups) - 1; i >= 0; i-- {
		b.WriteString(groups[i])
		b.WriteString(sep)
	}
	b.WriteString(tail)
	return b.String()
}

// groupIndian applies the lakh/crore scheme: "1234567" becomes "12,34,567".
func groupIndian(digits, sep string) string {
	return groupDigits(digits, 3, 2, sep)
}

func groupThousands(digits, sep string) string {
	return groupDigits(digits, 3, 3, sep)
}

func clampDecimals(decimals int) int {
	if decimals < 0 {
		return 0
	}
	return decimals
}

// roundHalfAway rounds to places decimals, half away from zero, and returns
// the fixed-point text with a leading "-" when negative.
func roundHalfAway(value decimal.Decimal, places int) string {
	return value.StringFixed(int32(clampDecimals(places)))
}

func roundedFloat(value decimal.Decimal, places int) float64 {
	return value.Round(int32(clampDecimals(places))).InexactFloat64()
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

// splitFixed breaks a fixed-point string into sign, integer and fraction
// parts. A value that rounded to zero is never negative.
func splitFixed(fixed string) (negative bool, integer, fraction string) {
	if strings.HasPrefix(fixed, "-") {
		negative = true
		fixed = fixed[1:]
	}
	integer, fraction, _ = strings.Cut(fixed, ".")
	if strings.Trim(integer, "0") == "" && strings.Trim(fraction, "0") == "" {
		negative = false
	}
	return negative, integer, fraction
}

// roundsNegative reports whether value stays below zero once rounded.
func roundsNegative(value float64, places int) bool {
	if !isFinite(value) {
		return value < 0
	}
	negative, _, _ := splitFixed(roundHalfAway(decimal.NewFromFloat(value), places))
	return negative
}

// trimFractionZeros drops trailing zeros after the decimal separator, and the
// separator itself when nothing remains.
func trimFractionZeros(formatted, decimalSep string) string {
	idx := strings.LastIndex(formatted, decimalSep)
	if idx < 0 {
		return formatted
	}
	integer, fraction := formatted[:idx], formatted[idx+len(decimalSep):]
	if fraction == "" || strings.Trim(fraction, "0123456789") != "" {
		return formatted
	}
	fraction = strings.TrimRight(fraction, "0")
	if fraction == "" {
		return integer
	}
	return integer + decimalSep + fraction
}
