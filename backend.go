package l10n

import (
	"math"

	"github.com/shopspring/decimal"
)

// NumberBackend renders localized digits. Implementations return an error
// when they cannot honour a request so callers can fall back.
type NumberBackend interface {
	Name() string
	// Supports is consulted on every call; it must be cheap.
	Supports(locale string) bool
	FormatDecimal(value float64, decimals int, locale string) (string, error)
	// FormatPercent receives the ratio (0.125 renders as 12.5%).
	FormatPercent(value float64, decimals int, locale string) (string, error)
}

const manualBackendName = "manual"

// manualNumberBackend is built from the static tables and never fails for a
// finite value.
type manualNumberBackend struct{}

var _ NumberBackend = manualNumberBackend{}

// ManualNumberBackend returns the table driven backend used as fallback.
func ManualNumberBackend() NumberBackend {
	return manualNumberBackend{}
}

func (manualNumberBackend) Name() string { return manualBackendName }

func (manualNumberBackend) Supports(string) bool { return true }

func (b manualNumberBackend) FormatDecimal(value float64, decimals int, locale string) (string, error) {
	if !isFinite(value) {
		return nonFinite(value), nil
	}
	indian := usesIndianGrouping(locale) && math.Abs(value) >= 1000
	return b.render(decimal.NewFromFloat(value), decimals, locale, indian), nil
}

func (b manualNumberBackend) FormatPercent(value float64, decimals int, locale string) (string, error) {
	if !isFinite(value) {
		return nonFinite(value) + "%", nil
	}
	scaled := decimal.NewFromFloat(value).Mul(hundred)
	indian := usesIndianGrouping(locale) && scaled.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000))
	return b.render(scaled, decimals, locale, indian) + "%", nil
}

func (manualNumberBackend) render(value decimal.Decimal, decimals int, locale string, indian bool) string {
	seps := Separators(locale)
	negative, integer, fraction := splitFixed(roundHalfAway(value, decimals))

	if indian {
		integer = groupIndian(integer, seps.Group)
	} else {
		integer = groupThousands(integer, seps.Group)
	}

	out := integer
	if fraction != "" {
		out += seps.Decimal + fraction
	}
	if negative {
		out = "-" + out
	}
	return out
}

func nonFinite(value float64) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case value < 0:
		return "-∞"
	default:
		return "∞"
	}
}
