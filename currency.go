package l10n

import (
	"math"
	"strings"
)

// CurrencyFormatter formats and parses currency amounts. Digits come from
// the number backends; the symbol is placed by the locale rule.
type CurrencyFormatter struct {
	numbers *NumberFormatter
	deps    formatterDeps
}

// NewCurrencyFormatter is a shortcut for NewConfig(opts...).Currencies().
func NewCurrencyFormatter(opts ...Option) (*CurrencyFormatter, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return cfg.Currencies(), nil
}

// Format renders amount in currency (USD when empty). Zero-decimal
// currencies get no fraction digits. A minus sign leads the whole
// expression: "-$5.00", "-5,00 €".
func (f *CurrencyFormatter) Format(amount float64, currency, locale string) string {
	resolved := f.deps.locale(locale)
	code := normalizeCurrency(currency)
	ctx := f.deps.run(OpFormatCurrency, resolved, amount, func(ctx *FormatHookContext) {
		ctx.SetMetadata("currency", code)
		body := f.body(ctx, amount, code)
		if roundsNegative(amount, CurrencyDecimals(code)) {
			body = "-" + body
		}
		ctx.Result = body
	})
	return ctx.Result
}

// FormatAccounting wraps negative amounts in parentheses instead of using
// a minus sign: "($50.50)".
func (f *CurrencyFormatter) FormatAccounting(amount float64, currency, locale string) string {
	resolved := f.deps.locale(locale)
	code := normalizeCurrency(currency)
	ctx := f.deps.run(OpFormatAccounting, resolved, amount, func(ctx *FormatHookContext) {
		ctx.SetMetadata("currency", code)
		body := f.body(ctx, amount, code)
		if roundsNegative(amount, CurrencyDecimals(code)) {
			body = "(" + body + ")"
		}
		ctx.Result = body
	})
	return ctx.Result
}

// Symbol returns the registered symbol or the upper-cased code. Symbols do
// not vary by locale.
func (f *CurrencyFormatter) Symbol(currency, _ string) string {
	return CurrencySymbol(currency)
}

func (f *CurrencyFormatter) Decimals(currency string) int {
	return CurrencyDecimals(currency)
}

// Parse inverts Format and FormatAccounting. Parentheses mark a negative
// amount.
func (f *CurrencyFormatter) Parse(formatted, currency, locale string) float64 {
	resolved := f.deps.locale(locale)
	code := normalizeCurrency(currency)
	var value float64
	f.deps.run(OpParseCurrency, resolved, formatted, func(ctx *FormatHookContext) {
		ctx.SetMetadata("currency", code)
		ctx.Backend = manualBackendName

		s := strings.TrimSpace(formatted)
		if symbol := CurrencySymbol(code); symbol != "" {
			s = strings.ReplaceAll(s, symbol, "")
		}
		s = strings.ReplaceAll(s, code, "")
		s = strings.TrimSpace(s)

		accounting := strings.Contains(s, "(") && strings.Contains(s, ")")
		if accounting {
			s = strings.NewReplacer("(", "", ")", "").Replace(s)
		}

		value = parseLocalized(s, resolved)
		if accounting {
			value = -math.Abs(value)
		}
		ctx.Value = value
	})
	return value
}

// body renders |amount| with the symbol in place.
func (f *CurrencyFormatter) body(ctx *FormatHookContext, amount float64, code string) string {
	places := CurrencyDecimals(code)
	digits := f.numbers.render(ctx, func(b NumberBackend) (string, error) {
		return b.FormatDecimal(math.Abs(amount), places, ctx.Locale)
	})
	return placeSymbol(digits, CurrencySymbol(code), SymbolPlacementFor(ctx.Locale, code))
}

func placeSymbol(digits, symbol string, placement SymbolPlacement) string {
	sep := ""
	if placement.Space {
		sep = " "
	}
	if placement.Position == SymbolAfter {
		return digits + sep + symbol
	}
	return symbol + sep + digits
}
