package l10n

import (
	"log/slog"
	"strings"

	"github.com/spf13/cast"
)

// DefaultDecimals is the fraction digit count used by helpers that take none.
const DefaultDecimals = 2

var fileSizeUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// NumberFormatter formats and parses plain numbers, percentages and byte
// sizes. The native backend is tried first on every call; the manual
// backend always answers.
type NumberFormatter struct {
	native NumberBackend
	manual NumberBackend
	deps   formatterDeps
}

// NewNumberFormatter is a shortcut for NewConfig(opts...).Numbers().
func NewNumberFormatter(opts ...Option) (*NumberFormatter, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return cfg.Numbers(), nil
}

// Format renders value with exactly decimals fraction digits. Negative
// decimals count as zero; an empty locale selects the configured default.
func (f *NumberFormatter) Format(value float64, decimals int, locale string) string {
	resolved := f.deps.locale(locale)
	ctx := f.deps.run(OpFormatNumber, resolved, value, func(ctx *FormatHookContext) {
		ctx.Result = f.render(ctx, func(b NumberBackend) (string, error) {
			return b.FormatDecimal(value, decimals, resolved)
		})
	})
	return ctx.Result
}

// FormatPercent renders a ratio as a percentage: 0.125 becomes "12.50%".
func (f *NumberFormatter) FormatPercent(value float64, decimals int, locale string) string {
	resolved := f.deps.locale(locale)
	ctx := f.deps.run(OpFormatPercent, resolved, value, func(ctx *FormatHookContext) {
		ctx.Result = f.render(ctx, func(b NumberBackend) (string, error) {
			return b.FormatPercent(value, decimals, resolved)
		})
	})
	return ctx.Result
}

// FormatFileSize divides by 1024 while the value is strictly greater than
// 1024, so exactly 1024 bytes stays "1,024 B". Trailing fractional zeros
// are dropped: 1536 bytes is "1.5 KB".
func (f *NumberFormatter) FormatFileSize(bytes float64, decimals int, locale string) string {
	resolved := f.deps.locale(locale)
	ctx := f.deps.run(OpFormatFileSize, resolved, bytes, func(ctx *FormatHookContext) {
		value := bytes
		unit := 0
		for value > 1024 && unit < len(fileSizeUnits)-1 {
			value /= 1024
			unit++
		}
		ctx.SetMetadata("unit", fileSizeUnits[unit])

		digits := f.render(ctx, func(b NumberBackend) (string, error) {
			return b.FormatDecimal(value, decimals, resolved)
		})
		ctx.Result = trimFractionZeros(digits, Separators(resolved).Decimal) + " " + fileSizeUnits[unit]
	})
	return ctx.Result
}

// Parse is the left inverse of Format for the same locale. Residue that is
// not a number parses as 0.
func (f *NumberFormatter) Parse(formatted, locale string) float64 {
	resolved := f.deps.locale(locale)
	var value float64
	f.deps.run(OpParseNumber, resolved, formatted, func(ctx *FormatHookContext) {
		ctx.Backend = manualBackendName
		value = parseLocalized(formatted, resolved)
		ctx.Value = value
	})
	return value
}

// render asks the native backend first and falls back to the manual one.
func (f *NumberFormatter) render(ctx *FormatHookContext, fn func(b NumberBackend) (string, error)) string {
	if native := f.native; native != nil && native.Supports(ctx.Locale) {
		out, err := fn(native)
		if err == nil {
			ctx.Backend = native.Name()
			return out
		}
		ctx.Fallback = true
		f.deps.log().Debug("native number backend failed, using manual path",
			slog.String("op", ctx.Operation),
			slog.String("locale", ctx.Locale),
			slog.String("backend", native.Name()),
			slog.Any("error", err),
		)
	}

	manual := f.manual
	if manual == nil {
		manual = manualNumberBackend{}
	}
	ctx.Backend = manual.Name()
	out, err := fn(manual)
	if err != nil {
		ctx.Error = err
	}
	return out
}

// parseLocalized strips the group separator, maps the decimal separator to
// "." and drops everything but digits, "-" and ".".
func parseLocalized(formatted, locale string) float64 {
	seps := Separators(locale)

	s := strings.ReplaceAll(formatted, seps.Group, "")
	if seps.Decimal != "." {
		s = strings.ReplaceAll(s, seps.Decimal, ".")
	}
	s = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '-' || r == '.' {
			return r
		}
		return -1
	}, s)

	value, err := cast.ToFloat64E(s)
	if err != nil {
		return 0
	}
	return value
}
