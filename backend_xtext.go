//go:build !l10n_noxtext

package l10n

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const xtextBackendName = "x/text"

// xtextNumberBackend renders through golang.org/x/text CLDR data.
type xtextNumberBackend struct{}

var _ NumberBackend = xtextNumberBackend{}

// NativeNumberBackend returns the golang.org/x/text backend, or nil when the
// library was built with the l10n_noxtext tag.
func NativeNumberBackend() NumberBackend {
	return xtextNumberBackend{}
}

func (xtextNumberBackend) Name() string { return xtextBackendName }

func (xtextNumberBackend) Supports(locale string) bool {
	_, ok := lookupRegion(locale)
	return ok
}

func (b xtextNumberBackend) FormatDecimal(value float64, decimals int, locale string) (string, error) {
	if !isFinite(value) {
		return "", fmt.Errorf("%w: non-finite value", errNativeOutput)
	}
	rounded := roundedFloat(decimal.NewFromFloat(value), decimals)
	return b.print(locale, number.Decimal(rounded, fractionDigits(decimals)...))
}

func (b xtextNumberBackend) FormatPercent(value float64, decimals int, locale string) (string, error) {
	if !isFinite(value) {
		return "", fmt.Errorf("%w: non-finite value", errNativeOutput)
	}
	// pre-round the ratio at the scaled precision so x/text and the manual
	// path agree on ties
	ratio := decimal.NewFromFloat(value).Round(int32(clampDecimals(decimals)) + 2).InexactFloat64()
	return b.print(locale, number.Percent(ratio, fractionDigits(decimals)...))
}

func (xtextNumberBackend) print(locale string, formatter number.Formatter) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("%w: %v", errNativeOutput, r)
		}
	}()

	printer := message.NewPrinter(localeTag(locale))
	out = printer.Sprintf("%v", formatter)
	if out == "" || strings.Contains(out, "%!") || !strings.ContainsAny(out, "0123456789") || strings.ContainsFunc(out, nonLatinDigit) {
		return "", fmt.Errorf("%w: %q", errNativeOutput, out)
	}
	return canonicalizeNative(out, Separators(locale)), nil
}

// the tables and the parser only know latin digits
func nonLatinDigit(r rune) bool {
	return unicode.IsDigit(r) && (r < '0' || r > '9')
}

func fractionDigits(decimals int) []number.Option {
	d := clampDecimals(decimals)
	return []number.Option{number.MinFractionDigits(d), number.MaxFractionDigits(d)}
}

// localeTag expands a resolved locale to its regional tag, forcing latin
// digits where CLDR defaults to another numbering system.
func localeTag(locale string) language.Tag {
	region, ok := lookupRegion(locale)
	if !ok {
		region = regionTable[DefaultLocale]
	}
	tag := language.Make(normalizeLocale(region))
	if _, ok := numberingOverride[locale]; ok {
		if latn, err := tag.SetTypeForKey("nu", "latn"); err == nil {
			tag = latn
		}
	}
	return tag
}

// Locales whose CLDR default numbering system is not latin digits.
var numberingOverride = map[string]struct{}{"ar": {}}

var nativeReplacer = strings.NewReplacer(
	"\u200e", "", // LRM
	"\u200f", "", // RLM
	"\u061c", "", // ALM
	"\u2212", "-",
)

var spaceReplacer = strings.NewReplacer("\u00a0", " ", "\u202f", " ")

// canonicalizeNative strips bidi marks and maps CLDR space variants onto the
// locale's table separator so parsing stays symmetric.
func canonicalizeNative(out string, seps SeparatorPair) string {
	out = nativeReplacer.Replace(out)
	if seps.Group == " " {
		out = spaceReplacer.Replace(out)
	}
	return out
}
