package l10n

import (
	"maps"
	"slices"
	"strings"
)

// DefaultLocale is used whenever a locale cannot be resolved.
const DefaultLocale = "en"

const defaultCurrency = "USD"

// SeparatorPair holds the decimal and group separators for a locale.
type SeparatorPair struct {
	Decimal string `json:"decimal" yaml:"decimal"`
	Group   string `json:"group" yaml:"group"`
}

var supportedLocales = []string{"en", "fr", "de", "es", "it", "pt", "ru", "ar", "zh", "ja", "ko", "hi"}

var separatorTable = map[string]SeparatorPair{
	"en": {Decimal: ".", Group: ","},
	"fr": {Decimal: ",", Group: " "},
	"de": {Decimal: ",", Group: "."},
	"es": {Decimal: ",", Group: "."},
	"it": {Decimal: ",", Group: "."},
	"pt": {Decimal: ",", Group: "."},
	"ru": {Decimal: ",", Group: " "},
	"ar": {Decimal: ".", Group: ","},
	"zh": {Decimal: ".", Group: ","},
	"ja": {Decimal: ".", Group: ","},
	"ko": {Decimal: ".", Group: ","},
	"hi": {Decimal: ".", Group: ","},
}

var regionTable = map[string]string{
	"en": "en_US",
	"fr": "fr_FR",
	"de": "de_DE",
	"es": "es_ES",
	"it": "it_IT",
	"pt": "pt_BR",
	"ru": "ru_RU",
	"ar": "ar_SA",
	"zh": "zh_CN",
	"ja": "ja_JP",
	"ko": "ko_KR",
	"hi": "hi_IN",
}

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"KRW": "₩",
	"INR": "₹",
	"RUB": "₽",
	"BRL": "R$",
	"AED": "د.إ",
	"SAR": "ر.س",
	"CAD": "C$",
	"AUD": "A$",
	"CHF": "CHF",
	"MXN": "MX$",
	"VND": "₫",
}

var zeroDecimalCurrencies = map[string]struct{}{
	"JPY": {}, "KRW": {}, "VND": {}, "CLP": {}, "ISK": {},
	"PYG": {}, "UGX": {}, "RWF": {}, "XAF": {}, "XOF": {},
}

// symbol placement sets
var (
	symbolBeforeLocales = map[string]struct{}{"en": {}, "zh": {}, "ja": {}, "ko": {}}
	symbolAfterLocales  = map[string]struct{}{"fr": {}, "de": {}, "es": {}, "it": {}, "pt": {}, "ru": {}}
	arabicAfterCurrency = map[string]struct{}{"AED": {}, "SAR": {}}
)

// Locales using Indian digit grouping in the manual path.
var indianGroupingLocales = map[string]struct{}{"hi": {}}

// glue placed between the date and time halves of a datetime
var dateTimeGlue = map[string]string{
	"en": ", ",
	"fr": " ",
	"de": ", ",
	"es": ", ",
	"it": " ",
	"pt": " ",
	"ru": ", ",
	"ar": " ",
	"zh": " ",
	"ja": " ",
	"ko": " ",
	"hi": ", ",
}

func lookupSeparators(locale string) (SeparatorPair, bool) {
	pair, ok := separatorTable[locale]
	return pair, ok
}

func lookupRegion(locale string) (string, bool) {
	region, ok := regionTable[locale]
	return region, ok
}

func lookupSymbol(currency string) (string, bool) {
	symbol, ok := currencySymbols[currency]
	return symbol, ok
}

// Separators returns the separator pair for locale, defaulting to English.
func Separators(locale string) SeparatorPair {
	if pair, ok := lookupSeparators(ResolveLocale(locale)); ok {
		return pair
	}
	return separatorTable[DefaultLocale]
}

// Region expands a locale code into its full locale, e.g. "en" to "en_US".
func Region(locale string) string {
	if region, ok := lookupRegion(ResolveLocale(locale)); ok {
		return region
	}
	return regionTable[DefaultLocale]
}

// CurrencySymbol returns the display symbol for currency or the code itself.
func CurrencySymbol(currency string) string {
	code := normalizeCurrency(currency)
	if symbol, ok := lookupSymbol(code); ok {
		return symbol
	}
	return code
}

// IsZeroDecimal reports whether currency is displayed without a fractional part.
func IsZeroDecimal(currency string) bool {
	_, ok := zeroDecimalCurrencies[normalizeCurrency(currency)]
	return ok
}

// CurrencyDecimals is 0 for zero-decimal currencies and 2 otherwise.
func CurrencyDecimals(currency string) int {
	if IsZeroDecimal(currency) {
		return 0
	}
	return 2
}

// SymbolPosition says on which side of the digits a currency symbol goes.
type SymbolPosition int

const (
	SymbolBefore SymbolPosition = iota
	SymbolAfter
)

func (p SymbolPosition) String() string {
	if p == SymbolAfter {
		return "after"
	}
	return "before"
}

type SymbolPlacement struct {
	Position SymbolPosition
	Space    bool
}

// SymbolPlacementFor applies the placement rule for an already resolved locale.
func SymbolPlacementFor(locale, currency string) SymbolPlacement {
	code := normalizeCurrency(currency)
	if _, ok := symbolBeforeLocales[locale]; ok {
		return SymbolPlacement{Position: SymbolBefore}
	}
	if _, ok := symbolAfterLocales[locale]; ok {
		return SymbolPlacement{Position: SymbolAfter, Space: true}
	}
	if locale == "ar" {
		if _, ok := arabicAfterCurrency[code]; ok {
			return SymbolPlacement{Position: SymbolAfter, Space: true}
		}
	}
	return SymbolPlacement{Position: SymbolBefore}
}

func usesIndianGrouping(locale string) bool {
	_, ok := indianGroupingLocales[locale]
	return ok
}

func lookupDateTimeGlue(locale string) string {
	if glue, ok := dateTimeGlue[locale]; ok {
		return glue
	}
	return ", "
}

func normalizeCurrency(currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		return defaultCurrency
	}
	return code
}

// SupportedLocales lists the locale codes with dedicated tables.
func SupportedLocales() []string {
	return slices.Clone(supportedLocales)
}

// LocaleTable is the exported view of one locale's table entries.
type LocaleTable struct {
	Locale          string        `json:"locale" yaml:"locale"`
	Region          string        `json:"region" yaml:"region"`
	Separators      SeparatorPair `json:"separators" yaml:"separators"`
	IndianGrouping  bool          `json:"indian_grouping,omitempty" yaml:"indian_grouping,omitempty"`
	DateTimeGlue    string        `json:"datetime_glue" yaml:"datetime_glue"`
	SymbolPlacement string        `json:"symbol_placement" yaml:"symbol_placement"`
}

type CurrencyTable struct {
	Code     string `json:"code" yaml:"code"`
	Symbol   string `json:"symbol" yaml:"symbol"`
	Decimals int    `json:"decimals" yaml:"decimals"`
}

// TablesSnapshot is a copy of the static tables suitable for serialization.
type TablesSnapshot struct {
	Locales    []LocaleTable   `json:"locales" yaml:"locales"`
	Currencies []CurrencyTable `json:"currencies" yaml:"currencies"`
}

// Tables returns a snapshot of every locale and currency entry.
func Tables() TablesSnapshot {
	snapshot := TablesSnapshot{
		Locales: make([]LocaleTable, 0, len(supportedLocales)),
	}

	for _, locale := range supportedLocales {
		placement := "before"
		if _, ok := symbolAfterLocales[locale]; ok {
			placement = "after, space"
		} else if locale == "ar" {
			placement = "after, space for AED/SAR; before otherwise"
		}
		snapshot.Locales = append(snapshot.Locales, LocaleTable{
			Locale:          locale,
			Region:          regionTable[locale],
			Separators:      separatorTable[locale],
			IndianGrouping:  usesIndianGrouping(locale),
			DateTimeGlue:    lookupDateTimeGlue(locale),
			SymbolPlacement: placement,
		})
	}

	codes := slices.Sorted(maps.Keys(currencySymbols))
	for code := range zeroDecimalCurrencies {
		if _, ok := currencySymbols[code]; !ok {
			codes = append(codes, code)
		}
	}
	slices.Sort(codes)

	for _, code := range codes {
		snapshot.Currencies = append(snapshot.Currencies, CurrencyTable{
			Code:     code,
			Symbol:   CurrencySymbol(code),
			Decimals: CurrencyDecimals(code),
		})
	}
	return snapshot
}
