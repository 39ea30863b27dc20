package l10n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLocale(t *testing.T) {
	tests := map[string]string{
		"":        "en",
		"en":      "en",
		"EN":      "en",
		"de_DE":   "de",
		"de-AT":   "de",
		"fr-CA":   "fr",
		"pt-BR":   "pt",
		"zh-Hant": "zh",
		" hi ":    "hi",
		"xx":      "en",
		"nl":      "en",
		"garbage": "en",
	}

	for input, want := range tests {
		assert.Equal(t, want, ResolveLocale(input), "input %q", input)
	}
}

func TestLocaleLookupChain(t *testing.T) {
	assert.Equal(t, []string{"en"}, localeLookupChain(""))
	assert.Equal(t, []string{"fr", "en"}, localeLookupChain("fr"))
	assert.Equal(t, []string{"de-CH", "de", "en"}, localeLookupChain("de_CH"))
	assert.Equal(t, []string{"nl", "en"}, localeLookupChain("nl"))
}

func TestTablesCoverEverySupportedLocale(t *testing.T) {
	for _, locale := range SupportedLocales() {
		_, ok := lookupSeparators(locale)
		assert.True(t, ok, "separators for %s", locale)
		_, ok = lookupRegion(locale)
		assert.True(t, ok, "region for %s", locale)
		_, ok = dateTimeGlue[locale]
		assert.True(t, ok, "glue for %s", locale)
		_, ok = calendarPatterns[locale]
		assert.True(t, ok, "calendar patterns for %s", locale)
	}
}

func TestTableAccessors(t *testing.T) {
	assert.Equal(t, SeparatorPair{Decimal: ",", Group: "."}, Separators("de-DE"))
	assert.Equal(t, SeparatorPair{Decimal: ".", Group: ","}, Separators("xx"))
	assert.Equal(t, "pt_BR", Region("pt"))
	assert.Equal(t, "en_US", Region("xx"))
	assert.Equal(t, "R$", CurrencySymbol("brl"))
	assert.Equal(t, "USD", normalizeCurrency(" "))
	assert.Equal(t, ", ", lookupDateTimeGlue("xx"))
	assert.True(t, usesIndianGrouping("hi"))
	assert.False(t, usesIndianGrouping("en"))
}

func TestSupportedLocalesIsCopy(t *testing.T) {
	locales := SupportedLocales()
	require.NotEmpty(t, locales)
	locales[0] = "zz"
	assert.Equal(t, "en", SupportedLocales()[0])
}

func TestTablesSnapshot(t *testing.T) {
	snapshot := Tables()

	require.Len(t, snapshot.Locales, len(SupportedLocales()))
	require.Len(t, snapshot.Currencies, len(currencySymbols)+7, "symbols plus zero-decimal codes without one")

	byLocale := make(map[string]LocaleTable, len(snapshot.Locales))
	for _, entry := range snapshot.Locales {
		byLocale[entry.Locale] = entry
	}
	assert.True(t, byLocale["hi"].IndianGrouping)
	assert.Equal(t, "hi_IN", byLocale["hi"].Region)
	assert.Equal(t, "after, space", byLocale["fr"].SymbolPlacement)
	assert.Equal(t, "before", byLocale["ja"].SymbolPlacement)

	for _, entry := range snapshot.Currencies {
		assert.Equal(t, CurrencyDecimals(entry.Code), entry.Decimals, entry.Code)
		assert.Equal(t, CurrencySymbol(entry.Code), entry.Symbol, entry.Code)
	}
}
