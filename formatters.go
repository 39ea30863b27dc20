package l10n

import (
	"fmt"
	"sync"
	"time"
)

// defaultConfig backs the package level helpers. It uses every default:
// English, UTC, x/text numbers and CLDR dates.
var defaultConfig = sync.OnceValue(func() *Config {
	cfg, err := NewConfig()
	if err != nil {
		panic(fmt.Sprintf("l10n: default config: %v", err))
	}
	return cfg
})

func FormatNumber(locale string, value float64, decimals int) string {
	return defaultConfig().Numbers().Format(value, decimals, locale)
}

func FormatPercent(locale string, value float64, decimals int) string {
	return defaultConfig().Numbers().FormatPercent(value, decimals, locale)
}

func FormatFileSize(locale string, bytes float64, decimals int) string {
	return defaultConfig().Numbers().FormatFileSize(bytes, decimals, locale)
}

func ParseNumber(locale, formatted string) float64 {
	return defaultConfig().Numbers().Parse(formatted, locale)
}

func FormatCurrency(locale string, amount float64, currency string) string {
	return defaultConfig().Currencies().Format(amount, currency, locale)
}

func FormatAccounting(locale string, amount float64, currency string) string {
	return defaultConfig().Currencies().FormatAccounting(amount, currency, locale)
}

func ParseCurrency(locale, formatted, currency string) float64 {
	return defaultConfig().Currencies().Parse(formatted, currency, locale)
}

func FormatDate(locale string, t time.Time, preset FormatPreset) (string, error) {
	return defaultConfig().DateTimes().FormatDate(t, preset, locale, "")
}

func FormatTime(locale string, t time.Time, preset FormatPreset) (string, error) {
	return defaultConfig().DateTimes().FormatTime(t, preset, locale, "")
}

func FormatDateTime(locale string, t time.Time, preset FormatPreset) (string, error) {
	return defaultConfig().DateTimes().Format(t, preset, locale, "")
}

func FormatRelative(locale string, t time.Time) string {
	return defaultConfig().DateTimes().FormatRelative(t, locale)
}
