package l10n

import (
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// HelperConfig configures template helper exports
type HelperConfig struct {
	// LocaleKey names the map key or struct field holding the locale in
	// template data. Defaults to "locale".
	LocaleKey string
	// DefaultLocale is used when the data carries no locale.
	DefaultLocale string
}

// TemplateHelpers exposes the registry helpers for text/template and
// html/template. Every helper takes the locale source first: a locale string
// or the template data holding LocaleKey. Numeric arguments are coerced, so
// template ints and floats both work.
func TemplateHelpers(registry *FormatterRegistry, cfg HelperConfig) map[string]any {
	if registry == nil {
		registry = defaultConfig().FormatterRegistry()
	}
	key := cfg.LocaleKey
	if key == "" {
		key = "locale"
	}

	localeOf := func(src any) string {
		if locale := extractLocale(src, key); locale != "" {
			return locale
		}
		return cfg.DefaultLocale
	}

	number := func(name string) func(src, value, decimals any) string {
		return func(src, value, decimals any) string {
			locale := localeOf(src)
			fn, ok := lookupHelper[NumberHelper](registry, name, locale)
			if !ok {
				return ""
			}
			return fn(locale, cast.ToFloat64(value), cast.ToInt(decimals))
		}
	}

	money := func(name string) func(src, amount any, currency string) string {
		return func(src, amount any, currency string) string {
			locale := localeOf(src)
			fn, ok := lookupHelper[CurrencyHelper](registry, name, locale)
			if !ok {
				return ""
			}
			return fn(locale, cast.ToFloat64(amount), currency)
		}
	}

	date := func(name string) func(src, value any, preset string) (string, error) {
		return func(src, value any, preset string) (string, error) {
			locale := localeOf(src)
			fn, ok := lookupHelper[DateHelper](registry, name, locale)
			if !ok {
				return "", ErrNativeBackendUnavailable
			}
			return fn(locale, value, preset)
		}
	}

	return map[string]any{
		"current_locale": func(src any) string {
			return localeOf(src)
		},
		HelperFormatNumber:     number(HelperFormatNumber),
		HelperFormatPercent:    number(HelperFormatPercent),
		HelperFormatFileSize:   number(HelperFormatFileSize),
		HelperFormatCurrency:   money(HelperFormatCurrency),
		HelperFormatAccounting: money(HelperFormatAccounting),
		HelperCurrencySymbol: func(src any, currency string) string {
			locale := localeOf(src)
			fn, ok := lookupHelper[SymbolHelper](registry, HelperCurrencySymbol, locale)
			if !ok {
				return CurrencySymbol(currency)
			}
			return fn(locale, currency)
		},
		HelperFormatDate:     date(HelperFormatDate),
		HelperFormatTime:     date(HelperFormatTime),
		HelperFormatDateTime: date(HelperFormatDateTime),
		HelperFormatRelative: func(src, value any) string {
			locale := localeOf(src)
			fn, ok := lookupHelper[RelativeHelper](registry, HelperFormatRelative, locale)
			if !ok {
				return ""
			}
			return fn(locale, value)
		},
		HelperParseNumber: func(src any, formatted string) float64 {
			locale := localeOf(src)
			fn, ok := lookupHelper[ParseHelper](registry, HelperParseNumber, locale)
			if !ok {
				return 0
			}
			return fn(locale, formatted)
		},
		HelperParseCurrency: func(src any, formatted, currency string) float64 {
			locale := localeOf(src)
			fn, ok := lookupHelper[ParseCurHelper](registry, HelperParseCurrency, locale)
			if !ok {
				return 0
			}
			return fn(locale, formatted, currency)
		},
	}
}

func lookupHelper[T any](registry *FormatterRegistry, name, locale string) (T, bool) {
	var zero T
	fn, ok := registry.Formatter(name, locale)
	if !ok {
		return zero, false
	}
	typed, ok := fn.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// extractLocale reads the locale from a string, a map keyed by key, or a
// struct field whose name matches key case-insensitively.
func extractLocale(src any, key string) string {
	switch v := src.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any:
		return cast.ToString(v[key])
	case map[string]string:
		return v[key]
	}

	rv := reflect.ValueOf(src)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return ""
		}
		value := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !value.IsValid() {
			return ""
		}
		return cast.ToString(value.Interface())
	case reflect.Struct:
		field := rv.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, key) || strings.EqualFold(name, strings.ReplaceAll(key, "_", ""))
		})
		if !field.IsValid() || !field.CanInterface() {
			return ""
		}
		return cast.ToString(field.Interface())
	}
	return ""
}
