package l10n

import (
	"strings"
	"sync"
	"testing"
)

func TestFormatterRegistryProvider(t *testing.T) {
	registry := NewFormatterRegistry()

	registry.RegisterProvider("fr", func(locale string) map[string]any {
		return map[string]any{
			HelperFormatNumber: func(_ string, value float64, decimals int) string {
				return "fr-" + FormatNumber("", value, decimals)
			},
		}
	})

	fnAny, ok := registry.Formatter(HelperFormatNumber, "fr")
	if !ok {
		t.Fatalf("expected provider formatter")
	}

	fn := fnAny.(NumberHelper)
	if got := fn("fr", 12.3, 1); got != "fr-12.3" {
		t.Fatalf("provider formatter = %q", got)
	}

	funcs := registry.FuncMap("fr")
	if funcs[HelperFormatNumber].(NumberHelper)("fr", 1.2, 1) != "fr-1.2" {
		t.Fatalf("func map should reflect provider override")
	}
}

func TestFormatterRegistryProviderOverrideOrder(t *testing.T) {
	registry := NewFormatterRegistry()

	registry.RegisterProvider("fr", func(locale string) map[string]any {
		return map[string]any{
			HelperFormatNumber: func(_ string, value float64, decimals int) string {
				return "provider"
			},
		}
	})

	registry.RegisterLocale("fr", HelperFormatNumber, func(_ string, value float64, decimals int) string {
		return "override"
	})

	fnAny, ok := registry.Formatter(HelperFormatNumber, "fr")
	if !ok {
		t.Fatal("expected formatter")
	}

	fn := fnAny.(NumberHelper)
	if got := fn("fr", 1, 0); got != "override" {
		t.Fatalf("override should win, got %q", got)
	}
}

func TestFormatterRegistryLocaleFallbackResolution(t *testing.T) {
	registry := NewFormatterRegistry()

	registry.RegisterLocale("en", HelperCurrencySymbol, func(_, currency string) string {
		return "fallback-" + currency
	})
	registry.RegisterLocale("en-GB", HelperFormatPercent, func(_ string, value float64, decimals int) string {
		return "gb"
	})

	fnAny, ok := registry.Formatter(HelperCurrencySymbol, "en-GB")
	if !ok {
		t.Fatal("expected formatter via fallback chain")
	}
	if got := fnAny.(SymbolHelper)("en-GB", "GBP"); got != "fallback-GBP" {
		t.Fatalf("fallback formatting mismatch: %q", got)
	}

	percent, _ := registry.Formatter(HelperFormatPercent, "en_GB")
	if got := percent.(NumberHelper)("en-GB", 0.5, 0); got != "gb" {
		t.Fatalf("the caller's own tag should win, got %q", got)
	}

	percent, _ = registry.Formatter(HelperFormatPercent, "en-US")
	if got := percent.(NumberHelper)("en-US", 0.5, 0); got != "50%" {
		t.Fatalf("sibling locale should not see en-GB override, got %q", got)
	}
}

func TestFormatterRegistryFallsBackToDefaults(t *testing.T) {
	registry := NewFormatterRegistry()

	for _, name := range []string{
		HelperFormatNumber, HelperFormatPercent, HelperFormatFileSize,
		HelperFormatCurrency, HelperFormatAccounting, HelperCurrencySymbol,
		HelperFormatDate, HelperFormatTime, HelperFormatDateTime,
		HelperFormatRelative, HelperParseNumber, HelperParseCurrency,
	} {
		if _, ok := registry.Formatter(name, "xx"); !ok {
			t.Fatalf("expected default formatter for %s", name)
		}
	}

	fnAny, _ := registry.Formatter(HelperFormatCurrency, "ja")
	if got := fnAny.(CurrencyHelper)("ja", 1234.4, "JPY"); got != "¥1,234" {
		t.Fatalf("default formatter mismatch: %q", got)
	}

	if _, ok := registry.Formatter("format_phone", "en"); ok {
		t.Fatal("unknown helper should be missing")
	}
	if _, ok := registry.Formatter("", "en"); ok {
		t.Fatal("empty helper name should be missing")
	}
}

func TestFormatterRegistryRegisterReplacesDefault(t *testing.T) {
	registry := NewFormatterRegistry(WithFormatterRegistryDefaults(map[string]any{}))

	if _, ok := registry.Formatter(HelperFormatNumber, "en"); ok {
		t.Fatal("empty defaults should expose nothing")
	}

	registry.Register(HelperFormatNumber, NumberHelper(func(locale string, value float64, decimals int) string {
		return strings.ToUpper(locale)
	}))
	registry.Register("", func() {})
	registry.Register("noop", nil)

	fnAny, ok := registry.Formatter(HelperFormatNumber, "de")
	if !ok {
		t.Fatal("expected registered default")
	}
	if got := fnAny.(NumberHelper)("de", 1, 0); got != "DE" {
		t.Fatalf("registered default = %q", got)
	}
	if len(registry.FuncMap("de")) != 1 {
		t.Fatalf("unexpected helpers: %v", registry.FuncMap("de"))
	}
}

func TestFormatterRegistryFuncMapIsCopy(t *testing.T) {
	registry := NewFormatterRegistry()

	funcs := registry.FuncMap("en")
	delete(funcs, HelperFormatNumber)

	if _, ok := registry.Formatter(HelperFormatNumber, "en"); !ok {
		t.Fatal("mutating a returned func map leaked into the registry")
	}
}

func TestFormatterRegistryConcurrentAccess(t *testing.T) {
	registry := NewFormatterRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			locale := []string{"en", "fr", "de", "hi"}[i%4]
			if i%2 == 0 {
				registry.RegisterLocale(locale, HelperCurrencySymbol, func(_, currency string) string { return currency })
			}
			for j := 0; j < 50; j++ {
				if _, ok := registry.Formatter(HelperFormatNumber, locale); !ok {
					t.Errorf("missing helper for %s", locale)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
