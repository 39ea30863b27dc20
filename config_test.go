package l10n

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if cfg.DefaultLocale != DefaultLocale {
		t.Fatalf("DefaultLocale = %q", cfg.DefaultLocale)
	}

	if cfg.Logger == nil {
		t.Fatal("expected discard logger")
	}

	if cfg.Clock == nil {
		t.Fatal("expected default clock")
	}

	if cfg.Numbers() == nil || cfg.Currencies() == nil || cfg.DateTimes() == nil {
		t.Fatal("expected formatters to be built")
	}

	if cfg.Phrases() == nil {
		t.Fatal("expected phrase store")
	}

	if cfg.dateBackend == nil || cfg.dateBackend.Name() != cldrBackendName {
		t.Fatalf("expected cldr date backend, got %v", cfg.dateBackend)
	}

	if cfg.location != time.UTC {
		t.Fatalf("location = %v", cfg.location)
	}
}

func TestNewConfigDefaultLocale(t *testing.T) {
	cfg, err := NewConfig(WithDefaultLocale("de_DE"), WithoutNativeNumberBackend())
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if cfg.DefaultLocale != "de-DE" {
		t.Fatalf("DefaultLocale = %q", cfg.DefaultLocale)
	}

	if got := cfg.Numbers().Format(1234.5, 2, ""); got != "1.234,50" {
		t.Fatalf("empty locale should use default, got %q", got)
	}

	if got := cfg.Numbers().Format(1234.5, 2, "en"); got != "1,234.50" {
		t.Fatalf("explicit locale = %q", got)
	}
}

func TestNewConfigWithCatalogLoader(t *testing.T) {
	loader := LoaderFunc(func() (Catalogs, error) {
		return Catalogs{
			"en": newStringCatalog("en", map[string]string{keyRelativeJustNow: "a moment ago"}),
		}, nil
	})

	cfg, err := NewConfig(WithCatalogLoader(loader))
	if err != nil {
		t.Fatalf("NewConfig with loader: %v", err)
	}

	msg, ok := cfg.Phrases().Get("en", keyRelativeJustNow)
	if !ok || msg != "a moment ago" {
		t.Fatalf("store lookup returned %q,%v", msg, ok)
	}

	if msg, ok := cfg.Phrases().Get("fr", keyRelativeJustNow); !ok || msg == "" {
		t.Fatalf("builtin fr phrases lost: %q,%v", msg, ok)
	}
}

func TestNewConfigLoaderError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewConfig(WithCatalogLoader(LoaderFunc(func() (Catalogs, error) {
		return nil, boom
	})))
	if !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
}

func TestNewConfigOptionError(t *testing.T) {
	boom := errors.New("option failed")
	failing := func(*Config) error { return boom }

	if _, err := NewConfig(nil, failing); !errors.Is(err, boom) {
		t.Fatalf("expected option error, got %v", err)
	}
}

func TestConfigWithoutNativeBackend(t *testing.T) {
	cfg, err := NewConfig(WithNumberBackend(failingNumberBackend{}), WithoutNativeNumberBackend())
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if cfg.numberBackend != nil {
		t.Fatalf("expected no native backend, got %v", cfg.numberBackend.Name())
	}
}

func TestConfigLoggerReceivesFallbacks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg, err := NewConfig(WithLogger(logger), WithNumberBackend(failingNumberBackend{}))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if got := cfg.Numbers().Format(12, 0, "en"); got != "12" {
		t.Fatalf("Format = %q", got)
	}

	out := buf.String()
	if !strings.Contains(out, "native number backend failed") || !strings.Contains(out, "backend=failing") {
		t.Fatalf("expected fallback log, got %q", out)
	}
}

func TestConfigFormatterRegistryIsShared(t *testing.T) {
	cfg, err := NewConfig(WithoutNativeNumberBackend())
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	first := cfg.FormatterRegistry()
	if first == nil || first != cfg.FormatterRegistry() {
		t.Fatal("expected the registry to be built once")
	}

	fn, ok := first.Formatter(HelperFormatNumber, "de")
	if !ok {
		t.Fatal("expected format_number helper")
	}
	if got := fn.(NumberHelper)("de", 1234.5, 1); got != "1.234,5" {
		t.Fatalf("helper = %q", got)
	}
}

func TestConfigFormatterProvider(t *testing.T) {
	cfg, err := NewConfig(WithFormatterProvider("fr", func(string) map[string]any {
		return map[string]any{
			HelperCurrencySymbol: SymbolHelper(func(_, currency string) string { return "[" + currency + "]" }),
		}
	}))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	fn, ok := cfg.FormatterRegistry().Formatter(HelperCurrencySymbol, "fr-CA")
	if !ok {
		t.Fatal("expected provider helper")
	}
	if got := fn.(SymbolHelper)("fr-CA", "EUR"); got != "[EUR]" {
		t.Fatalf("provider helper = %q", got)
	}

	fn, _ = cfg.FormatterRegistry().Formatter(HelperCurrencySymbol, "en")
	if got := fn.(SymbolHelper)("en", "EUR"); got != "€" {
		t.Fatalf("default helper = %q", got)
	}
}

func TestNilConfigAccessors(t *testing.T) {
	var cfg *Config

	if cfg.Numbers() != nil || cfg.Currencies() != nil || cfg.DateTimes() != nil || cfg.Phrases() != nil {
		t.Fatal("nil config should return nil formatters")
	}
	if cfg.FormatterRegistry() != nil {
		t.Fatal("nil config should return nil registry")
	}
}

func TestLoadLocation(t *testing.T) {
	for _, name := range []string{"", " ", "UTC", "utc"} {
		loc, err := loadLocation(name)
		if err != nil || loc != time.UTC {
			t.Fatalf("loadLocation(%q) = %v,%v", name, loc, err)
		}
	}

	loc, err := loadLocation("Europe/Berlin")
	if err != nil || loc.String() != "Europe/Berlin" {
		t.Fatalf("loadLocation(Europe/Berlin) = %v,%v", loc, err)
	}

	if _, err := loadLocation("Nowhere/Special"); !errors.Is(err, ErrInvalidTimezone) {
		t.Fatalf("expected ErrInvalidTimezone, got %v", err)
	}
}
