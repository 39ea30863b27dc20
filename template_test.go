package l10n

import (
	"bytes"
	"errors"
	"html/template"
	"testing"
)

func newManualConfig(t *testing.T, opts ...Option) *Config {
	t.Helper()
	cfg, err := NewConfig(append([]Option{WithoutNativeNumberBackend(), WithClock(fixedClock)}, opts...)...)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	return cfg
}

func TestTemplateHelpersInferredLocale(t *testing.T) {
	helpers := newManualConfig(t).TemplateHelpers(HelperConfig{LocaleKey: "current_locale"})

	formatNumber, ok := helpers[HelperFormatNumber].(func(any, any, any) string)
	if !ok {
		t.Fatalf("format_number helper signature mismatch: %T", helpers[HelperFormatNumber])
	}

	ctx := map[string]any{"current_locale": "de"}

	if got := formatNumber(ctx, 1234.5, 2); got != "1.234,50" {
		t.Fatalf("format_number inferred locale = %q", got)
	}

	if got := formatNumber("hi", 1234567, "0"); got != "12,34,567" {
		t.Fatalf("format_number explicit locale = %q", got)
	}
}

func TestTemplateHelpersCurrentLocaleHelper(t *testing.T) {
	helpers := TemplateHelpers(nil, HelperConfig{LocaleKey: "locale", DefaultLocale: "fr"})

	currentLocale := helpers["current_locale"].(func(any) string)

	ctx := map[string]string{"locale": "es"}
	if got := currentLocale(ctx); got != "es" {
		t.Fatalf("current_locale helper = %q", got)
	}

	if got := currentLocale("de"); got != "de" {
		t.Fatalf("current_locale string = %q", got)
	}

	if got := currentLocale(nil); got != "fr" {
		t.Fatalf("current_locale default = %q", got)
	}

	type page struct {
		Locale string
		Title  string
	}
	if got := currentLocale(&page{Locale: "ja"}); got != "ja" {
		t.Fatalf("current_locale struct = %q", got)
	}
}

func TestTemplateHelpersFormatterUsesProvider(t *testing.T) {
	cfg := newManualConfig(t)
	registry := cfg.FormatterRegistry()

	registry.RegisterProvider("es", func(_ string) map[string]any {
		return map[string]any{
			HelperFormatNumber: NumberHelper(func(_ string, value float64, decimals int) string {
				return "es"
			}),
		}
	})

	helpers := TemplateHelpers(registry, HelperConfig{})

	formatNumber := helpers[HelperFormatNumber].(func(any, any, any) string)

	if got := formatNumber("es", 12.34, 2); got != "es" {
		t.Fatalf("format_number provider output = %q", got)
	}

	if got := formatNumber("en", 12.34, 2); got != cfg.Numbers().Format(12.34, 2, "en") {
		t.Fatalf("format_number default output = %q", got)
	}
}

func TestTemplateHelpersCurrency(t *testing.T) {
	helpers := newManualConfig(t).TemplateHelpers(HelperConfig{})

	formatCurrency, ok := helpers[HelperFormatCurrency].(func(any, any, string) string)
	if !ok {
		t.Fatalf("format_currency helper signature mismatch: %T", helpers[HelperFormatCurrency])
	}

	if got := formatCurrency("en", 10, "USD"); got != "$10.00" {
		t.Fatalf("format_currency = %q", got)
	}

	accounting := helpers[HelperFormatAccounting].(func(any, any, string) string)
	if got := accounting("en", "-50.5", "USD"); got != "($50.50)" {
		t.Fatalf("format_accounting = %q", got)
	}

	symbol := helpers[HelperCurrencySymbol].(func(any, string) string)
	if got := symbol("fr", "eur"); got != "€" {
		t.Fatalf("currency_symbol = %q", got)
	}

	parse := helpers[HelperParseCurrency].(func(any, string, string) float64)
	if got := parse("de", "1.234,50 €", "EUR"); got != 1234.5 {
		t.Fatalf("parse_currency = %v", got)
	}
}

func TestTemplateHelpersDates(t *testing.T) {
	helpers := newManualConfig(t).TemplateHelpers(HelperConfig{})

	formatDate, ok := helpers[HelperFormatDate].(func(any, any, string) (string, error))
	if !ok {
		t.Fatalf("format_date helper signature mismatch: %T", helpers[HelperFormatDate])
	}

	if got, err := formatDate("en", referenceTime, "long"); err != nil || got != "March 15, 2024" {
		t.Fatalf("format_date = %q,%v", got, err)
	}

	if _, err := formatDate("en", referenceTime, "tiny"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}

	relative := helpers[HelperFormatRelative].(func(any, any) string)
	if got := relative("fr", referenceTime.AddDate(0, 0, -3)); got != "il y a 3 jours" {
		t.Fatalf("format_relative = %q", got)
	}
}

func TestTemplateHelpersNoDateBackend(t *testing.T) {
	helpers := newManualConfig(t, WithDateBackend(nil)).TemplateHelpers(HelperConfig{})

	formatDate := helpers[HelperFormatDate].(func(any, any, string) (string, error))
	if _, err := formatDate("en", referenceTime, "short"); !errors.Is(err, ErrNativeBackendUnavailable) {
		t.Fatalf("expected ErrNativeBackendUnavailable, got %v", err)
	}
}

func TestTemplateHelpersInHTMLTemplate(t *testing.T) {
	cfg := newManualConfig(t)

	tmpl, err := template.New("receipt").
		Funcs(cfg.TemplateHelpers(HelperConfig{})).
		Parse(`{{format_currency . .Total "EUR"}} / {{format_file_size . .Size 1}} / {{format_date . .When "medium"}}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	data := map[string]any{
		"locale": "de",
		"Total":  1234.5,
		"Size":   1536,
		"When":   referenceTime,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if got, want := buf.String(), "1.234,50 € / 1,5 KB / 15.03.2024"; got != want {
		t.Fatalf("template output = %q want %q", got, want)
	}
}

func TestExtractLocale(t *testing.T) {
	type nested struct {
		UserLocale string
	}

	tests := []struct {
		name string
		src  any
		key  string
		want string
	}{
		{name: "nil", src: nil, key: "locale", want: ""},
		{name: "string", src: "pt-BR", key: "locale", want: "pt-BR"},
		{name: "map any", src: map[string]any{"locale": "it"}, key: "locale", want: "it"},
		{name: "typed map", src: map[string]int{"locale": 3}, key: "locale", want: "3"},
		{name: "struct snake key", src: nested{UserLocale: "ko"}, key: "user_locale", want: "ko"},
		{name: "nil pointer", src: (*nested)(nil), key: "user_locale", want: ""},
		{name: "int key map", src: map[int]string{1: "x"}, key: "locale", want: ""},
	}

	for _, tc := range tests {
		if got := extractLocale(tc.src, tc.key); got != tc.want {
			t.Fatalf("%s: extractLocale = %q want %q", tc.name, got, tc.want)
		}
	}
}
