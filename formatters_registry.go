package l10n

import (
	"maps"
	"sync"
)

// Helper names exposed by the registry and template helpers.
const (
	HelperFormatNumber     = "format_number"
	HelperFormatPercent    = "format_percent"
	HelperFormatFileSize   = "format_file_size"
	HelperFormatCurrency   = "format_currency"
	HelperFormatAccounting = "format_accounting"
	HelperCurrencySymbol   = "currency_symbol"
	HelperFormatDate       = "format_date"
	HelperFormatTime       = "format_time"
	HelperFormatDateTime   = "format_datetime"
	HelperFormatRelative   = "format_relative"
	HelperParseNumber      = "parse_number"
	HelperParseCurrency    = "parse_currency"
)

// Helper signatures. The locale always comes first.
type (
	NumberHelper   = func(locale string, value float64, decimals int) string
	CurrencyHelper = func(locale string, amount float64, currency string) string
	SymbolHelper   = func(locale, currency string) string
	DateHelper     = func(locale string, value any, preset string) (string, error)
	RelativeHelper = func(locale string, value any) string
	ParseHelper    = func(locale, formatted string) float64
	ParseCurHelper = func(locale, formatted, currency string) float64
)

// FormatterProvider returns locale specific helper overrides.
type FormatterProvider func(locale string) map[string]any

// FormatterRegistry manages helper functions and locale specific overrides
type FormatterRegistry struct {
	mu            sync.RWMutex
	defaults      map[string]any
	overrides     map[string]map[string]any
	providers     map[string]FormatterProvider
	funcCache     map[string]map[string]any
	defaultLocale string
}

type formatterRegistryConfig struct {
	defaults      map[string]any
	providers     map[string]FormatterProvider
	defaultLocale string
}

type FormatterRegistryOption func(*formatterRegistryConfig)

// WithFormatterRegistryDefaults seeds the registry with helper funcs, usually
// Config.helperFuncs. Without it the package level formatters are used.
func WithFormatterRegistryDefaults(funcs map[string]any) FormatterRegistryOption {
	return func(frc *formatterRegistryConfig) {
		frc.defaults = funcs
	}
}

func WithFormatterRegistryDefaultLocale(locale string) FormatterRegistryOption {
	return func(frc *formatterRegistryConfig) {
		frc.defaultLocale = locale
	}
}

func WithFormatterRegistryProvider(locale string, provider FormatterProvider) FormatterRegistryOption {
	return func(frc *formatterRegistryConfig) {
		if locale == "" || provider == nil {
			return
		}
		if frc.providers == nil {
			frc.providers = make(map[string]FormatterProvider)
		}
		frc.providers[locale] = provider
	}
}

// NewFormatterRegistry seeds a registry with the default helper implementations
func NewFormatterRegistry(opts ...FormatterRegistryOption) *FormatterRegistry {
	cfg := formatterRegistryConfig{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	defaults := cfg.defaults
	if defaults == nil {
		defaults = defaultConfig().helperFuncs()
	}

	registry := &FormatterRegistry{
		defaults:      cloneFuncMap(defaults),
		overrides:     make(map[string]map[string]any),
		providers:     make(map[string]FormatterProvider),
		defaultLocale: cfg.defaultLocale,
	}
	if registry.defaultLocale == "" {
		registry.defaultLocale = DefaultLocale
	}

	for locale, provider := range cfg.providers {
		registry.RegisterProvider(locale, provider)
	}

	return registry
}

// Register sets or replaces the default implementation for the <name> helper
func (r *FormatterRegistry) Register(name string, fn any) {
	if name == "" || fn == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.defaults == nil {
		r.defaults = make(map[string]any)
	}
	r.defaults[name] = fn
	r.invalidateFuncCacheLocked()
}

// RegisterLocale registers a locale specific override for the <name> helper
func (r *FormatterRegistry) RegisterLocale(locale, name string, fn any) {
	locale = normalizeLocale(locale)
	if locale == "" || name == "" || fn == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.overrides == nil {
		r.overrides = make(map[string]map[string]any)
	}

	helpers := r.overrides[locale]
	if helpers == nil {
		helpers = make(map[string]any)
		r.overrides[locale] = helpers
	}
	helpers[name] = fn
	r.invalidateFuncCacheLocked()
}

func (r *FormatterRegistry) RegisterProvider(locale string, provider FormatterProvider) {
	locale = normalizeLocale(locale)
	if locale == "" || provider == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.providers == nil {
		r.providers = make(map[string]FormatterProvider)
	}
	r.providers[locale] = provider
	r.invalidateFuncCacheLocked()
}

// Formatter returns the helper implementation for the given name and locale
func (r *FormatterRegistry) Formatter(name, locale string) (any, bool) {
	if name == "" {
		return nil, false
	}

	if fn, ok := r.funcMapForLocale(locale)[name]; ok && fn != nil {
		return fn, true
	}
	return nil, false
}

// FuncMap returns all helper functions applicable to the locale
func (r *FormatterRegistry) FuncMap(locale string) map[string]any {
	return cloneFuncMap(r.funcMapForLocale(locale))
}

func (r *FormatterRegistry) funcMapForLocale(locale string) map[string]any {
	key := normalizeLocale(locale)

	r.mu.RLock()
	if cached, ok := r.funcCache[key]; ok {
		r.mu.RUnlock()
		return cached
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.funcCache == nil {
		r.funcCache = make(map[string]map[string]any)
	} else if cached, ok := r.funcCache[key]; ok {
		return cached
	}

	effective := key
	if effective == "" {
		effective = r.defaultLocale
	}

	result := make(map[string]any, len(r.defaults))
	maps.Copy(result, r.defaults)

	// least specific first so the caller's own tag wins
	candidates := localeCandidates(effective)
	for i := len(candidates) - 1; i >= 0; i-- {
		candidate := candidates[i]

		if provider, ok := r.providers[candidate]; ok && provider != nil {
			if helpers := provider(candidate); helpers != nil {
				maps.Copy(result, helpers)
			}
		}

		if helpers, ok := r.overrides[candidate]; ok {
			maps.Copy(result, helpers)
		}
	}

	r.funcCache[key] = result
	return result
}

func (r *FormatterRegistry) invalidateFuncCacheLocked() {
	r.funcCache = nil
}

func cloneFuncMap(source map[string]any) map[string]any {
	if len(source) == 0 {
		return map[string]any{}
	}

	target := make(map[string]any, len(source))
	maps.Copy(target, source)
	return target
}

// helperFuncs binds the configured formatters to the helper signatures.
func (cfg *Config) helperFuncs() map[string]any {
	numbers, currencies, dates := cfg.Numbers(), cfg.Currencies(), cfg.DateTimes()

	dateHelper := func(render func(value any, preset FormatPreset, locale, timezone string) (string, error)) DateHelper {
		return func(locale string, value any, preset string) (string, error) {
			p, err := ParsePreset(preset)
			if err != nil {
				return "", err
			}
			return render(value, p, locale, "")
		}
	}

	return map[string]any{
		HelperFormatNumber: NumberHelper(func(locale string, value float64, decimals int) string {
			return numbers.Format(value, decimals, locale)
		}),
		HelperFormatPercent: NumberHelper(func(locale string, value float64, decimals int) string {
			return numbers.FormatPercent(value, decimals, locale)
		}),
		HelperFormatFileSize: NumberHelper(func(locale string, bytes float64, decimals int) string {
			return numbers.FormatFileSize(bytes, decimals, locale)
		}),
		HelperFormatCurrency: CurrencyHelper(func(locale string, amount float64, currency string) string {
			return currencies.Format(amount, currency, locale)
		}),
		HelperFormatAccounting: CurrencyHelper(func(locale string, amount float64, currency string) string {
			return currencies.FormatAccounting(amount, currency, locale)
		}),
		HelperCurrencySymbol: SymbolHelper(func(locale, currency string) string {
			return currencies.Symbol(currency, locale)
		}),
		HelperFormatDate:     dateHelper(dates.FormatDate),
		HelperFormatTime:     dateHelper(dates.FormatTime),
		HelperFormatDateTime: dateHelper(dates.Format),
		HelperFormatRelative: RelativeHelper(func(locale string, value any) string {
			return dates.FormatRelative(value, locale)
		}),
		HelperParseNumber: ParseHelper(func(locale, formatted string) float64 {
			return numbers.Parse(formatted, locale)
		}),
		HelperParseCurrency: ParseCurHelper(func(locale, formatted, currency string) float64 {
			return currencies.Parse(formatted, currency, locale)
		}),
	}
}
