package l10n

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Config captures formatter setup. Build it with NewConfig; the formatters
// it hands out are immutable and safe for concurrent use.
type Config struct {
	DefaultLocale   string
	DefaultTimezone string
	Logger          *slog.Logger
	Hooks           []FormatHook
	Clock           func() time.Time

	numberBackend      NumberBackend
	disableNative      bool
	dateBackend        DateBackend
	dateBackendSet     bool
	catalogLoaders     []Loader
	formatterProviders map[string]FormatterProvider

	location   *time.Location
	phrases    Store
	numbers    *NumberFormatter
	currencies *CurrencyFormatter
	dates      *DateTimeFormatter

	registryOnce      sync.Once
	formatterRegistry *FormatterRegistry
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	store, err := cfg.buildPhraseStore()
	if err != nil {
		return nil, err
	}
	cfg.phrases = store

	deps := formatterDeps{
		defaultLocale: cfg.DefaultLocale,
		logger:        cfg.Logger,
		hooks:         filterHooks(cfg.Hooks),
	}

	cfg.numbers = &NumberFormatter{
		native: cfg.numberBackend,
		manual: manualNumberBackend{},
		deps:   deps,
	}
	cfg.currencies = &CurrencyFormatter{numbers: cfg.numbers, deps: deps}
	cfg.dates = &DateTimeFormatter{
		backend:  cfg.dateBackend,
		phrases:  relativePhrases{store: store},
		location: cfg.location,
		clock:    cfg.Clock,
		deps:     deps,
	}

	return cfg, nil
}

func (cfg *Config) applyDefaults() error {
	cfg.DefaultLocale = normalizeLocale(cfg.DefaultLocale)
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = DefaultLocale
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	loc, err := loadLocation(cfg.DefaultTimezone)
	if err != nil {
		return err
	}
	cfg.location = loc

	if cfg.numberBackend == nil && !cfg.disableNative {
		cfg.numberBackend = NativeNumberBackend()
	}
	if cfg.disableNative {
		cfg.numberBackend = nil
	}

	if !cfg.dateBackendSet {
		cfg.dateBackend = CLDRDateBackend()
	}

	return nil
}

func (cfg *Config) buildPhraseStore() (*StaticStore, error) {
	catalogs, err := builtinRelativeCatalogs()
	if err != nil {
		return nil, fmt.Errorf("l10n: builtin relative time catalog: %w", err)
	}

	for _, loader := range cfg.catalogLoaders {
		extra, err := loader.Load()
		if err != nil {
			return nil, err
		}
		catalogs = mergeCatalogs(catalogs, extra)
	}

	if err := validateRelativeCatalogs(catalogs); err != nil {
		return nil, err
	}
	return NewStaticStore(catalogs), nil
}

// WithDefaultLocale sets the locale used when a call passes an empty locale
func WithDefaultLocale(locale string) Option {
	return func(c *Config) error {
		c.DefaultLocale = locale
		return nil
	}
}

// WithDefaultTimezone sets the IANA zone used when a call passes no timezone
func WithDefaultTimezone(name string) Option {
	return func(c *Config) error {
		if _, err := loadLocation(name); err != nil {
			return err
		}
		c.DefaultTimezone = name
		return nil
	}
}

// WithClock replaces time.Now for relative time and unparseable inputs
func WithClock(clock func() time.Time) Option {
	return func(c *Config) error {
		c.Clock = clock
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

func WithHooks(hooks ...FormatHook) Option {
	return func(c *Config) error {
		for _, hook := range hooks {
			if hook == nil {
				continue
			}
			c.Hooks = append(c.Hooks, hook)
		}
		return nil
	}
}

// WithNumberBackend replaces the native number backend
func WithNumberBackend(backend NumberBackend) Option {
	return func(c *Config) error {
		c.numberBackend = backend
		return nil
	}
}

// WithoutNativeNumberBackend forces the manual table driven path
func WithoutNativeNumberBackend() Option {
	return func(c *Config) error {
		c.disableNative = true
		return nil
	}
}

// WithDateBackend replaces the date backend. A nil backend makes every
// date/time format call fail with ErrNativeBackendUnavailable.
func WithDateBackend(backend DateBackend) Option {
	return func(c *Config) error {
		c.dateBackend = backend
		c.dateBackendSet = true
		return nil
	}
}

// WithRelativeTimeCatalog layers phrase files (.json, .yaml, .yml, .toml)
// over the builtin relative time phrases.
func WithRelativeTimeCatalog(paths ...string) Option {
	return func(c *Config) error {
		if len(paths) == 0 {
			return nil
		}
		c.catalogLoaders = append(c.catalogLoaders, NewFileLoader(paths...))
		return nil
	}
}

func WithCatalogLoader(loader Loader) Option {
	return func(c *Config) error {
		if loader != nil {
			c.catalogLoaders = append(c.catalogLoaders, loader)
		}
		return nil
	}
}

// WithFormatterProvider registers per-locale helper overrides on the registry
func WithFormatterProvider(locale string, provider FormatterProvider) Option {
	return func(c *Config) error {
		if locale == "" || provider == nil {
			return nil
		}
		if c.formatterProviders == nil {
			c.formatterProviders = make(map[string]FormatterProvider)
		}
		c.formatterProviders[locale] = provider
		return nil
	}
}

func (cfg *Config) Numbers() *NumberFormatter {
	if cfg == nil {
		return nil
	}
	return cfg.numbers
}

func (cfg *Config) Currencies() *CurrencyFormatter {
	if cfg == nil {
		return nil
	}
	return cfg.currencies
}

func (cfg *Config) DateTimes() *DateTimeFormatter {
	if cfg == nil {
		return nil
	}
	return cfg.dates
}

// Phrases exposes the merged relative time catalogs.
func (cfg *Config) Phrases() Store {
	if cfg == nil {
		return nil
	}
	return cfg.phrases
}

func (cfg *Config) FormatterRegistry() *FormatterRegistry {
	if cfg == nil {
		return nil
	}
	cfg.registryOnce.Do(cfg.buildFormatterRegistry)
	return cfg.formatterRegistry
}

func (cfg *Config) TemplateHelpers(helperCfg HelperConfig) map[string]any {
	if cfg == nil {
		return TemplateHelpers(nil, helperCfg)
	}
	if helperCfg.DefaultLocale == "" {
		helperCfg.DefaultLocale = cfg.DefaultLocale
	}
	return TemplateHelpers(cfg.FormatterRegistry(), helperCfg)
}

func (cfg *Config) buildFormatterRegistry() {
	options := []FormatterRegistryOption{
		WithFormatterRegistryDefaults(cfg.helperFuncs()),
		WithFormatterRegistryDefaultLocale(cfg.DefaultLocale),
	}
	for locale, provider := range cfg.formatterProviders {
		options = append(options, WithFormatterRegistryProvider(locale, provider))
	}
	cfg.formatterRegistry = NewFormatterRegistry(options...)
}

// formatterDeps is the shared, read only state every formatter carries.
type formatterDeps struct {
	defaultLocale string
	logger        *slog.Logger
	hooks         []FormatHook
}

func (d formatterDeps) locale(locale string) string {
	if strings.TrimSpace(locale) == "" {
		return ResolveLocale(d.defaultLocale)
	}
	return ResolveLocale(locale)
}

// phraseLocale keeps the caller's tag so catalogs for unsupported locales
// can still be found.
func (d formatterDeps) phraseLocale(locale string) string {
	if strings.TrimSpace(locale) == "" {
		return d.defaultLocale
	}
	return locale
}

func (d formatterDeps) run(op, locale string, input any, fn func(ctx *FormatHookContext)) *FormatHookContext {
	ctx := &FormatHookContext{Operation: op, Locale: locale, Input: input}
	return runHooks(d.hooks, ctx, fn)
}

func (d formatterDeps) log() *slog.Logger {
	if d.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.logger
}

func loadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "UTC") {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, name, err)
	}
	return loc, nil
}
