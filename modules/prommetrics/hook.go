// Package prommetrics records formatter activity as Prometheus metrics.
package prommetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	l10n "github.com/goliatone/go-l10n"
)

type options struct {
	namespace string
	registry  prometheus.Registerer
}

// Option configures the metrics hook.
type Option func(*options)

// WithNamespace prefixes every metric name (default "l10n").
func WithNamespace(namespace string) Option {
	return func(o *options) {
		o.namespace = namespace
	}
}

// WithRegisterer registers the collectors somewhere other than the default registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// Hook is an l10n.FormatHook counting calls, manual fallbacks and errors.
type Hook struct {
	calls     *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
	errors    *prometheus.CounterVec
}

var _ l10n.FormatHook = (*Hook)(nil)

// New creates the collectors and registers them. It panics on duplicate
// registration, like promauto.
func New(opts ...Option) *Hook {
	cfg := options{namespace: "l10n", registry: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	factory := promauto.With(cfg.registry)

	return &Hook{
		calls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "calls_total",
			Help:      "Total number of format and parse calls",
		}, []string{"op", "locale", "backend"}),
		fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "native_fallbacks_total",
			Help:      "Total number of calls where the native backend failed and the manual path answered",
		}, []string{"op", "locale"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "errors_total",
			Help:      "Total number of calls that returned an error",
		}, []string{"op", "locale"}),
	}
}

func (h *Hook) BeforeFormat(*l10n.FormatHookContext) {}

func (h *Hook) AfterFormat(ctx *l10n.FormatHookContext) {
	if h == nil || ctx == nil {
		return
	}

	backend := ctx.Backend
	if backend == "" {
		backend = "none"
	}
	h.calls.WithLabelValues(ctx.Operation, ctx.Locale, backend).Inc()

	if ctx.Fallback {
		h.fallbacks.WithLabelValues(ctx.Operation, ctx.Locale).Inc()
	}
	if ctx.Error != nil {
		h.errors.WithLabelValues(ctx.Operation, ctx.Locale).Inc()
	}
}
