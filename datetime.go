package l10n

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// DateTimeFormatter renders dates and times through a DateBackend and
// relative phrases through the phrase catalogs. Unlike numbers, a missing
// or failing backend is a hard error.
type DateTimeFormatter struct {
	backend  DateBackend
	phrases  relativePhrases
	location *time.Location
	clock    func() time.Time
	deps     formatterDeps
}

// NewDateTimeFormatter is a shortcut for NewConfig(opts...).DateTimes().
func NewDateTimeFormatter(opts ...Option) (*DateTimeFormatter, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return cfg.DateTimes(), nil
}

type dateRenderFunc func(b DateBackend, t time.Time, preset FormatPreset, locale string) (string, error)

// Format renders the date and time of value joined by the locale glue.
// value may be a time.Time, *time.Time, a parseable string or a unix
// timestamp; anything else is treated as now. An empty timezone selects
// the configured default.
func (f *DateTimeFormatter) Format(value any, preset FormatPreset, locale, timezone string) (string, error) {
	return f.format(OpFormatDateTime, value, preset, locale, timezone, DateBackend.FormatDateTime)
}

func (f *DateTimeFormatter) FormatDate(value any, preset FormatPreset, locale, timezone string) (string, error) {
	return f.format(OpFormatDate, value, preset, locale, timezone, DateBackend.FormatDate)
}

func (f *DateTimeFormatter) FormatTime(value any, preset FormatPreset, locale, timezone string) (string, error) {
	return f.format(OpFormatTime, value, preset, locale, timezone, DateBackend.FormatTime)
}

func (f *DateTimeFormatter) format(op string, value any, preset FormatPreset, locale, timezone string, render dateRenderFunc) (string, error) {
	resolved := f.deps.locale(locale)
	ctx := f.deps.run(op, resolved, value, func(ctx *FormatHookContext) {
		ctx.SetMetadata("preset", preset.String())
		out, err := f.render(ctx, value, preset, timezone, render)
		if err != nil {
			f.deps.log().Debug("date backend failed",
				slog.String("op", op),
				slog.String("locale", resolved),
				slog.String("backend", ctx.Backend),
				slog.Any("error", err),
			)
		}
		ctx.Result, ctx.Error = out, err
	})
	return ctx.Result, ctx.Error
}

func (f *DateTimeFormatter) render(ctx *FormatHookContext, value any, preset FormatPreset, timezone string, render dateRenderFunc) (string, error) {
	fail := func(err error) (string, error) {
		return "", &FormatError{Op: ctx.Operation, Locale: ctx.Locale, Err: err}
	}

	if !preset.valid() {
		return fail(fmt.Errorf("%w: %s", ErrUnknownPreset, preset))
	}

	loc, err := f.zone(timezone)
	if err != nil {
		return fail(err)
	}

	if f.backend == nil {
		return fail(ErrNativeBackendUnavailable)
	}
	ctx.Backend = f.backend.Name()
	if !f.backend.Supports(ctx.Locale) {
		return fail(fmt.Errorf("%w: %s does not support %q", ErrNativeBackendUnavailable, f.backend.Name(), ctx.Locale))
	}

	out, err := render(f.backend, f.normalize(value).In(loc), preset, ctx.Locale)
	if err != nil {
		if !errors.Is(err, ErrUnknownPreset) && !errors.Is(err, ErrNativeBackendUnavailable) {
			err = fmt.Errorf("%w: %w", ErrNativeBackendUnavailable, err)
		}
		return fail(err)
	}
	return out, nil
}

// FormatRelative describes value relative to now, e.g. "3 days ago" or
// "in 2 hours". Only the coarsest non-zero unit is used.
func (f *DateTimeFormatter) FormatRelative(value any, locale string) string {
	resolved := f.deps.locale(locale)
	phraseLocale := f.deps.phraseLocale(locale)
	ctx := f.deps.run(OpFormatRelative, resolved, value, func(ctx *FormatHookContext) {
		seconds := int64(f.now().Sub(f.normalize(value)) / time.Second)
		unit, count := SelectRelativeUnit(seconds)
		ctx.SetMetadata("unit", unit.String())
		ctx.SetMetadata("count", count)
		ctx.Backend = "catalog"
		ctx.Result = f.phrases.render(seconds, phraseLocale)
	})
	return ctx.Result
}

// Parse reads a string produced by Format, FormatDate or FormatTime for the
// same preset and locale, in the default timezone. Zone names in long and
// full output are matched but not interpreted. Month abbreviations without
// the CLDR punctuation ("7 mar 2024") are accepted where monday knows the
// locale. It reports false instead of guessing.
func (f *DateTimeFormatter) Parse(formatted string, preset FormatPreset, locale string) (time.Time, bool) {
	resolved := f.deps.locale(locale)
	var (
		parsed time.Time
		ok     bool
	)
	f.deps.run(OpParseDate, resolved, formatted, func(ctx *FormatHookContext) {
		if f.backend == nil {
			return
		}
		ctx.Backend = f.backend.Name()
		t, err := f.backend.Parse(formatted, preset, resolved, f.zoneOrDefault())
		if err != nil {
			f.deps.log().Debug("date parse failed",
				slog.String("locale", resolved),
				slog.String("input", formatted),
				slog.Any("error", err),
			)
			return
		}
		parsed, ok = t, true
		ctx.Value = t
	})
	return parsed, ok
}

func (f *DateTimeFormatter) zone(timezone string) (*time.Location, error) {
	if strings.TrimSpace(timezone) == "" {
		return f.zoneOrDefault(), nil
	}
	return loadLocation(timezone)
}

func (f *DateTimeFormatter) zoneOrDefault() *time.Location {
	if f.location == nil {
		return time.UTC
	}
	return f.location
}

func (f *DateTimeFormatter) now() time.Time {
	if f.clock == nil {
		return time.Now()
	}
	return f.clock()
}

// normalize coerces value to a time. Unusable input becomes now.
func (f *DateTimeFormatter) normalize(value any) time.Time {
	switch v := value.(type) {
	case nil:
		return f.now()
	case time.Time:
		return v
	case *time.Time:
		if v == nil {
			return f.now()
		}
		return *v
	case string:
		if strings.TrimSpace(v) == "" {
			return f.now()
		}
	}

	t, err := cast.ToTimeInDefaultLocationE(value, f.zoneOrDefault())
	if err != nil {
		f.deps.log().Debug("unparseable date input, using now",
			slog.Any("input", value),
			slog.Any("error", err),
		)
		return f.now()
	}
	return t
}
