package l10n

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/ar"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/hi"
	"github.com/go-playground/locales/it"
	"github.com/go-playground/locales/ja"
	"github.com/go-playground/locales/ko"
	"github.com/go-playground/locales/pt"
	"github.com/go-playground/locales/ru"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/goodsign/monday"
)

// DateBackend renders and parses calendar values. There is no manual
// fallback for dates: callers surface backend errors.
type DateBackend interface {
	Name() string
	Supports(locale string) bool
	FormatDate(t time.Time, preset FormatPreset, locale string) (string, error)
	FormatTime(t time.Time, preset FormatPreset, locale string) (string, error)
	FormatDateTime(t time.Time, preset FormatPreset, locale string) (string, error)
	Parse(value string, preset FormatPreset, locale string, loc *time.Location) (time.Time, error)
}

const cldrBackendName = "cldr"

var errUnparseable = errors.New("l10n: value does not match any layout")

// Locales with a goodsign/monday month and weekday translation. Arabic and
// Hindi are only read through the translator names.
var mondayLocales = map[string]monday.Locale{
	"en": monday.LocaleEnUS,
	"fr": monday.LocaleFrFR,
	"de": monday.LocaleDeDE,
	"es": monday.LocaleEsES,
	"it": monday.LocaleItIT,
	"pt": monday.LocalePtBR,
	"ru": monday.LocaleRuRU,
	"zh": monday.LocaleZhCN,
	"ja": monday.LocaleJaJP,
	"ko": monday.LocaleKoKR,
}

type cldrDateBackend struct {
	universal *ut.UniversalTranslator
	parsing   map[string]monday.Locale
}

var _ DateBackend = (*cldrDateBackend)(nil)

// CLDRDateBackend renders dates with go-playground/locales data and parses
// them back against the same CLDR patterns, with goodsign/monday as a
// lenient second pass.
func CLDRDateBackend() DateBackend {
	fallback := en.New()
	universal := ut.New(fallback,
		fallback,
		fr.New(),
		de.New(),
		es.New(),
		it.New(),
		pt.New(),
		ru.New(),
		ar.New(),
		zh.New(),
		ja.New(),
		ko.New(),
		hi.New(),
	)

	return &cldrDateBackend{universal: universal, parsing: mondayLocales}
}

func (b *cldrDateBackend) Name() string { return cldrBackendName }

func (b *cldrDateBackend) Supports(locale string) bool {
	if b == nil || b.universal == nil {
		return false
	}
	_, found := b.universal.GetTranslator(locale)
	return found
}

func (b *cldrDateBackend) translator(locale string) (locales.Translator, error) {
	if b == nil || b.universal == nil {
		return nil, ErrNativeBackendUnavailable
	}
	trans, found := b.universal.GetTranslator(locale)
	if !found {
		return nil, fmt.Errorf("%w: no calendar data for %q", ErrNativeBackendUnavailable, locale)
	}
	return trans, nil
}

func (b *cldrDateBackend) FormatDate(t time.Time, preset FormatPreset, locale string) (out string, err error) {
	defer recoverBackend(&out, &err)

	trans, err := b.translator(locale)
	if err != nil {
		return "", err
	}

	switch preset {
	case PresetShort:
		return trans.FmtDateShort(t), nil
	case PresetMedium:
		return trans.FmtDateMedium(t), nil
	case PresetLong:
		return trans.FmtDateLong(t), nil
	case PresetFull:
		return trans.FmtDateFull(t), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownPreset, preset)
	}
}

func (b *cldrDateBackend) FormatTime(t time.Time, preset FormatPreset, locale string) (out string, err error) {
	defer recoverBackend(&out, &err)

	trans, err := b.translator(locale)
	if err != nil {
		return "", err
	}

	switch preset {
	case PresetShort:
		return trans.FmtTimeShort(t), nil
	case PresetMedium:
		return trans.FmtTimeMedium(t), nil
	case PresetLong:
		return trans.FmtTimeLong(t), nil
	case PresetFull:
		return trans.FmtTimeFull(t), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownPreset, preset)
	}
}

func (b *cldrDateBackend) FormatDateTime(t time.Time, preset FormatPreset, locale string) (string, error) {
	date, err := b.FormatDate(t, preset, locale)
	if err != nil {
		return "", err
	}
	clock, err := b.FormatTime(t, preset, locale)
	if err != nil {
		return "", err
	}
	return date + lookupDateTimeGlue(locale) + clock, nil
}

// Parse tries the combined pattern for preset, then date only, then time
// only. Each pattern is matched against the translator's own month, weekday
// and period names first. monday then retries the same layouts so the bare
// abbreviations people type ("7 mar 2024") are accepted too.
func (b *cldrDateBackend) Parse(value string, preset FormatPreset, locale string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(foldCalendarText(value))
	if value == "" {
		return time.Time{}, errUnparseable
	}
	if !preset.valid() {
		return time.Time{}, fmt.Errorf("%w: %s", ErrUnknownPreset, preset)
	}
	trans, err := b.translator(locale)
	if err != nil {
		return time.Time{}, err
	}
	patterns, ok := parsePatterns(locale, preset)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: no calendar patterns for %q", ErrNativeBackendUnavailable, locale)
	}
	if loc == nil {
		loc = time.UTC
	}

	names := newCalendarNames(trans)
	for _, pattern := range patterns {
		if t, ok := names.parse(pattern, value, loc); ok {
			return t, nil
		}
	}

	if ml, ok := b.parsing[locale]; ok {
		for _, pattern := range patterns {
			if !lenientPattern(pattern) {
				continue
			}
			if t, err := mondayParse(goLayout(pattern), value, loc, ml); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, errUnparseable
}

// lenientPattern reports whether monday can add anything for pattern: it
// only knows other spellings of month names, and time.Parse never checks
// weekdays.
func lenientPattern(pattern string) bool {
	return strings.Contains(pattern, "{MMM") && !strings.Contains(pattern, "{EEEE}")
}

// mondayParse guards monday.ParseInLocation, whose word matching can slice
// past short input.
func mondayParse(layout, value string, loc *time.Location, ml monday.Locale) (t time.Time, err error) {
	defer func() {
		if r := recover(); r != nil {
			t, err = time.Time{}, fmt.Errorf("%w: %v", errUnparseable, r)
		}
	}()
	return monday.ParseInLocation(layout, value, loc, ml)
}

func recoverBackend(out *string, err *error) {
	if r := recover(); r != nil {
		*out = ""
		*err = fmt.Errorf("%w: %v", ErrNativeBackendUnavailable, r)
	}
}
