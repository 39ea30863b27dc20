package l10n

import (
	"errors"
	"fmt"
)

// ErrNativeBackendUnavailable marks calls that need a native backend when none is configured
// or the configured one does not handle the locale.
var ErrNativeBackendUnavailable = errors.New("l10n: native backend unavailable")

// ErrUnknownPreset is returned for preset values outside short/medium/long/full.
var ErrUnknownPreset = errors.New("l10n: unknown format preset")

// ErrInvalidTimezone is returned when a timezone name cannot be loaded.
var ErrInvalidTimezone = errors.New("l10n: invalid timezone")

// ErrInvalidCatalog is returned when a phrase catalog template cannot render
// a relative time phrase.
var ErrInvalidCatalog = errors.New("l10n: invalid phrase catalog")

var errNativeOutput = errors.New("l10n: native backend returned malformed output")

// FormatError describes a date/time formatting failure. It wraps one of the
// package sentinels so callers can use errors.Is.
type FormatError struct {
	Op     string
	Locale string
	Err    error
}

func (e *FormatError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Locale == "" {
		return fmt.Sprintf("l10n: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("l10n: %s (%s): %v", e.Op, e.Locale, e.Err)
}

func (e *FormatError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
