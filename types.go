package l10n

import (
	"fmt"
	"strings"
)

// FormatPreset selects the granularity used for date, time and datetime output.
type FormatPreset int

const (
	PresetShort FormatPreset = iota
	PresetMedium
	PresetLong
	PresetFull
)

func (p FormatPreset) String() string {
	switch p {
	case PresetShort:
		return "short"
	case PresetMedium:
		return "medium"
	case PresetLong:
		return "long"
	case PresetFull:
		return "full"
	default:
		return fmt.Sprintf("preset(%d)", int(p))
	}
}

func (p FormatPreset) valid() bool {
	return p >= PresetShort && p <= PresetFull
}

// ParsePreset maps "short", "medium", "long" and "full" (any case) to a FormatPreset.
func ParsePreset(raw string) (FormatPreset, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "short":
		return PresetShort, nil
	case "medium", "":
		return PresetMedium, nil
	case "long":
		return PresetLong, nil
	case "full":
		return PresetFull, nil
	default:
		return PresetMedium, fmt.Errorf("%w: %q", ErrUnknownPreset, raw)
	}
}

// RelativeTimeUnit is ordered from coarsest to finest.
type RelativeTimeUnit int

const (
	UnitYear RelativeTimeUnit = iota
	UnitMonth
	UnitWeek
	UnitDay
	UnitHour
	UnitMinute
	UnitJustNow
)

func (u RelativeTimeUnit) String() string {
	switch u {
	case UnitYear:
		return "year"
	case UnitMonth:
		return "month"
	case UnitWeek:
		return "week"
	case UnitDay:
		return "day"
	case UnitHour:
		return "hour"
	case UnitMinute:
		return "minute"
	case UnitJustNow:
		return "just_now"
	default:
		return fmt.Sprintf("unit(%d)", int(u))
	}
}

type PluralCategory string

const (
	PluralOne   PluralCategory = "one"
	PluralOther PluralCategory = "other"
)

// Catalog holds the phrases loaded for one locale.
type Catalog struct {
	Locale   string
	Messages map[string]Message
}

// Catalogs maps locale codes to their phrase catalog.
type Catalogs map[string]*Catalog

type MessageMetadata struct {
	ID     string
	Domain string
	Locale string
}

type MessageVariant struct {
	Template   string
	FormatArgs []string
	UsesCount  bool
	Source     string
}

type Message struct {
	MessageMetadata
	Variants map[PluralCategory]MessageVariant
}

// Variant returns the requested plural variant, falling back to "other".
func (m Message) Variant(category PluralCategory) (MessageVariant, bool) {
	if m.Variants == nil {
		return MessageVariant{}, false
	}

	if variant, ok := m.Variants[category]; ok {
		return variant, true
	}

	variant, ok := m.Variants[PluralOther]
	return variant, ok
}

func (m *Message) SetVariant(category PluralCategory, variant MessageVariant) {
	if m.Variants == nil {
		m.Variants = make(map[PluralCategory]MessageVariant)
	}
	m.Variants[category] = variant
}

func (m Message) Content() string {
	if variant, ok := m.Variant(PluralOther); ok {
		return variant.Template
	}
	return ""
}

func (m Message) Clone() Message {
	out := Message{MessageMetadata: m.MessageMetadata}
	if len(m.Variants) == 0 {
		return out
	}

	out.Variants = make(map[PluralCategory]MessageVariant, len(m.Variants))
	for category, variant := range m.Variants {
		out.Variants[category] = variant.clone()
	}
	return out
}

// described fills the placeholder metadata of a variant built by hand
// instead of through a FileLoader.
func (v MessageVariant) described() MessageVariant {
	if v.Source != "" || v.UsesCount || len(v.FormatArgs) > 0 {
		return v
	}
	return buildVariant(v.Template, v.Source)
}

func (v MessageVariant) clone() MessageVariant {
	copy := v
	if len(v.FormatArgs) > 0 {
		copy.FormatArgs = append([]string(nil), v.FormatArgs...)
	}
	return copy
}
