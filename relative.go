package l10n

import (
	"embed"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

//go:embed data/relative_time.yaml
var builtinCatalogFS embed.FS

const builtinRelativeCatalog = "data/relative_time.yaml"

const relativeDomain = "relative"

const (
	keyRelativePast    = "relative.past"
	keyRelativeFuture  = "relative.future"
	keyRelativeJustNow = "relative.just_now"
	keyRelativeUnit    = "relative.unit."
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// SelectRelativeUnit picks the coarsest non-zero bucket for a signed
// difference in seconds and returns its count. Sub-minute differences
// yield UnitJustNow with a zero count.
func SelectRelativeUnit(seconds int64) (RelativeTimeUnit, int64) {
	abs := seconds
	if abs < 0 {
		abs = -abs
	}
	days := abs / secondsPerDay

	switch {
	case days/365 > 0:
		return UnitYear, days / 365
	case days/30 > 0:
		return UnitMonth, days / 30
	case days/7 > 0:
		return UnitWeek, days / 7
	case days > 0:
		return UnitDay, days
	case abs/secondsPerHour > 0:
		return UnitHour, abs / secondsPerHour
	case abs/secondsPerMinute > 0:
		return UnitMinute, abs / secondsPerMinute
	default:
		return UnitJustNow, 0
	}
}

func builtinRelativeCatalogs() (Catalogs, error) {
	return NewFSLoader(builtinCatalogFS, builtinRelativeCatalog).Load()
}

// validateRelativeCatalogs checks every relative time template against the
// placeholders render substitutes: past and future need {count} and may use
// {unit}, unit words and just_now take none.
func validateRelativeCatalogs(catalogs Catalogs) error {
	for _, locale := range slices.Sorted(maps.Keys(catalogs)) {
		catalog := catalogs[locale]
		if catalog == nil {
			continue
		}
		for _, key := range slices.Sorted(maps.Keys(catalog.Messages)) {
			msg := catalog.Messages[key]
			if messageDomain(msg, key) != relativeDomain {
				continue
			}
			for _, category := range slices.Sorted(maps.Keys(msg.Variants)) {
				if err := checkRelativeVariant(locale, key, msg.Variants[category].described()); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func checkRelativeVariant(locale, key string, variant MessageVariant) error {
	source := variant.Source
	if source == "" {
		source = "loader"
	}
	invalid := func(reason string) error {
		return fmt.Errorf("%w: %s %s (%s): %s in %q", ErrInvalidCatalog, locale, key, source, reason, variant.Template)
	}

	switch {
	case key == keyRelativePast || key == keyRelativeFuture:
		if !variant.UsesCount {
			return invalid("missing {count}")
		}
		for _, arg := range variant.FormatArgs {
			if arg != "unit" {
				return invalid("unknown placeholder {" + arg + "}")
			}
		}
	case key == keyRelativeJustNow || strings.HasPrefix(key, keyRelativeUnit):
		if variant.UsesCount || len(variant.FormatArgs) > 0 {
			return invalid("unexpected placeholder")
		}
	}
	return nil
}

func messageDomain(msg Message, key string) string {
	if msg.Domain != "" {
		return msg.Domain
	}
	return inferDomain(key)
}

// relativePhrases renders relative time phrases out of a Store.
type relativePhrases struct {
	store Store
}

// render composes the phrase for seconds, positive meaning the past.
func (p relativePhrases) render(seconds int64, locale string) string {
	unit, count := SelectRelativeUnit(seconds)
	chain := p.chain(locale)

	if unit == UnitJustNow {
		if phrase, ok := p.lookup(chain, keyRelativeJustNow, PluralOther); ok {
			return phrase
		}
		return "just now"
	}

	category := PluralOther
	if count == 1 {
		category = PluralOne
	}

	word, ok := p.lookup(chain, keyRelativeUnit+unit.String(), category)
	if !ok {
		word = unit.String()
		if count != 1 {
			word += "s"
		}
	}

	key := keyRelativePast
	if seconds < 0 {
		key = keyRelativeFuture
	}
	template, ok := p.lookup(chain, key, PluralOther)
	if !ok {
		if seconds < 0 {
			return fmt.Sprintf("in %d %s", count, word)
		}
		return fmt.Sprintf("%d %s ago", count, word)
	}

	return strings.NewReplacer(
		"{count}", strconv.FormatInt(count, 10),
		"{unit}", word,
	).Replace(template)
}

// chain starts at the first locale in the lookup chain that carries a past
// template so a phrase never mixes languages, then falls back to English.
func (p relativePhrases) chain(locale string) []string {
	candidates := localeLookupChain(locale)
	if p.store == nil {
		return candidates
	}
	for i, candidate := range candidates {
		if _, ok := p.store.Get(candidate, keyRelativePast); ok {
			return candidates[i:]
		}
	}
	return []string{DefaultLocale}
}

func (p relativePhrases) lookup(chain []string, key string, category PluralCategory) (string, bool) {
	if p.store == nil {
		return "", false
	}
	for _, locale := range chain {
		msg, ok := p.store.Message(locale, key)
		if !ok {
			continue
		}
		if variant, ok := msg.Variant(category); ok && variant.Template != "" {
			return variant.Template, true
		}
	}
	return "", false
}
