package l10n

import (
	"strings"

	"golang.org/x/text/language"
)

// ResolveLocale maps any locale input to one of the supported codes.
// Exact codes win, then the base language of a BCP 47 or POSIX tag
// ("de_DE", "fr-CA"), then DefaultLocale. It never fails.
func ResolveLocale(locale string) string {
	normalized := strings.ToLower(normalizeLocale(locale))
	if normalized == "" {
		return DefaultLocale
	}

	if _, ok := lookupSeparators(normalized); ok {
		return normalized
	}

	if base, ok := baseLanguage(normalized); ok {
		if _, supported := lookupSeparators(base); supported {
			return base
		}
	}

	return DefaultLocale
}

func baseLanguage(locale string) (string, bool) {
	tag, err := language.Parse(locale)
	if err == nil {
		base, confidence := tag.Base()
		if confidence != language.No {
			return base.String(), true
		}
	}

	if idx := strings.Index(locale, "-"); idx > 0 {
		return locale[:idx], true
	}
	return "", false
}

func localeParentTag(locale string) string {
	if locale == "" {
		return ""
	}

	tag, err := language.Parse(locale)
	if err == nil {
		parent := tag.Parent()
		if parent == language.Und {
			return ""
		}
		value := parent.String()
		if value == "" || value == "und" {
			return ""
		}
		return value
	}

	if idx := strings.LastIndex(locale, "-"); idx > 0 {
		return locale[:idx]
	}

	return ""
}

// localeLookupChain lists the catalog keys tried for a phrase: the caller's
// tag, its parents, the resolved supported code and finally DefaultLocale.
func localeLookupChain(locale string) []string {
	chain := localeCandidates(locale)
	for _, candidate := range chain {
		if candidate == DefaultLocale {
			return chain
		}
	}
	return append(chain, DefaultLocale)
}

// localeCandidates is the caller's tag, its parents and the resolved code.
func localeCandidates(locale string) []string {
	normalized := normalizeLocale(locale)

	chain := make([]string, 0, 4)
	seen := make(map[string]struct{}, 4)
	add := func(value string) {
		if value == "" {
			return
		}
		if _, exists := seen[value]; exists {
			return
		}
		seen[value] = struct{}{}
		chain = append(chain, value)
	}

	add(normalized)
	for current := localeParentTag(normalized); current != ""; current = localeParentTag(current) {
		if _, exists := seen[current]; exists {
			break
		}
		add(current)
	}
	add(ResolveLocale(locale))

	return chain
}

// normalizeLocale replaces underscores with hyphens and trims whitespace.
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}
