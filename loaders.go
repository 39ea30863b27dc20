package l10n

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// FileLoader reads phrase catalogs from JSON, YAML or TOML files. Later
// files override earlier ones key by key.
type FileLoader struct {
	fsys  fs.FS
	paths []string
}

func NewFileLoader(paths ...string) *FileLoader {
	return &FileLoader{paths: append([]string(nil), paths...)}
}

// NewFSLoader reads the given paths from fsys, e.g. an embed.FS.
func NewFSLoader(fsys fs.FS, paths ...string) *FileLoader {
	return &FileLoader{fsys: fsys, paths: append([]string(nil), paths...)}
}

func (l *FileLoader) Load() (Catalogs, error) {
	if l == nil || len(l.paths) == 0 {
		return nil, errors.New("l10n: no loader paths configured")
	}

	buckets := make(map[string]map[string]Message)

	for _, path := range l.paths {
		data, err := l.read(path)
		if err != nil {
			return nil, fmt.Errorf("l10n: read %s: %w", path, err)
		}

		src, err := decodeCatalogFile(path, data)
		if err != nil {
			return nil, fmt.Errorf("l10n: decode %s: %w", path, err)
		}
		mergeMessageBuckets(buckets, src)
	}

	catalogs := make(Catalogs, len(buckets))
	for locale, messages := range buckets {
		catalogs[locale] = &Catalog{Locale: locale, Messages: messages}
	}
	return catalogs, nil
}

func (l *FileLoader) read(path string) ([]byte, error) {
	if l.fsys != nil {
		return fs.ReadFile(l.fsys, path)
	}
	return os.ReadFile(path)
}

func decodeCatalogFile(path string, data []byte) (map[string]map[string]Message, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var raw map[string]map[string]any
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("yaml parse error: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, fmt.Errorf("toml parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported extension %s", ext)
	}

	if len(raw) == 0 {
		return nil, errors.New("empty catalog")
	}

	catalogs := make(map[string]map[string]Message, len(raw))
	for locale, messages := range raw {
		if locale == "" {
			return nil, fmt.Errorf("empty locale in %s", path)
		}
		locale = normalizeLocale(locale)

		catalog := make(map[string]Message, len(messages))
		for key, value := range messages {
			if key == "" {
				return nil, fmt.Errorf("empty key in %s/%s", locale, path)
			}

			message, err := buildMessageFromValue(locale, key, value, path)
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", locale, key, err)
			}
			catalog[key] = message
		}
		catalogs[locale] = catalog
	}

	return catalogs, nil
}

func buildMessageFromValue(locale, key string, value any, source string) (Message, error) {
	switch v := value.(type) {
	case string:
		return buildMessageFromVariants(locale, key, map[PluralCategory]string{PluralOther: v}, source)
	case map[string]any:
		variants := make(map[PluralCategory]string, len(v))
		for category, template := range v {
			cat, err := parsePluralCategory(category)
			if err != nil {
				return Message{}, err
			}
			templateStr, ok := template.(string)
			if !ok {
				return Message{}, fmt.Errorf("plural variant %s must be a string, got %T", category, template)
			}
			variants[cat] = templateStr
		}
		return buildMessageFromVariants(locale, key, variants, source)
	default:
		return Message{}, fmt.Errorf("unsupported message value type: %T", value)
	}
}

func buildMessageFromVariants(locale, key string, variants map[PluralCategory]string, source string) (Message, error) {
	if len(variants) == 0 {
		return Message{}, fmt.Errorf("no variants defined for %s", key)
	}

	if _, ok := variants[PluralOther]; !ok {
		if len(variants) > 1 {
			return Message{}, fmt.Errorf("missing 'other' plural form for %s", key)
		}
		for category, template := range variants {
			variants[PluralOther] = template
			delete(variants, category)
		}
	}

	message := Message{
		MessageMetadata: MessageMetadata{
			ID:     key,
			Domain: inferDomain(key),
			Locale: locale,
		},
		Variants: make(map[PluralCategory]MessageVariant, len(variants)),
	}

	for category, template := range variants {
		message.SetVariant(category, buildVariant(template, source))
	}

	return message, nil
}

func buildVariant(template, source string) MessageVariant {
	variant := MessageVariant{
		Template:  template,
		Source:    source,
		UsesCount: strings.Contains(template, "{count}"),
	}

	if args := extractFormatArgs(template); len(args) > 0 {
		variant.FormatArgs = args
	}

	return variant
}

func extractFormatArgs(template string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(template, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	args := make([]string, 0, len(matches))

	for _, match := range matches {
		name := strings.TrimSpace(match[1])
		if name == "" || strings.EqualFold(name, "count") {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		args = append(args, name)
	}

	if len(args) == 0 {
		return nil
	}

	sort.Strings(args)
	return args
}

func mergeMessageBuckets(dst, src map[string]map[string]Message) {
	for locale, catalog := range src {
		target := dst[locale]
		if target == nil {
			target = make(map[string]Message, len(catalog))
			dst[locale] = target
		}
		for key, message := range catalog {
			existing, ok := target[key]
			if !ok {
				target[key] = message
				continue
			}
			if existing.Variants == nil {
				existing.Variants = make(map[PluralCategory]MessageVariant)
			}
			for category, variant := range message.Variants {
				existing.Variants[category] = variant
			}
			existing.MessageMetadata = message.MessageMetadata
			target[key] = existing
		}
	}
}

// mergeCatalogs layers src over dst, key by key.
func mergeCatalogs(dst, src Catalogs) Catalogs {
	buckets := make(map[string]map[string]Message, len(dst)+len(src))
	for _, catalogs := range []Catalogs{dst, src} {
		for locale, catalog := range catalogs {
			if catalog == nil {
				continue
			}
			mergeMessageBuckets(buckets, map[string]map[string]Message{locale: cloneMessages(catalog.Messages)})
		}
	}

	out := make(Catalogs, len(buckets))
	for locale, messages := range buckets {
		out[locale] = &Catalog{Locale: locale, Messages: messages}
	}
	return out
}

func cloneMessages(messages map[string]Message) map[string]Message {
	out := make(map[string]Message, len(messages))
	for key, message := range messages {
		out[key] = message.Clone()
	}
	return out
}

func parsePluralCategory(raw string) (PluralCategory, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "one":
		return PluralOne, nil
	case "other":
		return PluralOther, nil
	default:
		return "", fmt.Errorf("unknown plural category %q", raw)
	}
}

func inferDomain(key string) string {
	if idx := strings.Index(key, "."); idx > 0 {
		return key[:idx]
	}
	return "default"
}
