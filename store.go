package l10n

import (
	"sort"
)

// Store exposes read only access to phrase templates
type Store interface {
	// Get returns the "other" template for locale/key and ok=false if missing
	Get(locale, key string) (string, bool)
	// Message returns the full message payload for locale/key
	Message(locale, key string) (Message, bool)
	// Locales returns the list of locales known to the store
	Locales() []string
}

// Loader retrieves the catalogs used to seed a Store
type Loader interface {
	Load() (Catalogs, error)
}

// LoaderFunc adapts a bare function to the Loader interface
type LoaderFunc func() (Catalogs, error)

func (fn LoaderFunc) Load() (Catalogs, error) {
	return fn()
}

// StaticStore is an in memory store, read only after construction
type StaticStore struct {
	catalogs Catalogs
	locales  []string
}

var _ Store = &StaticStore{}

// NewStaticStore builds an immutable snapshot from the given catalogs
func NewStaticStore(data Catalogs) *StaticStore {
	if len(data) == 0 {
		return &StaticStore{catalogs: make(Catalogs)}
	}

	catalogs := make(Catalogs, len(data))
	locales := make([]string, 0, len(data))

	for locale, catalog := range data {
		if catalog == nil {
			continue
		}
		clone := &Catalog{Locale: catalog.Locale}
		if clone.Locale == "" {
			clone.Locale = locale
		}
		if len(catalog.Messages) > 0 {
			clone.Messages = cloneMessages(catalog.Messages)
		}

		catalogs[locale] = clone
		locales = append(locales, locale)
	}

	sort.Strings(locales)

	return &StaticStore{
		catalogs: catalogs,
		locales:  locales,
	}
}

// NewStaticStoreFromLoader hydrates a StaticStore using the provided loader
func NewStaticStoreFromLoader(loader Loader) (*StaticStore, error) {
	if loader == nil {
		return NewStaticStore(nil), nil
	}

	catalogs, err := loader.Load()
	if err != nil {
		return nil, err
	}

	return NewStaticStore(catalogs), nil
}

func (s *StaticStore) Message(locale, key string) (Message, bool) {
	if s == nil {
		return Message{}, false
	}

	catalog, ok := s.catalogs[locale]
	if !ok || catalog == nil || catalog.Messages == nil {
		return Message{}, false
	}

	msg, ok := catalog.Messages[key]
	if !ok {
		return Message{}, false
	}

	return msg.Clone(), true
}

func (s *StaticStore) Get(locale, key string) (string, bool) {
	msg, ok := s.Message(locale, key)
	if !ok {
		return "", false
	}
	return msg.Content(), true
}

func (s *StaticStore) Locales() []string {
	if s == nil || len(s.locales) == 0 {
		return nil
	}
	out := make([]string, len(s.locales))
	copy(out, s.locales)
	return out
}
