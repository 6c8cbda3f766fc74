package i18n

import (
	"sort"
	"strings"
)

// TranslationSet is the complete string table for one language. Tables are
// nested maps keyed by path segments (common.*, products.labels.*, nav.*).
// Exactly one set should exist per language; uniqueness is a store-level
// invariant that this package assumes rather than enforces.
type TranslationSet struct {
	Locale string
	Table  map[string]any
}

// Lookup walks a dot-separated key path into the nested table. It returns
// false when any segment is absent or resolves to a non-string leaf.
func (s *TranslationSet) Lookup(keyPath string) (string, bool) {
	if s == nil || len(s.Table) == 0 {
		return "", false
	}

	segments := strings.Split(keyPath, ".")
	var node any = s.Table
	for _, segment := range segments {
		table, ok := node.(map[string]any)
		if !ok {
			return "", false
		}
		node, ok = table[segment]
		if !ok {
			return "", false
		}
	}

	leaf, ok := node.(string)
	if !ok || leaf == "" {
		return "", false
	}
	return leaf, true
}

// Bundle holds every translation set currently known to the site. The
// available locale list is data-driven: whatever the store enumerated at load
// time is what the bundle exposes, plus the configured default.
type Bundle struct {
	defaultLocale string
	sets          map[string]*TranslationSet
}

// NewBundle constructs an empty bundle with the given default locale.
func NewBundle(defaultLocale string) *Bundle {
	return &Bundle{
		defaultLocale: normalizeLocale(defaultLocale),
		sets:          make(map[string]*TranslationSet),
	}
}

// Add registers a translation set, replacing any previous set for the locale.
func (b *Bundle) Add(set *TranslationSet) {
	if b == nil || set == nil {
		return
	}
	locale := normalizeLocale(set.Locale)
	if locale == "" {
		return
	}
	b.sets[locale] = &TranslationSet{Locale: locale, Table: set.Table}
}

// Set returns the translation set for a locale, if loaded.
func (b *Bundle) Set(locale string) (*TranslationSet, bool) {
	if b == nil {
		return nil, false
	}
	set, ok := b.sets[normalizeLocale(locale)]
	return set, ok
}

// Has reports whether the locale is in the store-enumerated available set.
func (b *Bundle) Has(locale string) bool {
	_, ok := b.Set(locale)
	return ok
}

// DefaultLocale returns the configured fallback language.
func (b *Bundle) DefaultLocale() string {
	if b == nil {
		return ""
	}
	return b.defaultLocale
}

// Available lists the loaded locale codes in stable sorted order.
func (b *Bundle) Available() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.sets))
	for locale := range b.sets {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

func normalizeLocale(locale string) string {
	return strings.ToLower(strings.TrimSpace(locale))
}
