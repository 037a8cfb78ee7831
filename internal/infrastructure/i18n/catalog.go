// Package i18n holds the UI string tables. Tables are embedded, parsed once
// and never modified afterwards.
package i18n

import (
	"embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"mannequin/internal/domain/valueobjects"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// TranslationSet maps a string key to its localized text. Treat as read-only.
type TranslationSet map[string]string

// T returns the text for key, or the key itself when it is missing.
func (s TranslationSet) T(key string) string {
	if v, ok := s[key]; ok {
		return v
	}
	return key
}

type Catalog struct {
	sets     map[valueobjects.Language]TranslationSet
	fallback valueobjects.Language
}

// Load parses every supported language and checks that all tables define
// the same keys.
func Load() (*Catalog, error) {
	c := &Catalog{
		sets:     make(map[valueobjects.Language]TranslationSet, len(valueobjects.SupportedLanguages)),
		fallback: valueobjects.English,
	}

	for _, lang := range valueobjects.SupportedLanguages {
		raw, err := localeFS.ReadFile("locales/" + lang.String() + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", lang, err)
		}

		var set TranslationSet
		if err := yaml.Unmarshal(raw, &set); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", lang, err)
		}
		c.sets[lang] = set
	}

	if err := c.checkKeys(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustLoad is Load for package-level wiring and tests.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Set returns the active table for lang, falling back to English.
func (c *Catalog) Set(lang valueobjects.Language) TranslationSet {
	if set, ok := c.sets[lang]; ok {
		return set
	}
	return c.sets[c.fallback]
}

// Keys lists the keys of the fallback table in sorted order.
func (c *Catalog) Keys() []string {
	return sortedKeys(c.sets[c.fallback])
}

func (c *Catalog) checkKeys() error {
	want := sortedKeys(c.sets[c.fallback])
	for lang, set := range c.sets {
		got := sortedKeys(set)
		if !slices.Equal(got, want) {
			return fmt.Errorf("i18n: %s table keys differ from %s", lang, c.fallback)
		}
	}
	return nil
}

func sortedKeys(set TranslationSet) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
