/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package l10n provides message-key translation for diagnostics.
package l10n

import (
	"fmt"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Translator renders a message key to display text.
type Translator func(key string) string

// Default renders the raw key in the diagnostic wire format: "#key".
// This is the behavior the checker uses when no catalog is injected.
func Default(key string) string {
	return "#" + key
}

// Catalog is a set of message translations for one locale.
type Catalog struct {
	// Tag is the BCP-47 tag this catalog translates into.
	Tag language.Tag

	messages map[string]string
}

// Load parses a YAML message catalog. The document is a flat mapping of
// message keys to translated strings, plus an optional "locale" entry.
func Load(data []byte) (*Catalog, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse message catalog: %w", err)
	}

	tag := language.Und
	if loc, ok := raw["locale"]; ok {
		parsed, err := language.Parse(loc)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", loc, err)
		}
		tag = parsed
		delete(raw, "locale")
	}

	return &Catalog{Tag: tag, messages: raw}, nil
}

// Translate implements Translator over the catalog, falling back to the
// "#key" form for keys the catalog does not carry.
func (c *Catalog) Translate(key string) string {
	if msg, ok := c.messages[key]; ok {
		return msg
	}
	return Default(key)
}

// Match selects the catalog best matching the requested locale.
// Returns nil when no catalog matches at all.
func Match(requested string, catalogs []*Catalog) *Catalog {
	if len(catalogs) == 0 {
		return nil
	}

	tags := make([]language.Tag, len(catalogs))
	for i, c := range catalogs {
		tags[i] = c.Tag
	}

	matcher := language.NewMatcher(tags)
	_, index, confidence := matcher.Match(language.Make(requested))
	if confidence == language.No {
		return nil
	}
	return catalogs[index]
}
