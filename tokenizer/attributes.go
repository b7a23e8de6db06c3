/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package tokenizer

import (
	"regexp"
	"strings"

	"github.com/jwickberg/MarkerCheck/token"
)

// attributePairPattern matches one name="value" pair.
var attributePairPattern = regexp.MustCompile(`([A-Za-z0-9_-]+)\s*=\s*"([^"]*)"`)

// parseAttributes decodes an attribute specification: one or more
// name="value" pairs separated by whitespace, or a single bare value
// bound to the marker's default attribute. base is the byte offset of
// the specification within the text token it was lexed from. The
// whole spec must be consumed; otherwise no attributes are produced.
func parseAttributes(spec string, base int, defaultAttribute string) (attrs []token.Attribute, bare, ok bool) {
	matches := attributePairPattern.FindAllStringSubmatchIndex(spec, -1)
	if len(matches) > 0 {
		if !onlyWhitespaceBetween(spec, matches) {
			return nil, false, false
		}
		attrs = make([]token.Attribute, 0, len(matches))
		for _, m := range matches {
			attrs = append(attrs, token.Attribute{
				Name:   spec[m[2]:m[3]],
				Value:  spec[m[4]:m[5]],
				Offset: base + m[4],
			})
		}
		return attrs, false, true
	}

	if defaultAttribute == "" {
		return nil, false, false
	}
	trimmed := strings.TrimSpace(spec)
	if trimmed == "" || strings.ContainsAny(trimmed, `="`) {
		return nil, false, false
	}
	offset := base + strings.Index(spec, trimmed)
	return []token.Attribute{{Name: defaultAttribute, Value: trimmed, Offset: offset}}, true, true
}

// onlyWhitespaceBetween verifies the pair matches cover the spec up
// to whitespace.
func onlyWhitespaceBetween(spec string, matches [][]int) bool {
	pos := 0
	for _, m := range matches {
		if strings.TrimSpace(spec[pos:m[0]]) != "" {
			return false
		}
		pos = m[1]
	}
	return strings.TrimSpace(spec[pos:]) == ""
}
