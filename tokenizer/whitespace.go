/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package tokenizer

import (
	"strings"
	"unicode"
)

const (
	zwsp           = '\u200b' // zero width space
	ideographSpace = '\u3000' // ideographic space, always significant
)

// isNonSemanticWhitespace reports whether r is whitespace the
// normalizer may collapse. U+3000 is always significant; the zero
// width space is never. ZWJ and ZWNJ are not whitespace at all.
func isNonSemanticWhitespace(r rune) bool {
	return (unicode.IsSpace(r) && r != ideographSpace) || r == zwsp
}

// RegularizeSpaces normalizes whitespace: control characters, CR, LF,
// and TAB collapse to single spaces, runs of non-semantic whitespace
// collapse to one, and a zero width space directly before whitespace
// is dropped. The operation is idempotent.
func RegularizeSpaces(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	runes := []rune(text)
	wasSpace := false
	for i, r := range runes {
		switch {
		case r < 0x20:
			if !wasSpace {
				sb.WriteByte(' ')
			}
			wasSpace = true
		case r == zwsp && i+1 < len(runes) && isNonSemanticWhitespace(runes[i+1]):
			// dropped
		case isNonSemanticWhitespace(r):
			if !wasSpace {
				sb.WriteByte(' ')
			}
			wasSpace = true
		default:
			sb.WriteRune(r)
			wasSpace = false
		}
	}
	return sb.String()
}
