/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package validator

// checkMissingSpaces scans the raw text for a marker immediately
// followed by another backslash, the \name\ pattern that normally
// means a separating space was dropped. The scan tracks chapter and
// verse markers itself since it runs before tokenization.
func (c *Checker) checkMissingSpaces(text string) {
	chapter := 1
	verse := 0
	verseStart := 0

	i := 0
	for i < len(text) {
		if text[i] != '\\' {
			i++
			continue
		}
		j := i + 1
		for j < len(text) && isMarkerByte(text[j]) {
			if text[j] == '*' {
				j++
				break
			}
			j++
		}
		name := text[i+1 : j]

		switch name {
		case "c":
			if n, ok := numberAfter(text, j); ok {
				chapter = n
				verse = 0
				verseStart = i
			}
		case "v":
			if n, ok := numberAfter(text, j); ok {
				verse = n
				verseStart = i
			}
		}

		if j < len(text) && text[j] == '\\' {
			c.diags = append(c.diags, &Diagnostic{
				Book:    c.book,
				Chapter: chapter,
				Verse:   verse,
				Offset:  i - verseStart,
				Marker:  name,
				Key:     msgMissingSpace,
			})
			c.errorsSeen = true
		}
		i = j
	}
}

// isMarkerByte reports whether b can be part of a marker tag.
func isMarkerByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '+' || b == '-' || b == '*':
		return true
	}
	return false
}

// numberAfter parses the whitespace-separated number following a
// chapter or verse marker.
func numberAfter(text string, i int) (int, bool) {
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	n := 0
	seen := false
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		n = n*10 + int(text[i]-'0')
		i++
		seen = true
	}
	return n, seen
}
