/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package validator

import "unicode"

// graphemes segments text for ruby gloss counting: combining marks
// attach to the preceding base character, except that a space never
// takes a mark, and every space in a run is its own segment.
func graphemes(text string) []string {
	var segs []string
	cur := ""
	for _, r := range text {
		switch {
		case r == ' ':
			if cur != "" {
				segs = append(segs, cur)
				cur = ""
			}
			segs = append(segs, " ")
		case unicode.In(r, unicode.Mn, unicode.Mc) && cur != "":
			cur += string(r)
		default:
			if cur != "" {
				segs = append(segs, cur)
			}
			cur = string(r)
		}
	}
	if cur != "" {
		segs = append(segs, cur)
	}
	return segs
}
