/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package style

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// CSSTheme resolves \ColorName values as CSS color names, for callers
// that want real colors instead of the zero default. Unknown names
// resolve to 0.
func CSSTheme(name string) int {
	c, err := csscolorparser.Parse(name)
	if err != nil {
		return 0
	}
	r, g, b, _ := c.RGBA255()
	return int(r)<<16 | int(g)<<8 | int(b)
}

// HexColor renders a catalog color as a CSS hex string, e.g. "#ff0000".
func HexColor(rgb int) string {
	c := colorful.Color{
		R: float64((rgb>>16)&0xFF) / 255,
		G: float64((rgb>>8)&0xFF) / 255,
		B: float64(rgb&0xFF) / 255,
	}
	return c.Hex()
}
