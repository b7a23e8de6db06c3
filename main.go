/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Command markercheck validates USFM Scripture books against a marker
// stylesheet.
package main

import (
	"os"

	"github.com/jwickberg/MarkerCheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
