/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package style

import (
	"fmt"

	mcfs "github.com/jwickberg/MarkerCheck/fs"
)

// StandardFileName is the stylesheet the tool looks for in its
// working directory.
const StandardFileName = "usfm.sty"

// Load builds the catalog for a run. An explicit path wins; otherwise
// usfm.sty from the working directory is used when present, falling
// back to the embedded default. Extra stylesheets merge over the base
// in order. Load errors are accumulated, not fatal: the catalog built
// so far is still returned.
func Load(filesystem mcfs.FileSystem, path string, extras ...string) (*Sheet, []Error, error) {
	var sheet *Sheet
	var errs []Error

	switch {
	case path != "":
		data, err := filesystem.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read stylesheet: %w", err)
		}
		sheet, errs = Parse(data)
	case filesystem.Exists(StandardFileName):
		data, err := filesystem.ReadFile(StandardFileName)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read stylesheet: %w", err)
		}
		sheet, errs = Parse(data)
	default:
		sheet, errs = Default()
	}

	for _, extra := range extras {
		data, err := filesystem.ReadFile(extra)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read stylesheet: %w", err)
		}
		overlay, overlayErrs := Parse(data)
		errs = append(errs, overlayErrs...)
		sheet.Merge(overlay)
	}

	return sheet, errs, nil
}
