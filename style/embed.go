/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package style

import _ "embed"

//go:embed usfm.sty
var defaultSheet []byte

// Default returns the catalog parsed from the embedded usfm.sty. The
// embedded sheet is expected to be clean; any load errors are
// returned for the caller to log.
func Default() (*Sheet, []Error) {
	return Parse(defaultSheet)
}
