// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the input has no FORM/AIFF header.
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrUnsupportedAiffLayout indicates a COMM chunk without usable format data.
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
)
