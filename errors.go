// SPDX-License-Identifier: EPL-2.0

package audviz

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrNoExtension       = errors.New("file has no extension")
)
