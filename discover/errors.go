// SPDX-License-Identifier: EPL-2.0

package discover

import "errors"

var (
	ErrNoExtensions   = errors.New("no extensions to discover")
	ErrEmptyExtension = errors.New("empty extension")
)
