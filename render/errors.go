// SPDX-License-Identifier: EPL-2.0

package render

import "errors"

var (
	ErrUnknownColormap = errors.New("unknown colormap")
	ErrUnknownAxis     = errors.New("unknown axis type")
	ErrInvalidSize     = errors.New("image size must be positive")
	ErrEmptyPath       = errors.New("output path is empty")
)
