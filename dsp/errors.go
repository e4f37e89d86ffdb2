// SPDX-License-Identifier: EPL-2.0

package dsp

import "errors"

var ErrInvalidSTFTConfig = errors.New("invalid STFT configuration")
