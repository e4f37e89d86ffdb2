// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams using
// github.com/jfreymuth/oggvorbis. Samples come out of the codec as float32
// already, so no scaling happens here.
package vorbis
