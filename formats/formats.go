// SPDX-License-Identifier: EPL-2.0

// Package formats wires every bundled decoder into one registry.
package formats

import (
	"github.com/ik5/audviz/audio"
	"github.com/ik5/audviz/formats/aiff"
	"github.com/ik5/audviz/formats/flac"
	"github.com/ik5/audviz/formats/mp3"
	"github.com/ik5/audviz/formats/vorbis"
	"github.com/ik5/audviz/formats/wav"
)

// DefaultRegistry returns a registry with WAV, MP3, Ogg Vorbis, AIFF and FLAC
// decoders registered under their usual extensions.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(wav.Decoder{}, wav.Extensions...)
	reg.Register(mp3.Decoder{}, mp3.Extensions...)
	reg.Register(vorbis.Decoder{}, vorbis.Extensions...)
	reg.Register(aiff.Decoder{}, aiff.Extensions...)
	reg.Register(flac.Decoder{}, flac.Extensions...)
	return reg
}
