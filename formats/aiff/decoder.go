// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	goaiff "github.com/go-audio/aiff"
	"github.com/ik5/audviz/audio"
	"github.com/ik5/audviz/internal/pcm"
)

// Extensions handled by this decoder.
var Extensions = []string{"aif", "aiff"}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio needs to seek between chunks
	rs, err := audio.Seekable(r)
	if err != nil {
		return nil, fmt.Errorf("aiff: %w", err)
	}

	dec := goaiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.NumChannels == 0 || format.SampleRate == 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	// AIFF PCM is signed at every depth
	src, err := pcm.NewSource(dec, int(dec.BitDepth), false)
	if err != nil {
		return nil, fmt.Errorf("aiff: %w", err)
	}

	return src, nil
}
