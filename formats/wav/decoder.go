// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/riff"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/audviz/audio"
	"github.com/ik5/audviz/internal/pcm"
)

const (
	formatPCM        = 1      // WAVE_FORMAT_PCM
	formatExtensible = 0xFFFE // WAVE_FORMAT_EXTENSIBLE, real format in the SubFormat GUID

	extensibleFmtSize = 40
)

// guidTail is the part of every KSDATAFORMAT_SUBTYPE_* GUID that follows the
// two byte format code.
var guidTail = []byte{0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71}

// Extensions handled by this decoder.
var Extensions = []string{"wav", "wave"}

type Decoder struct{}

// Decode parses the RIFF header and returns a source positioned at the
// first PCM sample. Any chunk layout go-audio understands is accepted.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := audio.Seekable(r)
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	start, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("wav: read info: %w", err)
	}

	format := dec.WavAudioFormat
	if format == formatExtensible {
		if format, err = subFormat(rs, start); err != nil {
			return nil, fmt.Errorf("wav: extensible fmt: %w", err)
		}
	}
	if format != formatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrOnlyIntegerPCM, format)
	}
	if dec.NumChans == 0 || dec.SampleRate == 0 {
		return nil, ErrUnsupportedWavLayout
	}

	// 8-bit WAV is stored unsigned
	src, err := pcm.NewSource(dec, int(dec.BitDepth), dec.BitDepth == 8)
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	return src, nil
}

// subFormat reads the format code from the SubFormat GUID of an extensible
// fmt chunk. The RIFF stream begins at start; rs is returned to its current
// position afterwards.
func subFormat(rs io.ReadSeeker, start int64) (uint16, error) {
	pos, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	defer rs.Seek(pos, io.SeekStart) //nolint:errcheck

	if _, err := rs.Seek(start, io.SeekStart); err != nil {
		return 0, err
	}

	p := riff.New(rs)
	if err := p.ParseHeaders(); err != nil {
		return 0, err
	}

	for {
		ch, err := p.NextChunk()
		if err != nil {
			return 0, err
		}
		if ch.ID != riff.FmtID {
			ch.Drain()
			continue
		}
		if ch.Size < extensibleFmtSize {
			return 0, ErrUnsupportedWavLayout
		}

		var fmtChunk [extensibleFmtSize]byte
		if _, err := io.ReadFull(ch, fmtChunk[:]); err != nil {
			return 0, err
		}
		guid := fmtChunk[24:]
		if !bytes.Equal(guid[2:], guidTail) {
			return 0, ErrUnsupportedWavLayout
		}
		return binary.LittleEndian.Uint16(guid[:2]), nil
	}
}
