// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio integer PCM decoders (WAV, AIFF) to
// audio.Source.
package pcm

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

var ErrUnsupportedBitDepth = errors.New("unsupported PCM bit depth")

// Reader is the subset of the go-audio wav and aiff decoders used here.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source converts integer PCM read from a Reader to float32 in [-1,1].
type Source struct {
	dec        Reader
	sampleRate int
	channels   int
	scale      float32
	bias       float32 // midpoint of unsigned encodings
	buf        *goaudio.IntBuffer
}

// NewSource wraps dec. unsigned marks encodings whose zero level is the
// midpoint of the range (8-bit WAV).
func NewSource(dec Reader, bitDepth int, unsigned bool) (*Source, error) {
	scale, err := FullScale(bitDepth)
	if err != nil {
		return nil, err
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("pcm: invalid format %+v", format)
	}

	s := &Source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		scale:      scale,
	}
	if unsigned {
		s.bias = scale
	}

	return s, nil
}

// FullScale returns the magnitude of the most negative sample for bitDepth.
func FullScale(bitDepth int) (float32, error) {
	switch bitDepth {
	case 8:
		return 128.0, nil
	case 16:
		return 32768.0, nil
	case 24:
		return 8388608.0, nil
	case 32:
		return 2147483648.0, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }

func (s *Source) BufSize() int {
	if s.buf != nil {
		return cap(s.buf.Data)
	}
	return 4096
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.buf == nil || cap(s.buf.Data) < len(dst) {
		s.buf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	} else {
		s.buf.Data = s.buf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.buf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("pcm: %w", err)
		}
		return 0, io.EOF
	}

	for i, v := range s.buf.Data[:n] {
		dst[i] = (float32(v) - s.bias) / s.scale
	}

	switch {
	case err == io.EOF:
		return n, io.EOF
	case err != nil:
		return n, fmt.Errorf("pcm: %w", err)
	case n < len(dst):
		// short read without error: the decoder ran out of data
		return n, io.EOF
	}

	return n, nil
}
