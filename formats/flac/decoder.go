// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audviz/audio"
	"github.com/ik5/audviz/internal/pcm"
	"github.com/mewkiz/flac"
)

// Extensions handled by this decoder.
var Extensions = []string{"flac"}

var ErrUnsupportedFlacLayout = errors.New("unsupported FLAC layout")

// blockReader yields decoded FLAC blocks as one sample slice per channel.
type blockReader interface {
	NextBlock() ([][]int32, error)
	Close() error
}

// streamBlocks adapts *flac.Stream to blockReader.
type streamBlocks struct {
	stream *flac.Stream
}

func (s streamBlocks) NextBlock() ([][]int32, error) {
	f, err := s.stream.ParseNext()
	if err != nil {
		return nil, err
	}

	out := make([][]int32, len(f.Subframes))
	for c, sub := range f.Subframes {
		out[c] = sub.Samples
	}
	return out, nil
}

func (s streamBlocks) Close() error { return s.stream.Close() }

type source struct {
	blocks     blockReader
	sampleRate int
	channels   int
	scale      float32

	pending [][]int32 // current block
	pos     int       // next frame within pending
	done    bool
}

func newSource(blocks blockReader, sampleRate, channels, bitDepth int) (*source, error) {
	scale, err := pcm.FullScale(bitDepth)
	if err != nil {
		return nil, fmt.Errorf("flac: %w", err)
	}
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrUnsupportedFlacLayout, sampleRate, channels)
	}

	return &source{
		blocks:     blocks,
		sampleRate: sampleRate,
		channels:   channels,
		scale:      scale,
	}, nil
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 4096 - 4096%s.channels }

func (s *source) Close() error {
	if err := s.blocks.Close(); err != nil {
		return fmt.Errorf("flac: %w", err)
	}
	return nil
}

func (s *source) blockLen() int {
	if len(s.pending) == 0 {
		return 0
	}
	return len(s.pending[0])
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	frames := len(dst) / s.channels
	written := 0

	for written < frames {
		if s.pos >= s.blockLen() {
			if s.done {
				return written * s.channels, io.EOF
			}

			block, err := s.blocks.NextBlock()
			if err == io.EOF {
				s.done = true
				continue
			}
			if err != nil {
				return written * s.channels, fmt.Errorf("flac: %w", err)
			}
			if len(block) != s.channels {
				return written * s.channels, fmt.Errorf("%w: block has %d channels, stream %d",
					ErrUnsupportedFlacLayout, len(block), s.channels)
			}
			s.pending, s.pos = block, 0
			continue
		}

		n := min(frames-written, s.blockLen()-s.pos)
		for f := range n {
			out := dst[(written+f)*s.channels:]
			for c := range s.channels {
				out[c] = float32(s.pending[c][s.pos+f]) / s.scale
			}
		}
		written += n
		s.pos += n
	}

	return written * s.channels, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("flac: %w", err)
	}

	info := stream.Info
	src, err := newSource(streamBlocks{stream: stream},
		int(info.SampleRate), int(info.NChannels), int(info.BitsPerSample))
	if err != nil {
		_ = stream.Close()
		return nil, err
	}

	return src, nil
}
