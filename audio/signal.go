// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"
)

// Signal is a fully decoded mono sample sequence.
//
// A Signal is never shared between pipeline stages for writing: every stage
// that derives a new signal allocates its own Samples slice.
type Signal struct {
	Samples    []float32
	SampleRate int
}

// Len returns the number of samples.
func (s *Signal) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Samples)
}

// Duration returns the playing time of the signal.
func (s *Signal) Duration() time.Duration {
	if s == nil || s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(s.Samples)) / float64(s.SampleRate) * float64(time.Second))
}

// Float64 returns a copy of the samples widened to float64.
func (s *Signal) Float64() []float64 {
	if s == nil {
		return nil
	}
	out := make([]float64, len(s.Samples))
	for i, v := range s.Samples {
		out[i] = float64(v)
	}
	return out
}

// Clone returns a deep copy of s.
func (s *Signal) Clone() *Signal {
	if s == nil {
		return nil
	}
	samples := make([]float32, len(s.Samples))
	copy(samples, s.Samples)
	return &Signal{Samples: samples, SampleRate: s.SampleRate}
}

// ReadAll drains a mono source into a Signal.
// Multi-channel sources must be wrapped in a MonoMixer first; their samples
// would otherwise be collected interleaved.
func ReadAll(src Source) (*Signal, error) {
	if src == nil {
		return nil, ErrNilSource
	}

	bufSize := src.BufSize()
	if bufSize <= 0 {
		bufSize = 4096
	}

	// Start with ~2 seconds and let append grow from there
	samples := make([]float32, 0, max(src.SampleRate()*2, bufSize))
	buf := make([]float32, bufSize)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read samples: %w", err)
		}

		// a source that returns (0, nil) forever would spin; treat it as done
		if n == 0 {
			break
		}
	}

	return &Signal{Samples: samples, SampleRate: src.SampleRate()}, nil
}
