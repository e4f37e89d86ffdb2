// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer folds an interleaved multi-channel source into one channel by
// averaging the channels of every frame.
type MonoMixer struct {
	src      Source
	channels int
	scratch  []float32
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src:      src,
		channels: src.Channels(),
		scratch:  make([]float32, 8192),
	}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }

func (m *MonoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("mono mixer: %w", err)
	}
	return nil
}

// ReadSamples writes up to len(dst) mono frames into dst.
func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if m.channels <= 1 {
		return m.src.ReadSamples(dst)
	}

	want := len(dst) * m.channels
	if cap(m.scratch) < want {
		m.scratch = make([]float32, want)
	}
	m.scratch = m.scratch[:want]

	n, err := m.src.ReadSamples(m.scratch)
	if n == 0 {
		return 0, err
	}

	frames := n / m.channels
	if m.channels == 2 {
		for f := range frames {
			dst[f] = (m.scratch[2*f] + m.scratch[2*f+1]) * 0.5
		}
		return frames, err
	}

	inv := 1 / float32(m.channels)
	for f := range frames {
		var sum float32
		for _, v := range m.scratch[f*m.channels : (f+1)*m.channels] {
			sum += v
		}
		dst[f] = sum * inv
	}

	return frames, err
}
