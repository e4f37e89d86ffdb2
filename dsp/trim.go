// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"

	"github.com/ik5/audviz/audio"
)

const (
	DefaultTrimFrameLength = 512
	DefaultTrimHopLength   = 64

	// amplitudeFloor keeps log10 finite; RMS below it counts as silence.
	amplitudeFloor = 1e-5
)

// Trimmed is a signal with leading and trailing silence removed.
// Start and End locate the kept samples in the source signal as [Start, End).
type Trimmed struct {
	Signal *audio.Signal
	Start  int
	End    int
}

// Empty reports whether nothing was kept.
func (t *Trimmed) Empty() bool { return t == nil || t.Signal.Len() == 0 }

type trimOptions struct {
	frameLength int
	hopLength   int
}

// TrimOption tunes Trim.
type TrimOption func(*trimOptions)

// WithFrameLength sets the RMS analysis window in samples.
func WithFrameLength(n int) TrimOption {
	return func(o *trimOptions) {
		if n > 0 {
			o.frameLength = n
		}
	}
}

// WithHopLength sets the distance between analysis frames in samples.
func WithHopLength(n int) TrimOption {
	return func(o *trimOptions) {
		if n > 0 {
			o.hopLength = n
		}
	}
}

// Trim removes leading and trailing silence from sig.
//
// The signal is cut into centered frames and the RMS of each frame is
// compared to the loudest one. Frames within topDB decibels of the peak are
// non-silent; everything before the first and after the last such frame is
// dropped. Silence between them is kept. A negative topDB is treated as 0.
// The kept interval always covers the samples at peak amplitude, even when
// a louder frame elsewhere sets the reference.
//
// A signal with no energy at all trims to an empty result. The returned
// samples never alias sig.
func Trim(sig *audio.Signal, topDB float64, opts ...TrimOption) *Trimmed {
	o := trimOptions{frameLength: DefaultTrimFrameLength, hopLength: DefaultTrimHopLength}
	for _, opt := range opts {
		opt(&o)
	}
	topDB = max(topDB, 0)

	rate := 0
	if sig != nil {
		rate = sig.SampleRate
	}
	empty := &Trimmed{Signal: &audio.Signal{Samples: []float32{}, SampleRate: rate}}

	if sig.Len() == 0 {
		return empty
	}

	rms := frameRMS(sig.Samples, o.frameLength, o.hopLength)

	peak := 0.0
	for _, v := range rms {
		peak = max(peak, v)
	}
	if peak < amplitudeFloor {
		return empty
	}

	ref := 20 * math.Log10(peak)
	first, last := -1, -1
	for i, v := range rms {
		db := 20*math.Log10(max(v, amplitudeFloor)) - ref
		if db >= -topDB {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return empty
	}

	n := sig.Len()
	start := min(first*o.hopLength, n)
	end := min(n, (last+1)*o.hopLength)

	if lo, hi := peakSpan(sig.Samples); lo >= 0 {
		start, end = min(start, lo), max(end, hi+1)
	}

	kept := make([]float32, end-start)
	copy(kept, sig.Samples[start:end])

	return &Trimmed{
		Signal: &audio.Signal{Samples: kept, SampleRate: sig.SampleRate},
		Start:  start,
		End:    end,
	}
}

// peakSpan returns the first and last index holding the peak absolute
// amplitude. Both are -1 when every sample is zero.
func peakSpan(samples []float32) (first, last int) {
	first, last = -1, -1
	var peak float32
	for i, v := range samples {
		a := max(v, -v)
		switch {
		case a > peak:
			peak, first, last = a, i, i
		case a == peak && peak > 0:
			last = i
		}
	}
	return first, last
}

// frameRMS returns the RMS of 1+len/hop frames of frameLength samples,
// centered by frameLength/2 zeros of padding on both sides.
func frameRMS(samples []float32, frameLength, hop int) []float64 {
	// prefix sums of squares; padded zeros contribute nothing
	prefix := make([]float64, len(samples)+1)
	for i, v := range samples {
		prefix[i+1] = prefix[i] + float64(v)*float64(v)
	}

	pad := frameLength / 2
	frames := 1 + len(samples)/hop
	out := make([]float64, frames)
	for i := range out {
		lo := min(max(i*hop-pad, 0), len(samples))
		hi := min(max(i*hop-pad+frameLength, 0), len(samples))
		energy := max(prefix[hi]-prefix[lo], 0)
		out[i] = math.Sqrt(energy / float64(frameLength))
	}

	return out
}
