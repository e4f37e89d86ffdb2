// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"
	"testing"

	"github.com/ik5/audviz/audio"
	"github.com/ik5/audviz/internal/audiotest"
)

func TestDominantFrequency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		freq float64
	}{
		{"a4", 440},
		{"low", 110},
		{"high", 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sig := &audio.Signal{Samples: audiotest.Sine(rate, rate, tt.freq, 0.5), SampleRate: rate}
			if got := DominantFrequency(sig); math.Abs(got-tt.freq) > 1 {
				t.Errorf("DominantFrequency() = %.2f, want %.0f", got, tt.freq)
			}
		})
	}
}

func TestDominantFrequency_Degenerate(t *testing.T) {
	t.Parallel()

	if got := DominantFrequency(nil); got != 0 {
		t.Errorf("DominantFrequency(nil) = %v, want 0", got)
	}
	if got := DominantFrequency(&audio.Signal{Samples: make([]float32, 1000), SampleRate: rate}); got != 0 {
		t.Errorf("DominantFrequency(silence) = %v, want 0", got)
	}
}

func TestPeakAmplitude(t *testing.T) {
	t.Parallel()

	sig := &audio.Signal{Samples: []float32{0.1, -0.75, 0.5}, SampleRate: rate}
	if got := PeakAmplitude(sig); got != 0.75 {
		t.Errorf("PeakAmplitude() = %v, want 0.75", got)
	}
	if got := PeakAmplitude(nil); got != 0 {
		t.Errorf("PeakAmplitude(nil) = %v, want 0", got)
	}
}
