// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{name: "zero", input: 0, want: 0},
		{name: "max positive", input: 1, want: math.MaxInt16},
		{name: "max negative", input: -1, want: -math.MaxInt16},
		{name: "half positive", input: 0.5, want: 16383},
		{name: "half negative", input: -0.5, want: -16383},
		{name: "clamp over max", input: 1.5, want: math.MaxInt16},
		{name: "clamp under min", input: -3, want: -math.MaxInt16},
		{name: "nan", input: float32(math.NaN()), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.input); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloat32sToInt16(t *testing.T) {
	t.Parallel()

	got := Float32sToInt16([]float32{0, 1, -1})
	want := []int16{0, math.MaxInt16, -math.MaxInt16}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestPeakAbs(t *testing.T) {
	t.Parallel()

	if got := PeakAbs(nil); got != 0 {
		t.Errorf("PeakAbs(nil) = %v, want 0", got)
	}

	got := PeakAbs([]float32{0.1, -0.75, 0.5})
	if math.Abs(got-0.75) > 1e-6 {
		t.Errorf("PeakAbs() = %v, want 0.75", got)
	}
}

func BenchmarkFloat32sToInt16(b *testing.B) {
	samples := make([]float32, 4096)
	for i := range samples {
		samples[i] = float32(math.Sin(float64(i) / 10))
	}

	b.ReportAllocs()

	for b.Loop() {
		_ = Float32sToInt16(samples)
	}
}
