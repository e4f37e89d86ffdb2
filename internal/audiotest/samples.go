// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"math"
)

// ErrInjected is returned by sources configured with FailAfter.
var ErrInjected = errors.New("audiotest: injected failure")

// Sine returns n mono samples of a sine at freq Hz with the given amplitude.
func Sine(sampleRate, n int, freq, amplitude float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		out[i] = float32(amplitude * math.Sin(2*math.Pi*freq*t))
	}
	return out
}

// Burst returns lead zeros, then a sine burst of body samples, then tail
// zeros.
func Burst(sampleRate, lead, body, tail int, freq, amplitude float64) []float32 {
	out := make([]float32, lead+body+tail)
	copy(out[lead:], Sine(sampleRate, body, freq, amplitude))
	return out
}
