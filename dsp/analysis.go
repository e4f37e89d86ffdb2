// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math/bits"
	"math/cmplx"

	"github.com/ik5/audviz/audio"
	"github.com/ik5/audviz/utils"
	"github.com/mjibson/go-dsp/fft"
)

// maxAnalysisSamples bounds the FFT used by DominantFrequency.
const maxAnalysisSamples = 1 << 18

// DominantFrequency returns the frequency in Hz with the largest magnitude
// in the spectrum of sig, ignoring DC. Only the first maxAnalysisSamples
// samples are looked at. Silent or empty signals return 0.
func DominantFrequency(sig *audio.Signal) float64 {
	if sig.Len() < 2 || sig.SampleRate <= 0 {
		return 0
	}

	n := min(sig.Len(), maxAnalysisSamples)
	size := 1 << bits.Len(uint(n-1))

	buf := make([]float64, size)
	for i, v := range sig.Samples[:n] {
		buf[i] = float64(v)
	}

	spectrum := fft.FFTReal(buf)

	best, bestMag := 0, 0.0
	for k := 1; k <= size/2; k++ {
		if mag := cmplx.Abs(spectrum[k]); mag > bestMag {
			best, bestMag = k, mag
		}
	}

	return float64(best) * float64(sig.SampleRate) / float64(size)
}

// PeakAmplitude returns the largest absolute sample value of sig.
func PeakAmplitude(sig *audio.Signal) float64 {
	if sig == nil {
		return 0
	}
	return utils.PeakAbs(sig.Samples)
}
