// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/r9y9/gossp/stft"
)

const (
	DefaultNFFT = 2048
	DefaultHop  = 512
)

// STFTConfig controls the short-time Fourier transform.
type STFTConfig struct {
	NFFT int // window and FFT size
	Hop  int // samples between frames
}

// DefaultSTFTConfig returns a 2048 point transform with a hop of 512.
func DefaultSTFTConfig() STFTConfig {
	return STFTConfig{NFFT: DefaultNFFT, Hop: DefaultHop}
}

func (c STFTConfig) validate() error {
	if c.NFFT < 2 || c.Hop <= 0 {
		return fmt.Errorf("%w: nfft=%d hop=%d", ErrInvalidSTFTConfig, c.NFFT, c.Hop)
	}
	return nil
}

// Spectrogram holds one row of values per frame, NFFT/2+1 bins per row,
// bin 0 being DC. After STFT the values are magnitudes; AmplitudeToDB
// returns a copy in decibels.
type Spectrogram struct {
	Frames     [][]float64
	NFFT       int
	Hop        int
	SampleRate int
}

func (s *Spectrogram) NumFrames() int {
	if s == nil {
		return 0
	}
	return len(s.Frames)
}

func (s *Spectrogram) NumBins() int {
	if s == nil || s.NFFT <= 0 {
		return 0
	}
	return s.NFFT/2 + 1
}

// BinFrequency returns the center frequency of bin k in Hz.
func (s *Spectrogram) BinFrequency(k int) float64 {
	if s == nil || s.NFFT <= 0 {
		return 0
	}
	return float64(k) * float64(s.SampleRate) / float64(s.NFFT)
}

// FrameTime returns the time at the center of frame i.
func (s *Spectrogram) FrameTime(i int) float64 {
	if s == nil || s.SampleRate <= 0 {
		return 0
	}
	return float64(i*s.Hop) / float64(s.SampleRate)
}

// Range returns the smallest and largest value in the spectrogram.
func (s *Spectrogram) Range() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range s.Frames {
		for _, v := range row {
			lo, hi = min(lo, v), max(hi, v)
		}
	}
	if s.NumFrames() == 0 {
		return 0, 0
	}
	return lo, hi
}

// STFT computes the magnitude spectrogram of samples taken at sampleRate.
//
// Frames are centered: the input is padded with NFFT/2 zeros on each side,
// giving 1+len/Hop frames under a periodic Hann window. Empty input yields
// a spectrogram with no frames.
func STFT(samples []float64, sampleRate int, cfg STFTConfig) (*Spectrogram, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	spec := &Spectrogram{NFFT: cfg.NFFT, Hop: cfg.Hop, SampleRate: sampleRate}
	if len(samples) == 0 {
		return spec, nil
	}

	pad := cfg.NFFT / 2
	padded := make([]float64, len(samples)+2*pad)
	copy(padded[pad:], samples)

	s := stft.New(cfg.Hop, cfg.NFFT)
	s.Window = hann(cfg.NFFT)

	bins := cfg.NFFT/2 + 1
	for _, frame := range s.STFT(padded) {
		row := make([]float64, bins)
		for k := range row {
			row[k] = cmplx.Abs(frame[k])
		}
		spec.Frames = append(spec.Frames, row)
	}

	return spec, nil
}

// hann returns a periodic Hann window, the usual choice for spectral
// analysis.
func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}

// DBConfig controls the amplitude to decibel conversion.
type DBConfig struct {
	Ref   float64 // amplitude mapped to 0 dB
	Amin  float64 // amplitudes below this are clamped
	TopDB float64 // dynamic range kept below the maximum; <= 0 keeps all
}

func DefaultDBConfig() DBConfig {
	return DBConfig{Ref: 1, Amin: 1e-5, TopDB: 80}
}

// AmplitudeToDB converts a magnitude spectrogram to decibels:
// 20*log10(max(Amin, |x|)) - 20*log10(max(Amin, Ref)), then floors every
// value at max-TopDB. The input is left untouched.
func AmplitudeToDB(spec *Spectrogram, cfg DBConfig) *Spectrogram {
	if cfg.Amin <= 0 {
		cfg.Amin = 1e-5
	}
	if cfg.Ref <= 0 {
		cfg.Ref = 1
	}

	out := &Spectrogram{NFFT: spec.NFFT, Hop: spec.Hop, SampleRate: spec.SampleRate}
	if spec.NumFrames() == 0 {
		return out
	}

	ref := 20 * math.Log10(max(cfg.Amin, cfg.Ref))
	peak := math.Inf(-1)
	out.Frames = make([][]float64, len(spec.Frames))
	for i, row := range spec.Frames {
		dst := make([]float64, len(row))
		for k, v := range row {
			dst[k] = 20*math.Log10(max(cfg.Amin, math.Abs(v))) - ref
			peak = max(peak, dst[k])
		}
		out.Frames[i] = dst
	}

	if cfg.TopDB > 0 {
		floor := peak - cfg.TopDB
		for _, row := range out.Frames {
			for k, v := range row {
				row[k] = max(v, floor)
			}
		}
	}

	return out
}
