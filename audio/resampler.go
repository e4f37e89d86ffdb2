// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audviz/utils"
)

// lowpassAlpha is the coefficient of the one-pole smoother applied to source
// frames when downsampling.
const lowpassAlpha = 0.5

// Resampler streams src at a new sample rate using Catmull-Rom cubic
// interpolation. Interleaving and channel count are preserved.
//
// Output frame k is taken at source position k*srcRate/dstRate; the stream
// ends once that position passes the last source frame, so a source of N
// frames yields ceil(N*dstRate/srcRate) frames.
type Resampler struct {
	src      Source
	channels int
	srcRate  int
	dstRate  int

	// win keeps the four most recently fetched source frames, indexed by
	// source frame number modulo 4.
	win  [4][]float32
	last int // number of the newest frame in win, -1 before the first fetch

	produced int

	in           []float32
	inOff, inLen int
	srcDone      bool
	err          error

	lowpass bool
	lpState []float32
}

// NewResampler wraps src so that it is read at dstRate. A non-positive
// dstRate keeps the source rate.
func NewResampler(src Source, dstRate int) *Resampler {
	channels := max(src.Channels(), 1)
	if dstRate <= 0 {
		dstRate = src.SampleRate()
	}

	bufSize := max(src.BufSize(), 1024)
	bufSize -= bufSize % channels

	r := &Resampler{
		src:      src,
		channels: channels,
		srcRate:  src.SampleRate(),
		dstRate:  dstRate,
		last:     -1,
		in:       make([]float32, bufSize),
		lowpass:  src.SampleRate() > dstRate,
		lpState:  make([]float32, channels),
	}
	for i := range r.win {
		r.win[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("resampler: %w", err)
	}
	return nil
}

// fetch pulls the next source frame into the window.
func (r *Resampler) fetch() bool {
	for r.inOff >= r.inLen {
		if r.srcDone {
			return false
		}
		n, err := r.src.ReadSamples(r.in)
		r.inOff, r.inLen = 0, n-n%r.channels
		switch {
		case err == io.EOF:
			r.srcDone = true
		case err != nil:
			r.srcDone = true
			r.err = fmt.Errorf("resampler: %w", err)
		case n == 0:
			r.srcDone = true
		}
	}

	r.last++
	frame := r.win[r.last&3]
	copy(frame, r.in[r.inOff:r.inOff+r.channels])
	r.inOff += r.channels

	if r.lowpass {
		if r.last == 0 {
			copy(r.lpState, frame)
		}
		for c := range frame {
			frame[c] = lowpassAlpha*frame[c] + (1-lowpassAlpha)*r.lpState[c]
			r.lpState[c] = frame[c]
		}
	}

	return true
}

// frame returns source frame i, clamped to the frames seen so far.
func (r *Resampler) frame(i int) []float32 {
	i = min(max(i, 0), r.last)
	return r.win[i&3]
}

// ReadSamples produces interleaved samples at the destination rate.
// len(dst) must be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.srcRate <= 0 || r.dstRate <= 0 {
		return 0, ErrInvalidRate
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		// integer position keeps long streams free of drift
		num := int64(r.produced) * int64(r.srcRate)
		i := int(num / int64(r.dstRate))

		for r.last < i+2 && r.fetch() {
		}

		if i > r.last {
			if r.err != nil {
				return written * r.channels, r.err
			}
			return written * r.channels, io.EOF
		}

		x := float32(num%int64(r.dstRate)) / float32(r.dstRate)
		y0, y1, y2, y3 := r.frame(i-1), r.frame(i), r.frame(i+1), r.frame(i+2)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(y0[c], y1[c], y2[c], y3[c], x)
		}

		written++
		r.produced++
	}

	return written * r.channels, nil
}
