// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 clamps x to [-1,1] and scales it to the int16 range.
func Float32ToInt16(x float32) int16 {
	x = Clamp(x)

	// 32767 keeps +1.0 from wrapping
	return int16(x * 32767.0)
}

// Float32sToInt16 converts a whole sample slice.
func Float32sToInt16(samples []float32) []int16 {
	out := make([]int16, len(samples))
	for i, v := range samples {
		out[i] = Float32ToInt16(v)
	}
	return out
}

// Clamp limits x to [-1,1]. NaN maps to 0.
func Clamp(x float32) float32 {
	switch {
	case math.IsNaN(float64(x)):
		return 0
	case x > 1:
		return 1
	case x < -1:
		return -1
	}
	return x
}

// PeakAbs returns the largest absolute sample value.
func PeakAbs(samples []float32) float64 {
	var peak float64
	for _, v := range samples {
		peak = math.Max(peak, math.Abs(float64(v)))
	}
	return peak
}
