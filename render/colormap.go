// SPDX-License-Identifier: EPL-2.0

package render

import (
	"fmt"
	"image/color"
	"math"
	"slices"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// Colormap maps a value in [0,1] to a color. Values outside the range are
// clamped.
type Colormap interface {
	At(v float64) color.Color
}

const heatSteps = 256

var colormaps = map[string]func() Colormap{
	"gray":      func() Colormap { return grayMap{} },
	"gray_r":    func() Colormap { return grayMap{reversed: true} },
	"kindlmann": func() Colormap { return newContinuous(moreland.Kindlmann()) },
	"blackbody": func() Colormap { return newContinuous(moreland.BlackBody()) },
	"coolwarm":  func() Colormap { return newContinuous(moreland.SmoothBlueRed()) },
	"heat":      func() Colormap { return discreteMap(palette.Heat(heatSteps, 1).Colors()) },
}

// DefaultColormap renders loud bins dark on a light background.
const DefaultColormap = "gray_r"

// LookupColormap returns the colormap registered under name.
func LookupColormap(name string) (Colormap, error) {
	build, ok := colormaps[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColormap, name)
	}
	return build(), nil
}

// Colormaps lists the known colormap names in sorted order.
func Colormaps() []string {
	names := make([]string, 0, len(colormaps))
	for name := range colormaps {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

type grayMap struct {
	reversed bool
}

func (g grayMap) At(v float64) color.Color {
	v = clamp01(v)
	if g.reversed {
		v = 1 - v
	}
	return color.Gray{Y: uint8(v*255 + 0.5)}
}

// continuousMap adapts a gonum palette.ColorMap spanning [0,1].
type continuousMap struct {
	cm palette.ColorMap
}

func newContinuous(cm palette.ColorMap) continuousMap {
	cm.SetMin(0)
	cm.SetMax(1)
	return continuousMap{cm: cm}
}

func (c continuousMap) At(v float64) color.Color {
	col, err := c.cm.At(clamp01(v))
	if err != nil {
		return color.Black
	}
	return col
}

type discreteMap []color.Color

func (d discreteMap) At(v float64) color.Color {
	if len(d) == 0 {
		return color.Black
	}
	i := int(clamp01(v) * float64(len(d)-1))
	return d[i]
}
