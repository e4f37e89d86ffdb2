// SPDX-License-Identifier: EPL-2.0

package render

import "image/color"

// Theme carries the colors used for plots. Each renderer receives one
// explicitly; there is no package level plotting state.
type Theme struct {
	// Colors is the line color cycle.
	Colors []color.Color
	// Background fills images before anything is drawn.
	Background color.Color
}

// DefaultTheme returns the ten color "tab10" cycle on a white background.
func DefaultTheme() Theme {
	return Theme{
		Colors: []color.Color{
			color.RGBA{0x1f, 0x77, 0xb4, 0xff}, // blue
			color.RGBA{0xff, 0x7f, 0x0e, 0xff}, // orange
			color.RGBA{0x2c, 0xa0, 0x2c, 0xff}, // green
			color.RGBA{0xd6, 0x27, 0x28, 0xff}, // red
			color.RGBA{0x94, 0x67, 0xbd, 0xff}, // purple
			color.RGBA{0x8c, 0x56, 0x4b, 0xff}, // brown
			color.RGBA{0xe3, 0x77, 0xc2, 0xff}, // pink
			color.RGBA{0x7f, 0x7f, 0x7f, 0xff}, // gray
			color.RGBA{0xbc, 0xbd, 0x22, 0xff}, // olive
			color.RGBA{0x17, 0xbe, 0xcf, 0xff}, // cyan
		},
		Background: color.White,
	}
}

// Color returns the i-th color of the cycle, wrapping around. An empty
// cycle yields black.
func (t Theme) Color(i int) color.Color {
	if len(t.Colors) == 0 {
		return color.Black
	}
	i %= len(t.Colors)
	if i < 0 {
		i += len(t.Colors)
	}
	return t.Colors[i]
}

func (t Theme) background() color.Color {
	if t.Background == nil {
		return color.White
	}
	return t.Background
}
