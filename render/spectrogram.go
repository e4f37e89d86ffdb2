// SPDX-License-Identifier: EPL-2.0

package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/ik5/audviz/audio"
	"github.com/ik5/audviz/dsp"
)

// Frequency axis scales.
const (
	AxisLinear = "linear"
	AxisLog    = "log"
	AxisMel    = "mel"
	AxisTime   = "time"
)

// SpectrogramConfig describes how a spectrogram image is produced.
type SpectrogramConfig struct {
	STFT dsp.STFTConfig
	DB   dsp.DBConfig

	XAxis    string // only "time"
	YAxis    string // "linear", "log" or "mel"
	Colormap string

	Width, Height int // pixels

	Theme Theme
}

// DefaultSpectrogramConfig renders a 1400x500 gray_r image of a 2048 point
// STFT on a linear frequency axis.
func DefaultSpectrogramConfig() SpectrogramConfig {
	return SpectrogramConfig{
		STFT:     dsp.DefaultSTFTConfig(),
		DB:       dsp.DefaultDBConfig(),
		XAxis:    AxisTime,
		YAxis:    AxisLinear,
		Colormap: DefaultColormap,
		Width:    1400,
		Height:   500,
		Theme:    DefaultTheme(),
	}
}

func (c SpectrogramConfig) validate() (Colormap, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if c.XAxis != AxisTime {
		return nil, fmt.Errorf("%w: x=%q", ErrUnknownAxis, c.XAxis)
	}
	switch c.YAxis {
	case AxisLinear, AxisLog, AxisMel:
	default:
		return nil, fmt.Errorf("%w: y=%q", ErrUnknownAxis, c.YAxis)
	}
	return LookupColormap(c.Colormap)
}

// Spectrogram renders the decibel spectrogram of sig to a PNG file at path.
// The image has no axes or margins: every pixel is data. sig is rendered as
// given, so trimming has to happen before the call.
func Spectrogram(path string, sig *audio.Signal, cfg SpectrogramConfig) error {
	if path == "" {
		return ErrEmptyPath
	}

	img, err := SpectrogramImage(sig, cfg)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("spectrogram: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("spectrogram: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("spectrogram: %w", err)
	}

	return nil
}

// SpectrogramImage is Spectrogram without the file. An empty signal gives a
// blank image of the configured size.
func SpectrogramImage(sig *audio.Signal, cfg SpectrogramConfig) (*image.RGBA, error) {
	cmap, err := cfg.validate()
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(cfg.Theme.background()), image.Point{}, draw.Src)

	if sig.Len() == 0 {
		return img, nil
	}

	spec, err := dsp.STFT(sig.Float64(), sig.SampleRate, cfg.STFT)
	if err != nil {
		return nil, fmt.Errorf("spectrogram: %w", err)
	}
	db := dsp.AmplitudeToDB(spec, cfg.DB)
	if db.NumFrames() == 0 {
		return img, nil
	}

	lo, hi := db.Range()
	span := hi - lo

	rows := binRows(db, cfg.YAxis, cfg.Height)
	frames := db.NumFrames()
	for x := range cfg.Width {
		frame := db.Frames[min(x*frames/cfg.Width, frames-1)]
		for y, bin := range rows {
			v := 1.0
			if span > 0 {
				v = (frame[bin] - lo) / span
			}
			img.Set(x, y, cmap.At(v))
		}
	}

	return img, nil
}

// binRows maps every image row, top to bottom, to the STFT bin shown there.
// Row 0 is the Nyquist frequency.
func binRows(spec *dsp.Spectrogram, axis string, height int) []int {
	bins := spec.NumBins()
	nyquist := float64(spec.SampleRate) / 2
	binHz := spec.BinFrequency(1)

	rows := make([]int, height)
	for y := range rows {
		// frac is 0 at the bottom row and 1 at the top
		frac := 1.0
		if height > 1 {
			frac = 1 - float64(y)/float64(height-1)
		}

		var freq float64
		switch axis {
		case AxisLog:
			// DC has no place on a log axis; start at the first bin
			freq = binHz * math.Pow(nyquist/binHz, frac)
			if frac == 0 {
				freq = 0
			}
		case AxisMel:
			freq = melToHz(frac * hzToMel(nyquist))
		default:
			freq = frac * nyquist
		}

		bin := 0
		if binHz > 0 {
			bin = int(math.Round(freq / binHz))
		}
		rows[y] = min(max(bin, 0), bins-1)
	}

	return rows
}

func hzToMel(f float64) float64 { return 2595 * math.Log10(1+f/700) }
func melToHz(m float64) float64 { return 700 * (math.Pow(10, m/2595) - 1) }
