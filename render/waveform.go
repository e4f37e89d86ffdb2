// SPDX-License-Identifier: EPL-2.0

package render

import (
	"fmt"

	"github.com/ik5/audviz/audio"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// DefaultWaveformTitle is the plot title used when none is configured.
const DefaultWaveformTitle = "Tram Audio Example"

// WaveformConfig describes a waveform plot.
type WaveformConfig struct {
	Title         string
	Width, Height vg.Length
	LineWidth     vg.Length

	// MaxPoints bounds the number of plotted points. Longer signals are
	// reduced to the min and max of equal sized buckets, which keeps the
	// envelope. 0 plots every sample.
	MaxPoints int

	Theme Theme
}

// DefaultWaveformConfig returns a 10x5 inch plot with a 1pt line in the
// first theme color.
func DefaultWaveformConfig() WaveformConfig {
	return WaveformConfig{
		Title:     DefaultWaveformTitle,
		Width:     10 * vg.Inch,
		Height:    5 * vg.Inch,
		LineWidth: vg.Points(1),
		MaxPoints: 20000,
		Theme:     DefaultTheme(),
	}
}

// Waveform plots amplitude against sample index and saves the plot to path.
// The image format follows the path extension (png, svg, pdf, ...).
func Waveform(path string, sig *audio.Signal, cfg WaveformConfig) error {
	if path == "" {
		return ErrEmptyPath
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: %vx%v", ErrInvalidSize, cfg.Width, cfg.Height)
	}

	p, err := WaveformPlot(sig, cfg)
	if err != nil {
		return err
	}

	if err := p.Save(cfg.Width, cfg.Height, path); err != nil {
		return fmt.Errorf("waveform: %w", err)
	}

	return nil
}

// WaveformPlot builds the plot without saving it.
func WaveformPlot(sig *audio.Signal, cfg WaveformConfig) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = cfg.Title
	p.BackgroundColor = cfg.Theme.background()

	if sig.Len() == 0 {
		return p, nil
	}

	line, err := plotter.NewLine(waveformPoints(sig.Samples, cfg.MaxPoints))
	if err != nil {
		return nil, fmt.Errorf("waveform: %w", err)
	}
	line.LineStyle.Width = cfg.LineWidth
	line.LineStyle.Color = cfg.Theme.Color(0)

	p.Add(line)
	p.X.Min = 0
	p.X.Max = float64(len(sig.Samples) - 1)

	return p, nil
}

// waveformPoints returns the samples as points, reduced to bucket extremes
// when there are more than maxPoints of them.
func waveformPoints(samples []float32, maxPoints int) plotter.XYs {
	if maxPoints <= 0 || len(samples) <= maxPoints {
		pts := make(plotter.XYs, len(samples))
		for i, v := range samples {
			pts[i].X = float64(i)
			pts[i].Y = float64(v)
		}
		return pts
	}

	buckets := max(maxPoints/2, 1)
	pts := make(plotter.XYs, 0, 2*buckets)
	for b := range buckets {
		lo := b * len(samples) / buckets
		hi := (b + 1) * len(samples) / buckets

		minI, maxI := lo, lo
		for i := lo; i < hi; i++ {
			if samples[i] < samples[minI] {
				minI = i
			}
			if samples[i] > samples[maxI] {
				maxI = i
			}
		}

		// keep the extremes in time order so the line does not double back
		first, second := minI, maxI
		if first > second {
			first, second = second, first
		}
		pts = append(pts, plotter.XY{X: float64(first), Y: float64(samples[first])})
		if second != first {
			pts = append(pts, plotter.XY{X: float64(second), Y: float64(samples[second])})
		}
	}

	return pts
}
