// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"github.com/ik5/audviz/dsp"
	"github.com/ik5/audviz/internal/config"
	"github.com/ik5/audviz/render"
	"gonum.org/v1/plot/vg"
)

func spectrogramConfig(cfg *config.Config) render.SpectrogramConfig {
	s := cfg.Spectrogram
	out := render.DefaultSpectrogramConfig()
	out.STFT = dsp.STFTConfig{NFFT: s.NFFT, Hop: s.Hop}
	out.DB.TopDB = s.TopDB
	out.XAxis = s.XAxis
	out.YAxis = s.YAxis
	out.Colormap = s.Colormap
	out.Width, out.Height = s.Width, s.Height
	return out
}

func waveformConfig(cfg *config.Config) render.WaveformConfig {
	w := cfg.Waveform
	out := render.DefaultWaveformConfig()
	out.Title = w.Title
	out.Width = vg.Length(w.WidthIn) * vg.Inch
	out.Height = vg.Length(w.HeightIn) * vg.Inch
	out.LineWidth = vg.Points(w.LineWidth)
	out.MaxPoints = w.MaxPoints
	return out
}
