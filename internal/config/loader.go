// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/audviz/render"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config]. Keys missing from the file keep their [Default] values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r on top of [Default] and
// validates the result. Unknown keys are an error.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	// Input
	if cfg.Input.Dir == "" {
		errs = append(errs, errors.New("input.dir is required"))
	}
	if len(cfg.Input.Extensions) == 0 {
		errs = append(errs, errors.New("input.extensions must list at least one extension"))
	}
	for i, ext := range cfg.Input.Extensions {
		if ext == "" {
			errs = append(errs, fmt.Errorf("input.extensions[%d] is empty", i))
		}
	}

	if cfg.Audio.SampleRate < 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate %d must not be negative", cfg.Audio.SampleRate))
	}

	// Trim
	if cfg.Trim.Enabled {
		if cfg.Trim.TopDB < 0 {
			errs = append(errs, fmt.Errorf("trim.top_db %.1f must not be negative", cfg.Trim.TopDB))
		}
		if cfg.Trim.FrameLength <= 0 || cfg.Trim.HopLength <= 0 {
			errs = append(errs, fmt.Errorf("trim.frame_length (%d) and trim.hop_length (%d) must be positive",
				cfg.Trim.FrameLength, cfg.Trim.HopLength))
		}
	}

	// Spectrogram
	if s := cfg.Spectrogram; s.Enabled {
		if s.NFFT < 2 || s.Hop <= 0 {
			errs = append(errs, fmt.Errorf("spectrogram.n_fft (%d) must be at least 2 and spectrogram.hop (%d) positive", s.NFFT, s.Hop))
		}
		if s.Width <= 0 || s.Height <= 0 {
			errs = append(errs, fmt.Errorf("spectrogram size %dx%d must be positive", s.Width, s.Height))
		}
		if s.XAxis != render.AxisTime {
			errs = append(errs, fmt.Errorf("spectrogram.x_axis %q is invalid; valid values: time", s.XAxis))
		}
		switch s.YAxis {
		case render.AxisLinear, render.AxisLog, render.AxisMel:
		default:
			errs = append(errs, fmt.Errorf("spectrogram.y_axis %q is invalid; valid values: linear, log, mel", s.YAxis))
		}
		if _, err := render.LookupColormap(s.Colormap); err != nil {
			errs = append(errs, fmt.Errorf("spectrogram.colormap %q is invalid; valid values: %v", s.Colormap, render.Colormaps()))
		}
	}

	// Waveform
	if w := cfg.Waveform; w.Enabled {
		if w.WidthIn <= 0 || w.HeightIn <= 0 {
			errs = append(errs, fmt.Errorf("waveform size %.1fx%.1f in must be positive", w.WidthIn, w.HeightIn))
		}
		if w.MaxPoints < 0 {
			errs = append(errs, fmt.Errorf("waveform.max_points %d must not be negative", w.MaxPoints))
		}
	}

	if !cfg.Spectrogram.Enabled && !cfg.Waveform.Enabled && !cfg.Output.ExportTrimmed {
		errs = append(errs, errors.New("nothing to do: enable spectrogram, waveform or output.export_trimmed"))
	}
	if cfg.Output.ExportTrimmed && !cfg.Trim.Enabled {
		errs = append(errs, errors.New("output.export_trimmed requires trim.enabled"))
	}
	if cfg.Output.Dir == "" {
		errs = append(errs, errors.New("output.dir is required"))
	}

	if cfg.Run.Workers < 1 {
		errs = append(errs, fmt.Errorf("run.workers %d must be at least 1", cfg.Run.Workers))
	}

	return errors.Join(errs...)
}
