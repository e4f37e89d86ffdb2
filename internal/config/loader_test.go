// SPDX-License-Identifier: EPL-2.0

package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ik5/audviz/internal/config"
)

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	if err := config.Validate(cfg); err != nil {
		t.Fatalf("Validate(Default()) error = %v", err)
	}
	if !slices.Equal(cfg.Input.Extensions, []string{"WAV", "MP3"}) {
		t.Errorf("default extensions = %v", cfg.Input.Extensions)
	}
	if cfg.Audio.SampleRate != 22050 || cfg.Trim.TopDB != 40 {
		t.Errorf("default rate/top_db = %d/%v, want 22050/40", cfg.Audio.SampleRate, cfg.Trim.TopDB)
	}
	if !cfg.Run.FailFast || cfg.Run.Workers != 1 {
		t.Errorf("default run = %+v, want sequential fail-fast", cfg.Run)
	}
}

func TestLoadFromReader_OverridesDefaults(t *testing.T) {
	t.Parallel()

	yaml := `
log_level: debug
input:
  dir: /data/trams
  extensions: [flac]
spectrogram:
  y_axis: mel
  colormap: kindlmann
run:
  workers: 4
  fail_fast: false
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}

	if cfg.LogLevel != config.LogDebug {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Input.Dir != "/data/trams" || !slices.Equal(cfg.Input.Extensions, []string{"flac"}) {
		t.Errorf("Input = %+v", cfg.Input)
	}
	if cfg.Spectrogram.YAxis != "mel" || cfg.Spectrogram.Colormap != "kindlmann" {
		t.Errorf("Spectrogram = %+v", cfg.Spectrogram)
	}
	if cfg.Spectrogram.NFFT != 2048 || cfg.Spectrogram.Width != 1400 {
		t.Errorf("unset spectrogram keys lost their defaults: %+v", cfg.Spectrogram)
	}
	if cfg.Run.Workers != 4 || cfg.Run.FailFast {
		t.Errorf("Run = %+v", cfg.Run)
	}
}

func TestLoadFromReader_Empty(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader(\"\") error = %v", err)
	}
	if cfg.Input.Dir != "." {
		t.Errorf("Input.Dir = %q, want default", cfg.Input.Dir)
	}
}

func TestLoadFromReader_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFromReader(strings.NewReader("input:\n  directory: x\n"))
	if err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		mention string
	}{
		{"log level", "log_level: loud", "log_level"},
		{"no extensions", "input:\n  extensions: []", "input.extensions"},
		{"empty extension", "input:\n  extensions: [wav, \"\"]", "input.extensions[1]"},
		{"negative rate", "audio:\n  sample_rate: -1", "sample_rate"},
		{"negative top_db", "trim:\n  top_db: -5", "trim.top_db"},
		{"bad hop", "trim:\n  hop_length: 0", "hop_length"},
		{"bad y axis", "spectrogram:\n  y_axis: chroma", "y_axis"},
		{"bad x axis", "spectrogram:\n  x_axis: frames", "x_axis"},
		{"bad colormap", "spectrogram:\n  colormap: jet", "colormap"},
		{"bad waveform size", "waveform:\n  enabled: true\n  width_in: 0", "waveform size"},
		{"no output", "spectrogram:\n  enabled: false", "nothing to do"},
		{"export without trim", "trim:\n  enabled: false\noutput:\n  export_trimmed: true", "requires trim"},
		{"zero workers", "run:\n  workers: 0", "run.workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadFromReader(strings.NewReader(tt.yaml))
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.mention) {
				t.Errorf("error should mention %q, got: %v", tt.mention, err)
			}
		})
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.LogLevel = "verbose"
	cfg.Run.Workers = 0

	err := config.Validate(cfg)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "log_level") || !strings.Contains(err.Error(), "run.workers") {
		t.Errorf("joined error missing a failure: %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "audviz.yaml")
	if err := os.WriteFile(path, []byte("output:\n  dir: images\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output.Dir != "images" {
		t.Errorf("Output.Dir = %q, want images", cfg.Output.Dir)
	}

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want ErrNotExist", err)
	}
}
