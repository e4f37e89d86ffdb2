// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/audviz/formats/wav"
	"github.com/ik5/audviz/internal/audiotest"
	"github.com/ik5/audviz/utils"
)

func writeTone(t *testing.T, path string) {
	t.Helper()

	var buf bytes.Buffer
	samples := audiotest.Burst(16000, 2000, 8000, 2000, 440, 0.5)
	if err := wav.WriteWAV16(&buf, 16000, utils.Float32sToInt16(samples)); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRun_FlagsOverrideDefaults(t *testing.T) {
	t.Parallel()

	in, out := t.TempDir(), filepath.Join(t.TempDir(), "out")
	writeTone(t, filepath.Join(in, "tram.wav"))

	var stderr bytes.Buffer
	code := run([]string{"-dir", in, "-out", out, "-log-level", "debug", "-workers", "2"}, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr:\n%s", code, stderr.String())
	}

	if _, err := os.Stat(filepath.Join(out, "tram.wav.spectrogram.png")); err != nil {
		t.Errorf("spectrogram not written: %v", err)
	}
	if !strings.Contains(stderr.String(), "audviz finished") {
		t.Errorf("summary not logged:\n%s", stderr.String())
	}
	if !strings.Contains(stderr.String(), "audviz.files.processed{status=ok}") {
		t.Errorf("metric totals not logged:\n%s", stderr.String())
	}
}

func TestRun_ConfigFile(t *testing.T) {
	t.Parallel()

	in, out := t.TempDir(), t.TempDir()
	writeTone(t, filepath.Join(in, "tram.WAV"))

	cfgPath := filepath.Join(t.TempDir(), "audviz.yaml")
	yaml := "input:\n  dir: " + in + "\n  extensions: [wav]\n  fold_case: true\n" +
		"output:\n  dir: " + out + "\n" +
		"spectrogram:\n  enabled: false\n" +
		"waveform:\n  enabled: true\n  width_in: 4\n  height_in: 2\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer
	if code := run([]string{"-config", cfgPath}, &stderr); code != 0 {
		t.Fatalf("run() = %d, stderr:\n%s", code, stderr.String())
	}
	if _, err := os.Stat(filepath.Join(out, "tram.WAV.waveform.png")); err != nil {
		t.Errorf("waveform not written: %v", err)
	}
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"unknown flag", []string{"-bogus"}, 2},
		{"missing explicit config", []string{"-config", filepath.Join(t.TempDir(), "nope.yaml")}, 1},
		{"invalid log level", []string{"-dir", t.TempDir(), "-out", t.TempDir(), "-log-level", "loud"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stderr bytes.Buffer
			if code := run(tt.args, &stderr); code != tt.code {
				t.Errorf("run(%v) = %d, want %d; stderr:\n%s", tt.args, code, tt.code, stderr.String())
			}
		})
	}
}

func TestRun_FailedFileExitCode(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	if err := os.WriteFile(filepath.Join(in, "broken.wav"), []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer
	if code := run([]string{"-dir", in, "-out", t.TempDir()}, &stderr); code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}
}
