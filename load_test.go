// SPDX-License-Identifier: EPL-2.0

package audviz

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audviz/audio"
	"github.com/ik5/audviz/formats/wav"
	"github.com/ik5/audviz/internal/audiotest"
	"github.com/ik5/audviz/utils"
)

func wavBytes(t *testing.T, rate int, samples []float32) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := wav.WriteWAV16(&buf, rate, utils.Float32sToInt16(samples)); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}
	return buf.Bytes()
}

func TestToMonoSignal_Resamples(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(44100, 2, 44100, 440)

	sig, err := ToMonoSignal(src, 22050)
	if err != nil {
		t.Fatalf("ToMonoSignal() error = %v", err)
	}
	if sig.SampleRate != 22050 {
		t.Errorf("SampleRate = %d, want 22050", sig.SampleRate)
	}
	if sig.Len() != 22050 {
		t.Errorf("Len() = %d, want 22050", sig.Len())
	}
}

func TestToMonoSignal_NativeRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rate int
	}{
		{"zero keeps native", 0},
		{"equal rate", 16000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewConstantSource(16000, 1, 1000, 0.5)
			sig, err := ToMonoSignal(src, tt.rate)
			if err != nil {
				t.Fatalf("ToMonoSignal() error = %v", err)
			}
			if sig.SampleRate != 16000 || sig.Len() != 1000 {
				t.Errorf("got %d samples at %d Hz, want 1000 at 16000", sig.Len(), sig.SampleRate)
			}
			for i, v := range sig.Samples {
				if v != 0.5 {
					t.Fatalf("sample %d = %v, want untouched 0.5", i, v)
				}
			}
		})
	}
}

func TestToMonoSignal_Errors(t *testing.T) {
	t.Parallel()

	if _, err := ToMonoSignal(nil, 8000); !errors.Is(err, audio.ErrNilSource) {
		t.Errorf("nil source error = %v, want ErrNilSource", err)
	}
	if _, err := ToMonoSignal(audiotest.NewSilentSource(0, 1, 10), 8000); !errors.Is(err, audio.ErrInvalidRate) {
		t.Errorf("zero rate error = %v, want ErrInvalidRate", err)
	}

	src := audiotest.NewSineSource(8000, 1, 8000, 100).FailAfter(100)
	if _, err := ToMonoSignal(src, 8000); !errors.Is(err, audiotest.ErrInjected) {
		t.Errorf("failing source error = %v, want ErrInjected", err)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "tone.wav")
	data := wavBytes(t, 44100, audiotest.Sine(44100, 44100, 440, 0.5))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	sig, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if sig.SampleRate != DefaultSampleRate {
		t.Errorf("SampleRate = %d, want %d", sig.SampleRate, DefaultSampleRate)
	}
	if sig.Len() != DefaultSampleRate {
		t.Errorf("Len() = %d, want %d", sig.Len(), DefaultSampleRate)
	}
	if peak := utils.PeakAbs(sig.Samples); math.Abs(float64(peak)-0.5) > 0.02 {
		t.Errorf("peak = %v, want about 0.5", peak)
	}

	native, err := Load(path, WithSampleRate(0))
	if err != nil {
		t.Fatalf("Load(native) error = %v", err)
	}
	if native.SampleRate != 44100 || native.Len() != 44100 {
		t.Errorf("native load = %d samples at %d Hz, want 44100 at 44100", native.Len(), native.SampleRate)
	}
}

func TestLoad_FreshSignalEachCall(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a.wav")
	if err := os.WriteFile(path, wavBytes(t, 8000, audiotest.Sine(8000, 800, 200, 0.3)), 0o644); err != nil {
		t.Fatal(err)
	}

	first, err := Load(path, WithSampleRate(0))
	if err != nil {
		t.Fatal(err)
	}
	first.Samples[0] = 1

	second, err := Load(path, WithSampleRate(0))
	if err != nil {
		t.Fatal(err)
	}
	if second.Samples[0] == 1 {
		t.Error("second Load() shares samples with the first")
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "broken.wav")
	if err := os.WriteFile(bad, []byte("not a wav"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want error
	}{
		{"unsupported extension", txt, ErrUnsupportedFormat},
		{"no extension", filepath.Join(dir, "README"), ErrNoExtension},
		{"missing file", filepath.Join(dir, "missing.wav"), os.ErrNotExist},
		{"corrupt file", bad, wav.ErrNotWavFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(tt.path)
			if !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadReader(t *testing.T) {
	t.Parallel()

	data := wavBytes(t, 8000, audiotest.Sine(8000, 8000, 100, 0.5))

	sig, err := LoadReader(bytes.NewReader(data), ".WAV", WithSampleRate(16000))
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}
	if sig.SampleRate != 16000 || sig.Len() != 16000 {
		t.Errorf("got %d samples at %d Hz, want 16000 at 16000", sig.Len(), sig.SampleRate)
	}

	reg := audio.NewRegistry()
	if _, err := LoadReader(bytes.NewReader(data), "wav", WithRegistry(reg)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("LoadReader() with empty registry error = %v, want ErrUnsupportedFormat", err)
	}
}

func BenchmarkToMonoSignal(b *testing.B) {
	src := audiotest.NewSineSource(44100, 2, 44100, 440)

	b.ReportAllocs()

	for b.Loop() {
		src.Reset()
		_, _ = ToMonoSignal(src, 22050)
	}
}
