// SPDX-License-Identifier: EPL-2.0

// Package config defines the audviz batch configuration and loads it from
// YAML.
package config

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root of the YAML document.
type Config struct {
	LogLevel    LogLevel          `yaml:"log_level"`
	Input       InputConfig       `yaml:"input"`
	Audio       AudioConfig       `yaml:"audio"`
	Trim        TrimConfig        `yaml:"trim"`
	Spectrogram SpectrogramConfig `yaml:"spectrogram"`
	Waveform    WaveformConfig    `yaml:"waveform"`
	Output      OutputConfig      `yaml:"output"`
	Run         RunConfig         `yaml:"run"`
}

// InputConfig selects the files to process.
type InputConfig struct {
	Dir        string   `yaml:"dir"`
	Extensions []string `yaml:"extensions"`
	// FoldCase matches extensions case-insensitively.
	FoldCase bool `yaml:"fold_case"`
}

type AudioConfig struct {
	// SampleRate every file is converted to. 0 keeps the native rate.
	SampleRate int `yaml:"sample_rate"`
}

type TrimConfig struct {
	Enabled     bool    `yaml:"enabled"`
	TopDB       float64 `yaml:"top_db"`
	FrameLength int     `yaml:"frame_length"`
	HopLength   int     `yaml:"hop_length"`
}

type SpectrogramConfig struct {
	Enabled  bool    `yaml:"enabled"`
	NFFT     int     `yaml:"n_fft"`
	Hop      int     `yaml:"hop"`
	TopDB    float64 `yaml:"top_db"`
	XAxis    string  `yaml:"x_axis"`
	YAxis    string  `yaml:"y_axis"`
	Colormap string  `yaml:"colormap"`
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	// UseTrimmed renders the trimmed signal instead of the full one.
	UseTrimmed bool `yaml:"use_trimmed"`
}

type WaveformConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Title      string  `yaml:"title"`
	WidthIn    float64 `yaml:"width_in"`
	HeightIn   float64 `yaml:"height_in"`
	LineWidth  float64 `yaml:"line_width"`
	MaxPoints  int     `yaml:"max_points"`
	UseTrimmed bool    `yaml:"use_trimmed"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
	// ExportTrimmed also writes the trimmed audio as 16-bit WAV.
	ExportTrimmed bool `yaml:"export_trimmed"`
}

type RunConfig struct {
	// Workers is the number of files processed at once.
	Workers int `yaml:"workers"`
	// FailFast stops the batch at the first file that fails.
	FailFast bool `yaml:"fail_fast"`
}

// Default returns the configuration used when no file is given: WAV and MP3
// files from the current directory, trimmed at 40 dB and drawn as gray_r
// spectrograms into ./out.
func Default() *Config {
	return &Config{
		LogLevel: LogInfo,
		Input: InputConfig{
			Dir:        ".",
			Extensions: []string{"WAV", "MP3"},
			FoldCase:   true,
		},
		Audio: AudioConfig{SampleRate: 22050},
		Trim: TrimConfig{
			Enabled:     true,
			TopDB:       40,
			FrameLength: 512,
			HopLength:   64,
		},
		Spectrogram: SpectrogramConfig{
			Enabled:    true,
			NFFT:       2048,
			Hop:        512,
			TopDB:      80,
			XAxis:      "time",
			YAxis:      "linear",
			Colormap:   "gray_r",
			Width:      1400,
			Height:     500,
			UseTrimmed: true,
		},
		Waveform: WaveformConfig{
			Enabled:   false,
			Title:     "Tram Audio Example",
			WidthIn:   10,
			HeightIn:  5,
			LineWidth: 1,
			MaxPoints: 20000,
		},
		Output: OutputConfig{Dir: "out"},
		Run:    RunConfig{Workers: 1, FailFast: true},
	}
}
