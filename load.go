// SPDX-License-Identifier: EPL-2.0

package audviz

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ik5/audviz/audio"
	"github.com/ik5/audviz/formats"
)

// DefaultSampleRate is the analysis rate every file is converted to unless
// told otherwise.
const DefaultSampleRate = 22050

type loadOptions struct {
	sampleRate int
	registry   *audio.Registry
}

// LoadOption tunes Load and LoadReader.
type LoadOption func(*loadOptions)

// WithSampleRate sets the output rate. 0 keeps the file's native rate.
func WithSampleRate(rate int) LoadOption {
	return func(o *loadOptions) { o.sampleRate = rate }
}

// WithRegistry selects the decoders used to open files.
// The default is formats.DefaultRegistry().
func WithRegistry(reg *audio.Registry) LoadOption {
	return func(o *loadOptions) { o.registry = reg }
}

func buildOptions(opts []LoadOption) loadOptions {
	o := loadOptions{sampleRate: DefaultSampleRate}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = formats.DefaultRegistry()
	}
	if o.sampleRate < 0 {
		o.sampleRate = 0
	}
	return o
}

// Load decodes the file at path into a mono Signal.
//
// The decoder is picked by the file extension. Every call decodes the file
// again; nothing is cached.
func Load(path string, opts ...LoadOption) (*audio.Signal, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoExtension, path)
	}

	o := buildOptions(opts)
	dec, ok := o.registry.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sig, err := decode(dec, f, o.sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sig, nil
}

// LoadReader is Load for data that is not on disk. ext names the format
// ("wav", ".mp3", ...).
func LoadReader(r io.Reader, ext string, opts ...LoadOption) (*audio.Signal, error) {
	o := buildOptions(opts)
	dec, ok := o.registry.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	return decode(dec, r, o.sampleRate)
}

func decode(dec audio.Decoder, r io.Reader, rate int) (*audio.Signal, error) {
	src, err := dec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	defer src.Close()

	return ToMonoSignal(src, rate)
}
