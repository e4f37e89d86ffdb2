// SPDX-License-Identifier: EPL-2.0

// Package pipeline runs the audviz batch: discover files, load each one,
// trim it and write the configured images.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ik5/audviz"
	"github.com/ik5/audviz/audio"
	"github.com/ik5/audviz/discover"
	"github.com/ik5/audviz/dsp"
	"github.com/ik5/audviz/formats"
	"github.com/ik5/audviz/formats/wav"
	"github.com/ik5/audviz/internal/config"
	"github.com/ik5/audviz/internal/observe"
	"github.com/ik5/audviz/render"
	"golang.org/x/sync/errgroup"
)

// Output kinds, used in file names and as the metrics "kind" attribute.
const (
	KindSpectrogram = "spectrogram"
	KindWaveform    = "waveform"
	KindTrimmed     = "trimmed"
)

// FileResult describes what happened to one file.
type FileResult struct {
	File discover.File

	SampleRate int
	Samples    int
	Duration   time.Duration
	Peak       float64
	DominantHz float64

	// TrimStart and TrimEnd are the kept interval when trimming is on.
	TrimStart, TrimEnd int

	Outputs []string
	Err     error
}

// Summary is the outcome of a run.
type Summary struct {
	Counts     []discover.ExtCount
	Discovered int
	// Results holds one entry per file that was started, in discovery order.
	Results []FileResult
	Failed  int
	// Canceled counts files interrupted by cancellation, including files
	// still running when a fail-fast error stopped the batch.
	Canceled int
}

func (s *Summary) add(r FileResult) {
	s.Results = append(s.Results, r)
	switch {
	case r.Err == nil:
	case errors.Is(r.Err, context.Canceled), errors.Is(r.Err, context.DeadlineExceeded):
		s.Canceled++
	default:
		s.Failed++
	}
}

// Pipeline processes a directory according to a configuration.
type Pipeline struct {
	cfg     *config.Config
	reg     *audio.Registry
	metrics *observe.Metrics
	log     *slog.Logger

	spectrogram render.SpectrogramConfig
	waveform    render.WaveformConfig
}

// New returns a pipeline for cfg. A nil registry means
// formats.DefaultRegistry(), nil metrics record nothing and a nil logger
// means slog.Default().
func New(cfg *config.Config, reg *audio.Registry, metrics *observe.Metrics, logger *slog.Logger) *Pipeline {
	if reg == nil {
		reg = formats.DefaultRegistry()
	}
	if metrics == nil {
		metrics = observe.Discard()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		cfg:         cfg,
		reg:         reg,
		metrics:     metrics,
		log:         logger,
		spectrogram: spectrogramConfig(cfg),
		waveform:    waveformConfig(cfg),
	}
}

// Run discovers the input files and processes them.
//
// With run.fail_fast the first failing file stops the batch and its error is
// returned together with the partial summary. Otherwise failures are logged,
// recorded in the summary and the run carries on. Cancelling ctx stops new
// files from being started.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	if err := os.MkdirAll(p.cfg.Output.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("pipeline: create output dir: %w", err)
	}

	fs, err := discover.Discover(p.cfg.Input.Dir, p.cfg.Input.Extensions,
		discover.WithFoldCase(p.cfg.Input.FoldCase),
		discover.WithLogger(p.log),
	)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	summary := &Summary{Counts: fs.Counts(), Discovered: fs.Len()}
	for _, c := range summary.Counts {
		p.metrics.RecordDiscovered(ctx, c.Ext, c.Count)
	}

	files := fs.Files()
	results := make([]*FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.cfg.Run.Workers, 1))

	for i, f := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			// a slot may free up only after an earlier failure
			if gctx.Err() != nil {
				return nil
			}
			res, err := p.ProcessFile(gctx, f)
			results[i] = &res
			if err == nil {
				return nil
			}
			if p.cfg.Run.FailFast {
				return err
			}
			p.log.Error("file failed, continuing", "path", f.Path, "err", err)
			return nil
		})
	}
	runErr := g.Wait()

	for _, r := range results {
		if r != nil {
			summary.add(*r)
		}
	}

	if runErr != nil {
		return summary, runErr
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// ProcessFile loads, trims and renders a single file.
func (p *Pipeline) ProcessFile(ctx context.Context, f discover.File) (res FileResult, err error) {
	res.File = f
	log := p.log.With("path", f.Path)

	p.metrics.ActiveFiles.Add(ctx, 1)
	defer func() {
		p.metrics.ActiveFiles.Add(ctx, -1)

		status := observe.StatusOK
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			status = observe.StatusCanceled
		case err != nil:
			status = observe.StatusError
		}
		p.metrics.RecordFile(ctx, status)

		if err != nil {
			err = fmt.Errorf("process %s: %w", f.Path, err)
			res.Err = err
		}
	}()

	if err := ctx.Err(); err != nil {
		return res, err
	}

	start := time.Now()
	sig, err := audviz.Load(f.Path,
		audviz.WithSampleRate(p.cfg.Audio.SampleRate),
		audviz.WithRegistry(p.reg),
	)
	if err != nil {
		return res, err
	}
	p.metrics.RecordStage(ctx, "load", start)
	p.metrics.SamplesDecoded.Add(ctx, int64(sig.Len()))

	res.SampleRate = sig.SampleRate
	res.Samples = sig.Len()
	res.Duration = sig.Duration()
	res.Peak = dsp.PeakAmplitude(sig)
	res.DominantHz = dsp.DominantFrequency(sig)

	log.Info("loaded",
		"sample_rate", res.SampleRate,
		"duration", res.Duration,
		"peak", res.Peak,
		"dominant_hz", res.DominantHz,
	)

	trimmed := sig
	if p.cfg.Trim.Enabled {
		start = time.Now()
		t := dsp.Trim(sig, p.cfg.Trim.TopDB,
			dsp.WithFrameLength(p.cfg.Trim.FrameLength),
			dsp.WithHopLength(p.cfg.Trim.HopLength),
		)
		p.metrics.RecordStage(ctx, "trim", start)

		trimmed = t.Signal
		res.TrimStart, res.TrimEnd = t.Start, t.End
		if t.Empty() {
			log.Warn("file is silent, trimmed to nothing", "top_db", p.cfg.Trim.TopDB)
		} else {
			log.Debug("trimmed", "start", t.Start, "end", t.End, "kept", trimmed.Duration())
		}
	}

	if p.cfg.Spectrogram.Enabled {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		src := sig
		if p.cfg.Spectrogram.UseTrimmed {
			src = trimmed
		}
		path := OutputPath(p.cfg.Output.Dir, f, KindSpectrogram, "png")
		if err := p.write(ctx, KindSpectrogram, path, func() error {
			return render.Spectrogram(path, src, p.spectrogram)
		}); err != nil {
			return res, err
		}
		res.Outputs = append(res.Outputs, path)
	}

	if p.cfg.Waveform.Enabled {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		src := sig
		if p.cfg.Waveform.UseTrimmed {
			src = trimmed
		}
		path := OutputPath(p.cfg.Output.Dir, f, KindWaveform, "png")
		if err := p.write(ctx, KindWaveform, path, func() error {
			return render.Waveform(path, src, p.waveform)
		}); err != nil {
			return res, err
		}
		res.Outputs = append(res.Outputs, path)
	}

	if p.cfg.Output.ExportTrimmed && p.cfg.Trim.Enabled {
		path := OutputPath(p.cfg.Output.Dir, f, KindTrimmed, "wav")
		if err := p.write(ctx, KindTrimmed, path, func() error {
			return exportWAV(path, trimmed)
		}); err != nil {
			return res, err
		}
		res.Outputs = append(res.Outputs, path)
	}

	return res, nil
}

func (p *Pipeline) write(ctx context.Context, kind, path string, fn func() error) error {
	start := time.Now()
	if err := fn(); err != nil {
		return err
	}
	p.metrics.RecordStage(ctx, kind, start)
	p.metrics.RecordImage(ctx, kind)
	p.log.Debug("wrote output", "kind", kind, "path", path)
	return nil
}

func exportWAV(path string, sig *audio.Signal) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := wav.WriteSignal(f, sig); err != nil {
		f.Close()
		return fmt.Errorf("export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// OutputPath names the output of kind for f inside dir:
// "<dir>/<name>.<ext>.<kind>.<format>". The source extension stays in the
// name so that a.wav and a.mp3 do not overwrite each other.
func OutputPath(dir string, f discover.File, kind, format string) string {
	base := filepath.Base(f.Path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, fmt.Sprintf("%s.%s.%s.%s", stem, strings.TrimPrefix(ext, "."), kind, format))
}
