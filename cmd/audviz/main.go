// SPDX-License-Identifier: EPL-2.0

// Command audviz renders spectrograms and waveforms for every audio file in
// a directory.
//
//	audviz -config audviz.yaml
//	audviz -dir recordings -out images -workers 4
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/ik5/audviz/formats"
	"github.com/ik5/audviz/internal/config"
	"github.com/ik5/audviz/internal/observe"
	"github.com/ik5/audviz/internal/pipeline"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const defaultConfigPath = "audviz.yaml"

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("audviz", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", defaultConfigPath, "path to the YAML configuration file")
	dir := fs.String("dir", "", "directory to scan (overrides input.dir)")
	out := fs.String("out", "", "output directory (overrides output.dir)")
	logLevel := fs.String("log-level", "", "debug, info, warn or error (overrides log_level)")
	workers := fs.Int("workers", 0, "files processed at once (overrides run.workers)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath, fs)
	if err != nil {
		fmt.Fprintf(stderr, "audviz: %v\n", err)
		return 1
	}

	if *dir != "" {
		cfg.Input.Dir = *dir
	}
	if *out != "" {
		cfg.Output.Dir = *out
	}
	if *logLevel != "" {
		cfg.LogLevel = config.LogLevel(*logLevel)
	}
	if *workers > 0 {
		cfg.Run.Workers = *workers
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(stderr, "audviz: invalid configuration: %v\n", err)
		return 1
	}

	logger := newLogger(stderr, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mp, reader := observe.NewManualProvider()
	defer func() { _ = mp.Shutdown(context.Background()) }()

	metrics, err := observe.NewMetrics(mp)
	if err != nil {
		logger.Error("failed to create metrics", "err", err)
		return 1
	}

	logger.Info("audviz starting",
		"dir", cfg.Input.Dir,
		"extensions", cfg.Input.Extensions,
		"out", cfg.Output.Dir,
		"sample_rate", cfg.Audio.SampleRate,
		"workers", cfg.Run.Workers,
	)

	summary, runErr := pipeline.New(cfg, formats.DefaultRegistry(), metrics, logger).Run(ctx)

	if summary != nil {
		logger.Info("audviz finished",
			"discovered", summary.Discovered,
			"processed", len(summary.Results),
			"failed", summary.Failed,
			"canceled", summary.Canceled,
		)
	}
	logTotals(logger, reader)

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			logger.Warn("interrupted")
		} else {
			logger.Error("run failed", "err", runErr)
		}
		return 1
	}
	if summary != nil && summary.Failed > 0 {
		return 1
	}
	return 0
}

// loadConfig reads path. A missing file is only an error when the path was
// set explicitly; otherwise the defaults apply.
func loadConfig(path string, fs *flag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}

	explicit := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})
	if !explicit && errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return nil, err
}

// logTotals logs every counter recorded during the run, one line each.
func logTotals(logger *slog.Logger, reader sdkmetric.Reader) {
	totals, err := observe.Totals(context.Background(), reader)
	if err != nil {
		logger.Warn("failed to collect metrics", "err", err)
		return
	}
	for _, name := range slices.Sorted(maps.Keys(totals)) {
		logger.Debug("metric", "name", name, "value", totals[name])
	}
}

func newLogger(w io.Writer, level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
