// SPDX-License-Identifier: EPL-2.0

// Package observe holds the OpenTelemetry metric instruments of the audviz
// batch run.
//
// Pipelines receive a [Metrics] built with [NewMetrics]; tests pass a
// meter provider backed by a manual reader to inspect what was recorded.
package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// meterName is the instrumentation scope name used for all audviz metrics.
const meterName = "github.com/ik5/audviz"

// Metric names.
const (
	NameFilesDiscovered = "audviz.files.discovered"
	NameFilesProcessed  = "audviz.files.processed"
	NameImagesWritten   = "audviz.images.written"
	NameSamplesDecoded  = "audviz.samples.decoded"
	NameStageDuration   = "audviz.stage.duration"
	NameActiveFiles     = "audviz.files.active"
)

// Status values of the files processed counter.
const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusCanceled = "canceled"
)

// Metrics holds the instruments. All fields are safe for concurrent use.
type Metrics struct {
	// FilesDiscovered counts discovered files. Attribute: ext.
	FilesDiscovered metric.Int64Counter

	// FilesProcessed counts finished files. Attribute: status.
	FilesProcessed metric.Int64Counter

	// ImagesWritten counts output files. Attribute: kind.
	ImagesWritten metric.Int64Counter

	// SamplesDecoded counts mono samples after resampling.
	SamplesDecoded metric.Int64Counter

	// StageDuration tracks time per pipeline stage. Attribute: stage.
	StageDuration metric.Float64Histogram

	// ActiveFiles is the number of files being worked on.
	ActiveFiles metric.Int64UpDownCounter
}

// stageBuckets are histogram boundaries in seconds; decoding a long file or
// plotting a large waveform can take several seconds.
var stageBuckets = []float64{
	0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
}

// NewMetrics creates a fully initialised [Metrics] using mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.FilesDiscovered, err = m.Int64Counter(NameFilesDiscovered,
		metric.WithDescription("Files found by discovery, by extension."),
	); err != nil {
		return nil, err
	}
	if met.FilesProcessed, err = m.Int64Counter(NameFilesProcessed,
		metric.WithDescription("Files processed, by status."),
	); err != nil {
		return nil, err
	}
	if met.ImagesWritten, err = m.Int64Counter(NameImagesWritten,
		metric.WithDescription("Output files written, by kind."),
	); err != nil {
		return nil, err
	}
	if met.SamplesDecoded, err = m.Int64Counter(NameSamplesDecoded,
		metric.WithDescription("Mono samples decoded at the analysis rate."),
	); err != nil {
		return nil, err
	}
	if met.StageDuration, err = m.Float64Histogram(NameStageDuration,
		metric.WithDescription("Time spent in each pipeline stage."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(stageBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ActiveFiles, err = m.Int64UpDownCounter(NameActiveFiles,
		metric.WithDescription("Files currently being processed."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// Discard returns instruments that record nothing.
func Discard() *Metrics {
	m, err := NewMetrics(noop.NewMeterProvider())
	if err != nil {
		// the no-op provider never fails
		panic("observe: " + err.Error())
	}
	return m
}

// RecordDiscovered adds n discovered files of extension ext.
func (m *Metrics) RecordDiscovered(ctx context.Context, ext string, n int) {
	m.FilesDiscovered.Add(ctx, int64(n), metric.WithAttributes(attribute.String("ext", ext)))
}

// RecordFile counts one finished file.
func (m *Metrics) RecordFile(ctx context.Context, status string) {
	m.FilesProcessed.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

// RecordImage counts one written output of the given kind.
func (m *Metrics) RecordImage(ctx context.Context, kind string) {
	m.ImagesWritten.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordStage records how long stage took since start.
func (m *Metrics) RecordStage(ctx context.Context, stage string, start time.Time) {
	m.StageDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("stage", stage)),
	)
}
