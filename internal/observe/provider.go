// SPDX-License-Identifier: EPL-2.0

package observe

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// NewManualProvider returns an SDK meter provider whose data is pulled on
// demand through the returned reader. A batch run has no scrape endpoint, so
// the totals are read once at exit.
func NewManualProvider() (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)), reader
}

// Totals collects reader and returns every integer sum keyed by metric name
// and attribute set, e.g. "audviz.files.processed{status=ok}".
func Totals(ctx context.Context, reader sdkmetric.Reader) (map[string]int64, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return nil, fmt.Errorf("observe: collect: %w", err)
	}

	out := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				key := m.Name
				if dp.Attributes.Len() > 0 {
					key += "{" + dp.Attributes.Encoded(attribute.DefaultEncoder()) + "}"
				}
				out[key] += dp.Value
			}
		}
	}

	return out, nil
}
