// Package observability holds custom metric instruments.
package observability

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// CatalogSwapMetrics holds metrics for catalog snapshot swaps.
type CatalogSwapMetrics struct {
	swapCounter  metric.Int64Counter
	durationHist metric.Float64Histogram
	lastSwapUnix atomic.Int64
}

// InitCatalogSwapMetrics initializes catalog swap metrics.
func InitCatalogSwapMetrics() (*CatalogSwapMetrics, error) {
	meter := otel.Meter("postgrest")

	swapCounter, err := meter.Int64Counter(
		"catalog.swap.total",
		metric.WithDescription("Total number of catalog snapshot swaps"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog swap counter: %w", err)
	}

	durationHist, err := meter.Float64Histogram(
		"catalog.swap.build_duration",
		metric.WithDescription("Duration of catalog snapshot builds in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog swap duration histogram: %w", err)
	}

	lastSwapGauge, err := meter.Int64ObservableGauge(
		"catalog.swap.last_unix",
		metric.WithDescription("Unix timestamp of the last catalog snapshot swap"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog swap gauge: %w", err)
	}

	metrics := &CatalogSwapMetrics{
		swapCounter:  swapCounter,
		durationHist: durationHist,
	}

	_, err = meter.RegisterCallback(
		func(ctx context.Context, observer metric.Observer) error {
			value := metrics.lastSwapUnix.Load()
			if value > 0 {
				observer.ObserveInt64(lastSwapGauge, value)
			}
			return nil
		},
		lastSwapGauge,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register catalog swap gauge callback: %w", err)
	}

	return metrics, nil
}

// RecordSwap records one catalog snapshot swap.
func (m *CatalogSwapMetrics) RecordSwap(ctx context.Context, buildDuration time.Duration, epoch uint64) {
	attrs := []attribute.KeyValue{
		attribute.Int64("catalog.epoch", int64(epoch)),
	}
	m.swapCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.durationHist.Record(ctx, float64(buildDuration.Milliseconds()), metric.WithAttributes(attrs...))
	m.lastSwapUnix.Store(time.Now().Unix())
}
