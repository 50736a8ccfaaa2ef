package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// SyncMetrics records allocation, channel synchronization and analytics job
// activity. A nil *SyncMetrics is valid and records nothing.
type SyncMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	allocationsTotal       *Counter
	allocationFallbacks    *Counter
	channelOperationsTotal *Counter
	channelOperationTime   *Histogram
	researchListingsTotal  *Counter
	listingQuality         *FloatGauge
	jobDuration            *Histogram
}

// SyncMetricsConfig holds configuration for sync metrics.
type SyncMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewSyncMetrics creates a new SyncMetrics instance.
func NewSyncMetrics(cfg SyncMetricsConfig) (*SyncMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sm := &SyncMetrics{
		meter:  cfg.Meter,
		logger: logger,
	}

	var err error
	sm.allocationsTotal, err = NewCounter(cfg.Meter,
		"stockmesh_allocations_total",
		"Total number of stock allocations computed",
		"{allocations}",
	)
	if err != nil {
		return nil, err
	}

	sm.allocationFallbacks, err = NewCounter(cfg.Meter,
		"stockmesh_allocation_fallbacks_total",
		"Allocations served by the fallback strategy",
		"{allocations}",
	)
	if err != nil {
		return nil, err
	}

	sm.channelOperationsTotal, err = NewCounter(cfg.Meter,
		"stockmesh_channel_operations_total",
		"Channel adapter operations by outcome",
		"{operations}",
	)
	if err != nil {
		return nil, err
	}

	sm.channelOperationTime, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "stockmesh_channel_operation_duration_seconds",
		Description: "Duration of channel adapter operations",
		Unit:        "s",
		Boundaries:  ChannelDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	sm.researchListingsTotal, err = NewCounter(cfg.Meter,
		"stockmesh_market_research_listings_total",
		"Listings processed by market research by outcome",
		"{listings}",
	)
	if err != nil {
		return nil, err
	}

	sm.listingQuality, err = NewFloatGauge(cfg.Meter,
		"stockmesh_listing_data_quality",
		"Latest data quality score of a listing",
		"1",
	)
	if err != nil {
		return nil, err
	}

	sm.jobDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "stockmesh_job_duration_seconds",
		Description: "Duration of scheduled analytics jobs",
		Unit:        "s",
		Boundaries:  JobDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return sm, nil
}

// Operation outcomes used as the status label
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RecordAllocation records an allocation and whether the fallback produced it.
func (sm *SyncMetrics) RecordAllocation(ctx context.Context, strategyName string, fallback bool) {
	if sm == nil {
		return
	}
	sm.allocationsTotal.Inc(ctx,
		AttrStrategy.String(strategyName),
		AttrFallback.Bool(fallback),
	)
	if fallback {
		sm.allocationFallbacks.Inc(ctx)
	}
}

// RecordChannelOperation records one adapter call.
func (sm *SyncMetrics) RecordChannelOperation(ctx context.Context, channel, action, status string, d time.Duration) {
	if sm == nil {
		return
	}
	attrs := []attribute.KeyValue{
		AttrChannel.String(channel),
		AttrAction.String(action),
		AttrStatus.String(status),
	}
	sm.channelOperationsTotal.Inc(ctx, attrs...)
	sm.channelOperationTime.RecordDuration(ctx, d, attrs...)
}

// RecordResearchOutcome records the market research result of one listing.
func (sm *SyncMetrics) RecordResearchOutcome(ctx context.Context, channel, status string) {
	if sm == nil {
		return
	}
	sm.researchListingsTotal.Inc(ctx,
		AttrChannel.String(channel),
		AttrStatus.String(status),
	)
}

// RecordListingQuality records the data quality scores of a listing's channel.
func (sm *SyncMetrics) RecordListingQuality(ctx context.Context, channel string, accuracy, freshness, coverage float64) {
	if sm == nil {
		return
	}
	ch := AttrChannel.String(channel)
	sm.listingQuality.Record(ctx, accuracy, ch, AttrMetric.String("price_accuracy"))
	sm.listingQuality.Record(ctx, freshness, ch, AttrMetric.String("data_freshness"))
	sm.listingQuality.Record(ctx, coverage, ch, AttrMetric.String("coverage_rate"))
}

// RecordJob records the duration and outcome of a scheduled job run.
func (sm *SyncMetrics) RecordJob(ctx context.Context, job string, err error, d time.Duration) {
	if sm == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	sm.jobDuration.RecordDuration(ctx, d,
		AttrJob.String(job),
		AttrStatus.String(status),
	)
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewSyncMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
