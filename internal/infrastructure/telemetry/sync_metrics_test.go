package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"github.com/stockmesh/backend/internal/infrastructure/telemetry"
)

func TestNewSyncMetrics(t *testing.T) {
	sm, err := telemetry.NewSyncMetrics(telemetry.SyncMetricsConfig{
		Meter:  noop.NewMeterProvider().Meter("test"),
		Logger: zap.NewNop(),
	})
	require.NoError(t, err)
	require.NotNil(t, sm)
}

func TestNewSyncMetrics_NilMeter(t *testing.T) {
	sm, err := telemetry.NewSyncMetrics(telemetry.SyncMetricsConfig{})
	require.Error(t, err)
	assert.Nil(t, sm)
	assert.Equal(t, "NewSyncMetrics: meter cannot be nil", err.Error())
}

func TestSyncMetrics_Record(t *testing.T) {
	sm, err := telemetry.NewSyncMetrics(telemetry.SyncMetricsConfig{
		Meter: noop.NewMeterProvider().Meter("test"),
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	sm.RecordAllocation(ctx, "performance_weighted", false)
	sm.RecordAllocation(ctx, "even", true)
	sm.RecordChannelOperation(ctx, "ebay", "updated", telemetry.StatusSuccess, 150*time.Millisecond)
	sm.RecordResearchOutcome(ctx, "ebay", telemetry.StatusError)
	sm.RecordListingQuality(ctx, "ebay", 0.9, 1, 0.75)
	sm.RecordJob(ctx, "market_research", nil, time.Second)
	sm.RecordJob(ctx, "daily_snapshot", errors.New("boom"), time.Second)
}

func TestSyncMetrics_NilReceiver(t *testing.T) {
	var sm *telemetry.SyncMetrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		sm.RecordAllocation(ctx, "even", true)
		sm.RecordChannelOperation(ctx, "ebay", "delisted", telemetry.StatusSuccess, time.Millisecond)
		sm.RecordResearchOutcome(ctx, "ebay", telemetry.StatusSuccess)
		sm.RecordListingQuality(ctx, "ebay", 1, 1, 1)
		sm.RecordJob(ctx, "market_research", nil, time.Millisecond)
	})
}
