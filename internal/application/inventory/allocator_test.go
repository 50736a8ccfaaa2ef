package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/stockmesh/backend/internal/domain/integration"
	"github.com/stockmesh/backend/internal/domain/shared/strategy"
	"github.com/stockmesh/backend/internal/infrastructure/strategy/allocation"
)

type faultyStrategy struct {
	strategy.BaseStrategy
	allocate func(strategy.StockAllocationContext) (strategy.StockAllocationResult, error)
}

func newFaultyStrategy(fn func(strategy.StockAllocationContext) (strategy.StockAllocationResult, error)) *faultyStrategy {
	return &faultyStrategy{
		BaseStrategy: strategy.NewBaseStrategy("faulty", "test"),
		allocate:     fn,
	}
}

func (s *faultyStrategy) Allocate(ctx context.Context, allocCtx strategy.StockAllocationContext) (strategy.StockAllocationResult, error) {
	return s.allocate(allocCtx)
}

func newTestAllocator() *Allocator {
	return NewAllocator(allocation.NewPerformanceWeightedStrategy(), allocation.NewEvenStrategy(), zap.NewNop())
}

func TestAllocator_WeightedSplit(t *testing.T) {
	listed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sold := listed.Add(168 * time.Hour)

	// one sale in the default time and six cancellations weighs a quarter of
	// a channel without history
	slow := []strategy.OrderOutcome{{Status: strategy.OutcomeCompleted, ListedAt: listed, CompletedAt: &sold}}
	for i := 0; i < 6; i++ {
		slow = append(slow, strategy.OrderOutcome{Status: strategy.OutcomeCancelled, ListedAt: listed})
	}

	res := newTestAllocator().Allocate(context.Background(), 10,
		[]integration.ChannelCode{"ebay", "shop"},
		map[integration.ChannelCode][]strategy.OrderOutcome{"shop": slow},
	)

	assert.Equal(t, map[integration.ChannelCode]int{"ebay": 8, "shop": 2}, res.Allocations)
	assert.InDelta(t, 1.0, res.Weights["ebay"], 1e-9)
	assert.InDelta(t, 0.25, res.Weights["shop"], 1e-9)
	assert.Equal(t, allocation.PerformanceWeighted, res.Strategy)
	assert.False(t, res.Fallback)
}

func TestAllocator_LeftoverToFirstChannel(t *testing.T) {
	res := newTestAllocator().Allocate(context.Background(), 7,
		[]integration.ChannelCode{"a", "b", "c"}, nil)

	assert.Equal(t, map[integration.ChannelCode]int{"a": 3, "b": 2, "c": 2}, res.Allocations)
}

func TestAllocator_SumInvariant(t *testing.T) {
	listed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fast := listed.Add(2 * time.Hour)
	history := map[integration.ChannelCode][]strategy.OrderOutcome{
		"a": {{Status: strategy.OutcomeCompleted, ListedAt: listed, CompletedAt: &fast}},
		"b": {{Status: strategy.OutcomeCancelled, ListedAt: listed}},
	}
	channels := []integration.ChannelCode{"a", "b", "c", "d"}
	a := newTestAllocator()

	for total := 0; total <= 100; total++ {
		for n := 1; n <= len(channels); n++ {
			res := a.Allocate(context.Background(), total, channels[:n], history)
			assert.Equal(t, total, res.Sum(), "total=%d channels=%d", total, n)
			assert.Len(t, res.Allocations, n)
		}
	}
}

func TestAllocator_FallbackOnError(t *testing.T) {
	failing := newFaultyStrategy(func(strategy.StockAllocationContext) (strategy.StockAllocationResult, error) {
		return strategy.StockAllocationResult{}, strategy.ErrAllocationFailed
	})
	a := NewAllocator(failing, allocation.NewEvenStrategy(), zap.NewNop())

	res := a.Allocate(context.Background(), 11, []integration.ChannelCode{"a", "b", "c"}, nil)

	assert.True(t, res.Fallback)
	assert.Equal(t, allocation.Even, res.Strategy)
	assert.Equal(t, map[integration.ChannelCode]int{"a": 4, "b": 4, "c": 3}, res.Allocations)
}

func TestAllocator_FallbackOnPanic(t *testing.T) {
	panicking := newFaultyStrategy(func(strategy.StockAllocationContext) (strategy.StockAllocationResult, error) {
		panic("boom")
	})
	a := NewAllocator(panicking, allocation.NewEvenStrategy(), zap.NewNop())

	res := a.Allocate(context.Background(), 5, []integration.ChannelCode{"a", "b"}, nil)

	assert.True(t, res.Fallback)
	assert.Equal(t, 5, res.Sum())
}

func TestAllocator_FallbackOnBrokenSum(t *testing.T) {
	broken := newFaultyStrategy(func(c strategy.StockAllocationContext) (strategy.StockAllocationResult, error) {
		return strategy.StockAllocationResult{Allocations: map[string]int{"a": c.TotalStock, "b": 1}}, nil
	})
	a := NewAllocator(broken, allocation.NewEvenStrategy(), zap.NewNop())

	res := a.Allocate(context.Background(), 6, []integration.ChannelCode{"a", "b"}, nil)

	assert.True(t, res.Fallback)
	assert.Equal(t, map[integration.ChannelCode]int{"a": 3, "b": 3}, res.Allocations)
}

func TestAllocator_FallbackOnCompletionBeforeListing(t *testing.T) {
	listed := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	before := listed.Add(-time.Hour)
	history := map[integration.ChannelCode][]strategy.OrderOutcome{
		"a": {{Status: strategy.OutcomeCompleted, ListedAt: listed, CompletedAt: &before}},
	}

	res := newTestAllocator().Allocate(context.Background(), 3, []integration.ChannelCode{"a", "b"}, history)

	assert.True(t, res.Fallback)
	assert.Equal(t, map[integration.ChannelCode]int{"a": 2, "b": 1}, res.Allocations)
}

func TestAllocator_EmptyChannels(t *testing.T) {
	res := newTestAllocator().Allocate(context.Background(), 5, nil, nil)
	assert.Empty(t, res.Allocations)
	assert.False(t, res.Fallback)
}

func TestAllocator_DuplicateChannels(t *testing.T) {
	res := newTestAllocator().Allocate(context.Background(), 4, []integration.ChannelCode{"a", "a", "b"}, nil)
	assert.Equal(t, map[integration.ChannelCode]int{"a": 2, "b": 2}, res.Allocations)
	assert.False(t, res.Fallback)
}
