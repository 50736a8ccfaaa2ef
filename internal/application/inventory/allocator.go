package inventory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/stockmesh/backend/internal/domain/integration"
	"github.com/stockmesh/backend/internal/domain/shared/strategy"
	"github.com/stockmesh/backend/internal/infrastructure/telemetry"
)

// AllocationResult is the per-channel allocation computed for a sync
type AllocationResult struct {
	Allocations map[integration.ChannelCode]int     `json:"allocations"`
	Weights     map[integration.ChannelCode]float64 `json:"weights"`
	Strategy    string                              `json:"strategy"`
	Fallback    bool                                `json:"fallback"`
}

// Sum returns the number of allocated units
func (r AllocationResult) Sum() int {
	total := 0
	for _, qty := range r.Allocations {
		total += qty
	}
	return total
}

// Allocator splits an item's stock across channels. It runs the primary
// strategy and falls back to the secondary one on any error or panic, so
// Allocate never fails.
type Allocator struct {
	primary  strategy.StockAllocationStrategy
	fallback strategy.StockAllocationStrategy
	logger   *zap.Logger
	metrics  *telemetry.SyncMetrics
}

// NewAllocator creates a new Allocator
func NewAllocator(primary, fallback strategy.StockAllocationStrategy, logger *zap.Logger) *Allocator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Allocator{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// SetMetrics sets the metrics collector
func (a *Allocator) SetMetrics(m *telemetry.SyncMetrics) {
	a.metrics = m
}

// Allocate splits totalStock across channels using their order history.
// For a non-empty channel set the allocations sum to totalStock.
func (a *Allocator) Allocate(
	ctx context.Context,
	totalStock int,
	channels []integration.ChannelCode,
	history map[integration.ChannelCode][]strategy.OrderOutcome,
) AllocationResult {
	if len(channels) == 0 {
		return AllocationResult{
			Allocations: map[integration.ChannelCode]int{},
			Weights:     map[integration.ChannelCode]float64{},
			Strategy:    a.primary.Name(),
		}
	}
	if totalStock < 0 {
		totalStock = 0
	}

	allocCtx := strategy.StockAllocationContext{
		TotalStock: totalStock,
		Channels:   make([]string, 0, len(channels)),
		History:    make(map[string][]strategy.OrderOutcome, len(history)),
	}
	seen := make(map[integration.ChannelCode]struct{}, len(channels))
	for _, ch := range channels {
		if _, dup := seen[ch]; dup {
			continue
		}
		seen[ch] = struct{}{}
		allocCtx.Channels = append(allocCtx.Channels, ch.String())
	}
	for ch, outcomes := range history {
		allocCtx.History[ch.String()] = outcomes
	}

	res, err := a.run(ctx, a.primary, allocCtx)
	if err != nil {
		a.logger.Warn("Allocation strategy failed, falling back",
			zap.String("strategy", a.primary.Name()),
			zap.String("fallback", a.fallback.Name()),
			zap.Int("total_stock", totalStock),
			zap.Error(err),
		)
		res, err = a.run(ctx, a.fallback, allocCtx)
		if err != nil {
			// the even split cannot fail on a non-empty channel set
			a.logger.Error("Fallback allocation failed", zap.Error(err))
			res = strategy.StockAllocationResult{Allocations: map[string]int{}}
		}
		res.Fallback = true
	}

	a.metrics.RecordAllocation(ctx, res.Strategy, res.Fallback)
	return toAllocationResult(res)
}

// run executes one strategy, converting panics and broken sums into
// ErrAllocationFailed
func (a *Allocator) run(
	ctx context.Context,
	s strategy.StockAllocationStrategy,
	allocCtx strategy.StockAllocationContext,
) (res strategy.StockAllocationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = strategy.StockAllocationResult{}
			err = fmt.Errorf("%w: panic in %s: %v", strategy.ErrAllocationFailed, s.Name(), r)
		}
	}()

	res, err = s.Allocate(ctx, allocCtx)
	if err != nil {
		return strategy.StockAllocationResult{}, err
	}
	for _, ch := range allocCtx.Channels {
		qty, ok := res.Allocations[ch]
		if !ok || qty < 0 {
			return strategy.StockAllocationResult{}, fmt.Errorf("%w: bad allocation for channel %s", strategy.ErrAllocationFailed, ch)
		}
	}
	if len(res.Allocations) != len(allocCtx.Channels) || res.Sum() != allocCtx.TotalStock {
		return strategy.StockAllocationResult{}, fmt.Errorf("%w: allocated %d of %d", strategy.ErrAllocationFailed, res.Sum(), allocCtx.TotalStock)
	}
	if res.Strategy == "" {
		res.Strategy = s.Name()
	}
	return res, nil
}

func toAllocationResult(res strategy.StockAllocationResult) AllocationResult {
	out := AllocationResult{
		Allocations: make(map[integration.ChannelCode]int, len(res.Allocations)),
		Weights:     make(map[integration.ChannelCode]float64, len(res.Weights)),
		Strategy:    res.Strategy,
		Fallback:    res.Fallback,
	}
	for ch, qty := range res.Allocations {
		out.Allocations[integration.ChannelCode(ch)] = qty
	}
	for ch, w := range res.Weights {
		out.Weights[integration.ChannelCode(ch)] = w
	}
	return out
}
