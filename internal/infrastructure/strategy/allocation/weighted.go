package allocation

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/stockmesh/backend/internal/domain/shared/strategy"
)

// Scoring constants for channel performance
const (
	DefaultSuccessRate  = 0.5
	DefaultHoursToSell  = 168.0
	MinChannelWeight    = 0.1
	NoHistoryWeight     = 1.0
	successRateFactor   = 0.7
	speedFactor         = 0.3
	floorEpsilon        = 1e-9
	PerformanceWeighted = "performance_weighted"
)

// PerformanceWeightedStrategy splits stock in proportion to each channel's
// sell-through rate and speed
type PerformanceWeightedStrategy struct {
	strategy.BaseStrategy
}

// NewPerformanceWeightedStrategy creates a new performance weighted strategy
func NewPerformanceWeightedStrategy() *PerformanceWeightedStrategy {
	return &PerformanceWeightedStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			PerformanceWeighted,
			"Allocate stock by channel success rate and time to sell",
		),
	}
}

// Allocate weights every channel from its order history and splits the stock
func (s *PerformanceWeightedStrategy) Allocate(
	ctx context.Context,
	allocCtx strategy.StockAllocationContext,
) (strategy.StockAllocationResult, error) {
	if allocCtx.TotalStock < 0 {
		return strategy.StockAllocationResult{}, fmt.Errorf("%w: negative total stock %d", strategy.ErrAllocationFailed, allocCtx.TotalStock)
	}
	if len(allocCtx.Channels) == 0 {
		return strategy.StockAllocationResult{}, fmt.Errorf("%w: no channels", strategy.ErrAllocationFailed)
	}

	weights := make(map[string]float64, len(allocCtx.Channels))
	for _, ch := range allocCtx.Channels {
		w, err := ChannelWeight(allocCtx.History[ch])
		if err != nil {
			return strategy.StockAllocationResult{}, fmt.Errorf("channel %s: %w", ch, err)
		}
		weights[ch] = w
	}

	allocations, err := SplitByWeight(allocCtx.TotalStock, allocCtx.Channels, weights)
	if err != nil {
		return strategy.StockAllocationResult{}, err
	}

	return strategy.StockAllocationResult{
		Allocations: allocations,
		Weights:     weights,
		Strategy:    s.Name(),
	}, nil
}

// ChannelWeight scores a channel from its order history.
// A channel without any history gets NoHistoryWeight.
func ChannelWeight(history []strategy.OrderOutcome) (float64, error) {
	if len(history) == 0 {
		return NoHistoryWeight, nil
	}

	var completed, cancelled int
	var hoursTotal float64
	var timed int
	for _, o := range history {
		switch o.Status {
		case strategy.OutcomeCompleted:
			completed++
			if hours, ok := o.HoursToSell(); ok {
				if hours < 0 {
					return 0, fmt.Errorf("%w: order completed before listing", strategy.ErrAllocationFailed)
				}
				hoursTotal += hours
				timed++
			}
		case strategy.OutcomeCancelled:
			cancelled++
		}
	}

	successRate := DefaultSuccessRate
	if completed+cancelled > 0 {
		successRate = float64(completed) / float64(completed+cancelled)
	}
	avgHours := DefaultHoursToSell
	if timed > 0 {
		avgHours = hoursTotal / float64(timed)
	}

	weight := successRate*successRateFactor + DefaultHoursToSell/(avgHours+DefaultHoursToSell)*speedFactor
	weight = math.Max(MinChannelWeight, weight)
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return 0, fmt.Errorf("%w: non-finite weight", strategy.ErrAllocationFailed)
	}
	return weight, nil
}

// SplitByWeight divides total across channels in proportion to weights.
// Every channel receives at least one unit when total allows it; the
// remainder goes out one unit at a time by descending weight, ties broken
// by the order of channels. The result always sums to total.
func SplitByWeight(total int, channels []string, weights map[string]float64) (map[string]int, error) {
	n := len(channels)
	if n == 0 {
		return nil, fmt.Errorf("%w: no channels", strategy.ErrAllocationFailed)
	}
	if total < 0 {
		return nil, fmt.Errorf("%w: negative total stock %d", strategy.ErrAllocationFailed, total)
	}

	var sum float64
	seen := make(map[string]struct{}, n)
	for _, ch := range channels {
		if _, dup := seen[ch]; dup {
			return nil, fmt.Errorf("%w: duplicate channel %s", strategy.ErrAllocationFailed, ch)
		}
		seen[ch] = struct{}{}
		w, ok := weights[ch]
		if !ok || w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: invalid weight for channel %s", strategy.ErrAllocationFailed, ch)
		}
		sum += w
	}
	if math.IsInf(sum, 0) {
		return nil, fmt.Errorf("%w: weight sum overflow", strategy.ErrAllocationFailed)
	}

	// rank holds channel indexes by descending weight, ties by input order
	rank := make([]int, n)
	for i := range rank {
		rank[i] = i
	}
	sort.SliceStable(rank, func(a, b int) bool {
		return weights[channels[rank[a]]] > weights[channels[rank[b]]]
	})

	alloc := make([]int, n)
	if total < n {
		for _, idx := range rank[:total] {
			alloc[idx] = 1
		}
		return toMap(channels, alloc, total)
	}

	assigned := 0
	for i, ch := range channels {
		share := int(math.Floor(float64(total)*weights[ch]/sum + floorEpsilon))
		if share < 1 {
			share = 1
		}
		alloc[i] = share
		assigned += share
	}

	for assigned > total {
		victim := -1
		for i := range channels {
			if alloc[i] <= 1 {
				continue
			}
			if victim < 0 || alloc[i] > alloc[victim] ||
				(alloc[i] == alloc[victim] && weights[channels[i]] <= weights[channels[victim]]) {
				victim = i
			}
		}
		if victim < 0 {
			return nil, fmt.Errorf("%w: cannot reduce base shares", strategy.ErrAllocationFailed)
		}
		alloc[victim]--
		assigned--
	}

	remaining := total - assigned
	for i := 0; remaining > 0; i++ {
		alloc[rank[i%n]]++
		remaining--
	}

	return toMap(channels, alloc, total)
}

func toMap(channels []string, alloc []int, total int) (map[string]int, error) {
	out := make(map[string]int, len(channels))
	got := 0
	for i, ch := range channels {
		out[ch] = alloc[i]
		got += alloc[i]
	}
	if got != total {
		return nil, fmt.Errorf("%w: allocated %d of %d", strategy.ErrAllocationFailed, got, total)
	}
	return out, nil
}
