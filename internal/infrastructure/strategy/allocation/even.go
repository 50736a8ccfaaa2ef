package allocation

import (
	"context"
	"fmt"

	"github.com/stockmesh/backend/internal/domain/shared/strategy"
)

// Even is the name of the even split strategy
const Even = "even"

// EvenStrategy splits stock evenly; the first total mod n channels in
// input order receive one extra unit
type EvenStrategy struct {
	strategy.BaseStrategy
}

// NewEvenStrategy creates a new even split strategy
func NewEvenStrategy() *EvenStrategy {
	return &EvenStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			Even,
			"Split stock evenly across channels",
		),
	}
}

// Allocate ignores history and splits the stock evenly
func (s *EvenStrategy) Allocate(
	ctx context.Context,
	allocCtx strategy.StockAllocationContext,
) (strategy.StockAllocationResult, error) {
	n := len(allocCtx.Channels)
	if n == 0 {
		return strategy.StockAllocationResult{}, fmt.Errorf("%w: no channels", strategy.ErrAllocationFailed)
	}
	if allocCtx.TotalStock < 0 {
		return strategy.StockAllocationResult{}, fmt.Errorf("%w: negative total stock %d", strategy.ErrAllocationFailed, allocCtx.TotalStock)
	}

	base := allocCtx.TotalStock / n
	extra := allocCtx.TotalStock % n

	allocations := make(map[string]int, n)
	weights := make(map[string]float64, n)
	for i, ch := range allocCtx.Channels {
		qty := base
		if i < extra {
			qty++
		}
		allocations[ch] += qty
		weights[ch] = NoHistoryWeight
	}

	return strategy.StockAllocationResult{
		Allocations: allocations,
		Weights:     weights,
		Strategy:    s.Name(),
	}, nil
}
