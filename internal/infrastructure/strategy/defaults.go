package strategy

import (
	"github.com/stockmesh/backend/internal/infrastructure/strategy/allocation"
)

// NewRegistryWithDefaults registers the built-in allocation strategies with
// performance_weighted as the default.
func NewRegistryWithDefaults() (*StrategyRegistry, error) {
	r := NewStrategyRegistry()
	if err := r.Register(allocation.NewPerformanceWeightedStrategy()); err != nil {
		return nil, err
	}
	if err := r.Register(allocation.NewEvenStrategy()); err != nil {
		return nil, err
	}
	if err := r.SetDefault(allocation.PerformanceWeighted); err != nil {
		return nil, err
	}
	return r, nil
}
