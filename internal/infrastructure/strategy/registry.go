package strategy

import (
	"fmt"
	"slices"
	"sync"

	"github.com/stockmesh/backend/internal/domain/shared"
	"github.com/stockmesh/backend/internal/domain/shared/strategy"
)

// StrategyRegistry holds the stock allocation strategies selectable by name
// (config key sync.allocation_strategy).
type StrategyRegistry struct {
	mu          sync.RWMutex
	byName      map[string]strategy.StockAllocationStrategy
	defaultName string
}

// NewStrategyRegistry creates an empty registry
func NewStrategyRegistry() *StrategyRegistry {
	return &StrategyRegistry{byName: make(map[string]strategy.StockAllocationStrategy)}
}

// Register adds a strategy. Names are unique.
func (r *StrategyRegistry) Register(s strategy.StockAllocationStrategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.byName[s.Name()]; dup {
		return fmt.Errorf("%w: allocation strategy %q", shared.ErrAlreadyExists, s.Name())
	}
	r.byName[s.Name()] = s
	return nil
}

// Get looks a strategy up by name. An empty name selects the default.
func (r *StrategyRegistry) Get(name string) (strategy.StockAllocationStrategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		if r.defaultName == "" {
			return nil, fmt.Errorf("%w: no default allocation strategy", shared.ErrNotFound)
		}
		name = r.defaultName
	}
	s, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: allocation strategy %q", shared.ErrNotFound, name)
	}
	return s, nil
}

// Names lists registered strategies in lexical order
func (r *StrategyRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SetDefault selects the strategy used when no name is given
func (r *StrategyRegistry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[name]; !ok {
		return fmt.Errorf("%w: allocation strategy %q", shared.ErrNotFound, name)
	}
	r.defaultName = name
	return nil
}

// Default returns the default strategy name, empty when unset
func (r *StrategyRegistry) Default() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultName
}
