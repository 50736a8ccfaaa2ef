package ecommerce

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/stockmesh/backend/internal/domain/integration"
)

// Factory builds an adapter from its configuration
type Factory func(cfg *ChannelConfig) (integration.ChannelAdapter, error)

// factories maps an adapter kind to its constructor
var factories = map[string]Factory{
	KindSandbox: func(cfg *ChannelConfig) (integration.ChannelAdapter, error) {
		return NewSandboxAdapter(cfg)
	},
	KindREST: func(cfg *ChannelConfig) (integration.ChannelAdapter, error) {
		return NewRESTAdapter(cfg)
	},
}

// NewAdapter builds the adapter selected by cfg.Kind
func NewAdapter(cfg ChannelConfig) (integration.ChannelAdapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("channel %s: %w", cfg.Code, err)
	}
	factory, ok := factories[cfg.Kind]
	if !ok {
		return nil, fmt.Errorf("channel %s: %w: %s", cfg.Code, ErrConfigUnknownKind, cfg.Kind)
	}
	return factory(&cfg)
}

// Registry holds the adapters configured for this deployment
type Registry struct {
	mu       sync.RWMutex
	adapters map[integration.ChannelCode]integration.ChannelAdapter
	order    []integration.ChannelCode
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[integration.ChannelCode]integration.ChannelAdapter),
	}
}

// NewRegistryFromConfig builds and registers an adapter for every enabled channel
func NewRegistryFromConfig(cfgs []ChannelConfig, logger *zap.Logger) (*Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := NewRegistry()
	for _, cfg := range cfgs {
		if !cfg.Enabled {
			logger.Info("Channel disabled, skipping", zap.String("channel", cfg.Code.String()))
			continue
		}
		adapter, err := NewAdapter(cfg)
		if err != nil {
			return nil, err
		}
		if err := r.Register(adapter); err != nil {
			return nil, err
		}
		logger.Info("Channel registered",
			zap.String("channel", cfg.Code.String()),
			zap.String("kind", cfg.Kind),
		)
	}
	return r, nil
}

// Register adds an adapter under its own code
func (r *Registry) Register(adapter integration.ChannelAdapter) error {
	code := adapter.Code()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.adapters[code]; exists {
		return fmt.Errorf("%w: %s", integration.ErrChannelAlreadyRegistered, code)
	}
	r.adapters[code] = adapter
	r.order = append(r.order, code)
	return nil
}

// Get returns the adapter for the channel or ErrUnknownChannel
func (r *Registry) Get(code integration.ChannelCode) (integration.ChannelAdapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	adapter, ok := r.adapters[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", integration.ErrUnknownChannel, code)
	}
	return adapter, nil
}

// Codes returns the registered channel codes in registration order
func (r *Registry) Codes() []integration.ChannelCode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]integration.ChannelCode, len(r.order))
	copy(out, r.order)
	return out
}

// Has returns true if the channel is registered
func (r *Registry) Has(code integration.ChannelCode) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.adapters[code]
	return ok
}

var _ integration.ChannelRegistry = (*Registry)(nil)
