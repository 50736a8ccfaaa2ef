package analytics

import (
	"context"
	"fmt"

	"github.com/stockmesh/backend/internal/domain/integration"
	"github.com/stockmesh/backend/internal/domain/shared"
)

// Price history window bounds in days
const (
	MinHistoryDays     = 1
	MaxHistoryDays     = 365
	DefaultHistoryDays = 30
)

// MarketDataSource returns raw market payloads for an item on a channel.
// The cache in front of the adapters implements it.
type MarketDataSource interface {
	FetchMarketData(ctx context.Context, channel integration.ChannelCode, itemID string) ([]byte, error)
}

// MarketDataInvalidator drops a cached payload so the next read goes upstream
type MarketDataInvalidator interface {
	Invalidate(ctx context.Context, channel integration.ChannelCode, itemID string) error
}

// AdapterSource reads market data straight from the channel adapters
type AdapterSource struct {
	registry integration.ChannelRegistry
}

// NewAdapterSource creates a MarketDataSource over the channel registry
func NewAdapterSource(registry integration.ChannelRegistry) *AdapterSource {
	return &AdapterSource{registry: registry}
}

// FetchMarketData implements MarketDataSource
func (s *AdapterSource) FetchMarketData(ctx context.Context, channel integration.ChannelCode, itemID string) ([]byte, error) {
	adapter, err := s.registry.Get(channel)
	if err != nil {
		return nil, err
	}
	return adapter.FetchMarketData(ctx, itemID)
}

// MarketDataService exposes channel market data and price history
type MarketDataService struct {
	registry integration.ChannelRegistry
	source   MarketDataSource
}

// NewMarketDataService creates a new MarketDataService. A nil source reads
// from the adapters directly.
func NewMarketDataService(registry integration.ChannelRegistry, source MarketDataSource) *MarketDataService {
	if source == nil {
		source = NewAdapterSource(registry)
	}
	return &MarketDataService{registry: registry, source: source}
}

// FetchMarketData returns the parsed market data of an item on a channel
func (s *MarketDataService) FetchMarketData(ctx context.Context, channel integration.ChannelCode, itemID string) (*integration.MarketData, error) {
	adapter, err := s.registry.Get(channel)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", integration.ErrUnknownChannel, channel)
	}
	raw, err := s.source.FetchMarketData(ctx, channel, itemID)
	if err != nil {
		return nil, err
	}
	return adapter.ParseResponse(raw)
}

// RefreshMarketData reads market data past the cache. Sources without a
// cache are read as usual.
func (s *MarketDataService) RefreshMarketData(ctx context.Context, channel integration.ChannelCode, itemID string) (*integration.MarketData, error) {
	if _, err := s.registry.Get(channel); err != nil {
		return nil, fmt.Errorf("%w: %s", integration.ErrUnknownChannel, channel)
	}
	if inv, ok := s.source.(MarketDataInvalidator); ok {
		if err := inv.Invalidate(ctx, channel, itemID); err != nil {
			return nil, err
		}
	}
	return s.FetchMarketData(ctx, channel, itemID)
}

// PriceHistory returns daily prices of an item on a channel for the last days
func (s *MarketDataService) PriceHistory(ctx context.Context, channel integration.ChannelCode, itemID string, days int) (*integration.PriceHistory, error) {
	if days < MinHistoryDays || days > MaxHistoryDays {
		return nil, shared.InvalidInput(fmt.Sprintf("days must be between %d and %d", MinHistoryDays, MaxHistoryDays))
	}
	adapter, err := s.registry.Get(channel)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", integration.ErrUnknownChannel, channel)
	}
	return adapter.GetPriceHistory(ctx, itemID, days)
}
