package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	analyticsapp "github.com/stockmesh/backend/internal/application/analytics"
	inventoryapp "github.com/stockmesh/backend/internal/application/inventory"
	"github.com/stockmesh/backend/internal/domain/analytics"
	"github.com/stockmesh/backend/internal/domain/integration"
)

type mockInventory struct {
	mock.Mock
}

func (m *mockInventory) UpdateStockLevel(ctx context.Context, itemID uuid.UUID, quantity int) (*inventoryapp.InventorySyncReport, error) {
	args := m.Called(ctx, itemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventoryapp.InventorySyncReport), args.Error(1)
}

func (m *mockInventory) GetStockLevels(ctx context.Context, itemID uuid.UUID) (*inventoryapp.ItemStockResponse, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventoryapp.ItemStockResponse), args.Error(1)
}

func (m *mockInventory) SyncListing(ctx context.Context, req inventoryapp.ListingSyncRequest) (*inventoryapp.ListingSyncReport, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventoryapp.ListingSyncReport), args.Error(1)
}

type mockPlatforms struct {
	mock.Mock
}

func (m *mockPlatforms) PlatformStatus(ctx context.Context, channel integration.ChannelCode) inventoryapp.PlatformStatus {
	args := m.Called(ctx, channel)
	return args.Get(0).(inventoryapp.PlatformStatus)
}

func (m *mockPlatforms) AllPlatformStatuses(ctx context.Context) []inventoryapp.PlatformStatus {
	args := m.Called(ctx)
	return args.Get(0).([]inventoryapp.PlatformStatus)
}

type mockMarketData struct {
	mock.Mock
}

func (m *mockMarketData) FetchMarketData(ctx context.Context, channel integration.ChannelCode, itemID string) (*integration.MarketData, error) {
	args := m.Called(ctx, channel, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.MarketData), args.Error(1)
}

func (m *mockMarketData) RefreshMarketData(ctx context.Context, channel integration.ChannelCode, itemID string) (*integration.MarketData, error) {
	args := m.Called(ctx, channel, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.MarketData), args.Error(1)
}

func (m *mockMarketData) PriceHistory(ctx context.Context, channel integration.ChannelCode, itemID string, days int) (*integration.PriceHistory, error) {
	args := m.Called(ctx, channel, itemID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.PriceHistory), args.Error(1)
}

type mockAnalyzers struct {
	mock.Mock
}

func (m *mockAnalyzers) PriceTrend(ctx context.Context, itemID uuid.UUID) (*analytics.PriceTrend, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.PriceTrend), args.Error(1)
}

func (m *mockAnalyzers) CompetitivePricing(ctx context.Context, itemID uuid.UUID) (*analytics.CompetitivePricing, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.CompetitivePricing), args.Error(1)
}

func (m *mockAnalyzers) SeasonalDemand(ctx context.Context, category string) (*analytics.SeasonalDemand, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.SeasonalDemand), args.Error(1)
}

type mockResearcher struct {
	mock.Mock
}

func (m *mockResearcher) CollectMarketData(ctx context.Context) (*analyticsapp.ResearchSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analyticsapp.ResearchSummary), args.Error(1)
}

type mockSnapshots struct {
	mock.Mock
}

func (m *mockSnapshots) CaptureDailySnapshot(ctx context.Context, day time.Time) (*analytics.AnalyticsSnapshot, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.AnalyticsSnapshot), args.Error(1)
}

func (m *mockSnapshots) LatestListingMetrics(ctx context.Context, listingID uuid.UUID) (*analytics.ListingAnalytics, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.ListingAnalytics), args.Error(1)
}

func (m *mockSnapshots) LatestSnapshot(ctx context.Context) (*analytics.AnalyticsSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.AnalyticsSnapshot), args.Error(1)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }

type stubChannels []integration.ChannelCode

func (s stubChannels) Codes() []integration.ChannelCode { return s }
