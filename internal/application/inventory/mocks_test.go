package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/stockmesh/backend/internal/domain/integration"
	"github.com/stockmesh/backend/internal/domain/inventory"
	"github.com/stockmesh/backend/internal/domain/shared"
	"github.com/stockmesh/backend/internal/domain/shared/strategy"
)

// MockListingRepository is a mock implementation of inventory.ListingRepository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Listing), args.Error(1)
}

func (m *MockListingRepository) FindActiveByItem(ctx context.Context, itemID uuid.UUID) ([]inventory.Listing, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Listing), args.Error(1)
}

func (m *MockListingRepository) FindAllActive(ctx context.Context) ([]inventory.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Listing), args.Error(1)
}

func (m *MockListingRepository) Save(ctx context.Context, listing *inventory.Listing) error {
	return m.Called(ctx, listing).Error(0)
}

func (m *MockListingRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int, at time.Time) error {
	return m.Called(ctx, id, quantity, at).Error(0)
}

func (m *MockListingRepository) MarkEnded(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockListingRepository) UpdatePlatformData(ctx context.Context, id uuid.UUID, receipt integration.ListingReceipt, at time.Time) error {
	return m.Called(ctx, id, receipt, at).Error(0)
}

// MockItemRepository is a mock implementation of inventory.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepository) UpdateStock(ctx context.Context, id uuid.UUID, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}

// stubHistory returns fixed channel history
type stubHistory struct {
	history map[integration.ChannelCode][]strategy.OrderOutcome
	err     error
}

func (s stubHistory) ChannelHistory(ctx context.Context, channels []integration.ChannelCode) (map[integration.ChannelCode][]strategy.OrderOutcome, error) {
	return s.history, s.err
}

// MockChannelAdapter is a mock implementation of integration.ChannelAdapter
type MockChannelAdapter struct {
	mock.Mock
	code integration.ChannelCode
}

func newMockAdapter(code integration.ChannelCode) *MockChannelAdapter {
	return &MockChannelAdapter{code: code}
}

func (m *MockChannelAdapter) Code() integration.ChannelCode {
	return m.code
}

func (m *MockChannelAdapter) Authenticate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockChannelAdapter) CreateListing(ctx context.Context, req integration.ListingRequest) (*integration.ListingReceipt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.ListingReceipt), args.Error(1)
}

func (m *MockChannelAdapter) UpdateStock(ctx context.Context, externalID string, quantity int) error {
	return m.Called(ctx, externalID, quantity).Error(0)
}

func (m *MockChannelAdapter) EndListing(ctx context.Context, externalID string) error {
	return m.Called(ctx, externalID).Error(0)
}

func (m *MockChannelAdapter) GetStockLevel(ctx context.Context, externalID string) (*int, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int), args.Error(1)
}

func (m *MockChannelAdapter) FetchMarketData(ctx context.Context, itemID string) ([]byte, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockChannelAdapter) ParseResponse(raw []byte) (*integration.MarketData, error) {
	args := m.Called(raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.MarketData), args.Error(1)
}

func (m *MockChannelAdapter) GetPriceHistory(ctx context.Context, itemID string, days int) (*integration.PriceHistory, error) {
	args := m.Called(ctx, itemID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.PriceHistory), args.Error(1)
}

// staticRegistry is an integration.ChannelRegistry over a fixed adapter list
type staticRegistry struct {
	codes    []integration.ChannelCode
	adapters map[integration.ChannelCode]integration.ChannelAdapter
}

func newStaticRegistry(adapters ...integration.ChannelAdapter) *staticRegistry {
	r := &staticRegistry{adapters: make(map[integration.ChannelCode]integration.ChannelAdapter)}
	for _, a := range adapters {
		r.codes = append(r.codes, a.Code())
		r.adapters[a.Code()] = a
	}
	return r
}

func (r *staticRegistry) Get(code integration.ChannelCode) (integration.ChannelAdapter, error) {
	a, ok := r.adapters[code]
	if !ok {
		return nil, integration.ErrUnknownChannel
	}
	return a, nil
}

func (r *staticRegistry) Codes() []integration.ChannelCode {
	return r.codes
}

func (r *staticRegistry) Has(code integration.ChannelCode) bool {
	_, ok := r.adapters[code]
	return ok
}

func newTestListing(itemID uuid.UUID, channel integration.ChannelCode, externalID string) inventory.Listing {
	return inventory.Listing{
		BaseEntity: shared.NewBaseEntity(),
		ItemID:     itemID,
		Channel:    channel,
		ExternalID: externalID,
		Status:     inventory.ListingStatusActive,
		Quantity:   3,
	}
}
