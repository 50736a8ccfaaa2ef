package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stockmesh/backend/internal/domain/analytics"
	"github.com/stockmesh/backend/internal/domain/integration"
	"github.com/stockmesh/backend/internal/domain/inventory"
	"github.com/stockmesh/backend/internal/domain/shared"
)

type stubHistoryRepo struct {
	listings    []analytics.ListingHistory
	items       []analytics.ItemHistory
	competitors map[integration.ChannelCode][]float64
	err         error
	since       time.Time
}

func (r *stubHistoryRepo) ListingsForItem(ctx context.Context, itemID uuid.UUID) ([]analytics.ListingHistory, error) {
	return r.listings, r.err
}

func (r *stubHistoryRepo) ItemsByCategorySince(ctx context.Context, category string, since time.Time) ([]analytics.ItemHistory, error) {
	r.since = since
	return r.items, r.err
}

func (r *stubHistoryRepo) CompetitorSamplesForItem(ctx context.Context, itemID uuid.UUID) (map[integration.ChannelCode][]float64, error) {
	return r.competitors, r.err
}

// stubListingRepo serves a fixed set of active listings
type stubListingRepo struct {
	inventory.ListingRepository
	active []inventory.Listing
	err    error
}

func (r *stubListingRepo) FindAllActive(ctx context.Context) ([]inventory.Listing, error) {
	return r.active, r.err
}

// fakeAdapter is a configurable integration.ChannelAdapter
type fakeAdapter struct {
	integration.ChannelAdapter
	code       integration.ChannelCode
	raw        []byte
	fetchErr   error
	parsed     *integration.MarketData
	parseErr   error
	history    *integration.PriceHistory
	historyErr error
}

func (a *fakeAdapter) Code() integration.ChannelCode { return a.code }

func (a *fakeAdapter) FetchMarketData(ctx context.Context, itemID string) ([]byte, error) {
	return a.raw, a.fetchErr
}

func (a *fakeAdapter) ParseResponse(raw []byte) (*integration.MarketData, error) {
	return a.parsed, a.parseErr
}

func (a *fakeAdapter) GetPriceHistory(ctx context.Context, itemID string, days int) (*integration.PriceHistory, error) {
	return a.history, a.historyErr
}

type fakeRegistry struct {
	adapters map[integration.ChannelCode]integration.ChannelAdapter
}

func newFakeRegistry(adapters ...*fakeAdapter) *fakeRegistry {
	r := &fakeRegistry{adapters: make(map[integration.ChannelCode]integration.ChannelAdapter)}
	for _, a := range adapters {
		r.adapters[a.code] = a
	}
	return r
}

func (r *fakeRegistry) Get(code integration.ChannelCode) (integration.ChannelAdapter, error) {
	a, ok := r.adapters[code]
	if !ok {
		return nil, integration.ErrUnknownChannel
	}
	return a, nil
}

func (r *fakeRegistry) Codes() []integration.ChannelCode {
	codes := make([]integration.ChannelCode, 0, len(r.adapters))
	for c := range r.adapters {
		codes = append(codes, c)
	}
	return codes
}

func (r *fakeRegistry) Has(code integration.ChannelCode) bool {
	_, ok := r.adapters[code]
	return ok
}

type memorySamples struct {
	mu      sync.Mutex
	samples []analytics.CompetitorSample
}

func (m *memorySamples) SaveSamples(ctx context.Context, samples []analytics.CompetitorSample) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.samples = append(m.samples, samples...)
	return nil
}

type memoryRecorder struct {
	mu      sync.Mutex
	metrics map[uuid.UUID]analytics.ListingMetrics
}

func (m *memoryRecorder) RecordAnalytics(ctx context.Context, listingID uuid.UUID, metrics analytics.ListingMetrics) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.metrics == nil {
		m.metrics = make(map[uuid.UUID]analytics.ListingMetrics)
	}
	m.metrics[listingID] = metrics
	return nil
}

type memoryAnalyticsRepo struct {
	records []analytics.ListingAnalytics
	saved   []analytics.AnalyticsSnapshot
	since   time.Time
}

func (m *memoryAnalyticsRepo) RecordsSince(ctx context.Context, since time.Time) ([]analytics.ListingAnalytics, error) {
	m.since = since
	return m.records, nil
}

func (m *memoryAnalyticsRepo) SaveSnapshot(ctx context.Context, snapshot *analytics.AnalyticsSnapshot) error {
	m.saved = append(m.saved, *snapshot)
	return nil
}

func (m *memoryAnalyticsRepo) LatestForListing(ctx context.Context, listingID uuid.UUID) (*analytics.ListingAnalytics, error) {
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].ListingID == listingID {
			return &m.records[i], nil
		}
	}
	return nil, nil
}

func (m *memoryAnalyticsRepo) LatestSnapshot(ctx context.Context) (*analytics.AnalyticsSnapshot, error) {
	if len(m.saved) == 0 {
		return nil, shared.NotFound("No analytics snapshot captured")
	}
	latest := m.saved[0]
	for _, snap := range m.saved[1:] {
		if snap.Day.After(latest.Day) {
			latest = snap
		}
	}
	return &latest, nil
}

type stubArchive struct {
	key     string
	payload []byte
	err     error
}

func (a *stubArchive) Archive(ctx context.Context, key string, payload []byte) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.key = key
	a.payload = payload
	return "s3://bucket/" + key, nil
}
