package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockmesh/backend/internal/domain/integration"
)

// OrderStatusCompleted is the status of orders counted as sales
const OrderStatusCompleted = "completed"

// OrderHistory is the analytics view of an order
type OrderHistory struct {
	Status      string
	TotalPrice  decimal.Decimal
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// ListingHistory is the analytics view of a listing and its orders
type ListingHistory struct {
	ListingID uuid.UUID
	Channel   integration.ChannelCode
	Price     decimal.Decimal
	CreatedAt time.Time
	Orders    []OrderHistory
}

// ItemHistory is an item of a category with its listing history
type ItemHistory struct {
	ItemID   uuid.UUID
	Listings []ListingHistory
}

// HistoryRepository reads the listing and order history analyzed by the engine
type HistoryRepository interface {
	// ListingsForItem returns every listing of the item with its orders
	ListingsForItem(ctx context.Context, itemID uuid.UUID) ([]ListingHistory, error)

	// ItemsByCategorySince returns the category's items with orders created
	// at or after since
	ItemsByCategorySince(ctx context.Context, category string, since time.Time) ([]ItemHistory, error)

	// CompetitorSamplesForItem returns competitor prices grouped by channel
	CompetitorSamplesForItem(ctx context.Context, itemID uuid.UUID) (map[integration.ChannelCode][]float64, error)
}

// MetricsRecorder receives the data quality metrics computed for a listing
type MetricsRecorder interface {
	RecordAnalytics(ctx context.Context, listingID uuid.UUID, metrics ListingMetrics) error
}

// CompetitorSampleRepository persists competitor prices
type CompetitorSampleRepository interface {
	SaveSamples(ctx context.Context, samples []CompetitorSample) error
}

// AnalyticsRepository reads recorded listing analytics and stores snapshots
type AnalyticsRepository interface {
	// RecordsSince returns listing analytics recorded at or after since
	RecordsSince(ctx context.Context, since time.Time) ([]ListingAnalytics, error)

	// SaveSnapshot creates or replaces the snapshot for its day
	SaveSnapshot(ctx context.Context, snapshot *AnalyticsSnapshot) error

	// LatestForListing returns the most recent metrics of a listing
	LatestForListing(ctx context.Context, listingID uuid.UUID) (*ListingAnalytics, error)

	// LatestSnapshot returns the snapshot of the most recent day
	LatestSnapshot(ctx context.Context) (*AnalyticsSnapshot, error)
}

// SnapshotArchive stores serialized snapshots outside the database
type SnapshotArchive interface {
	// Archive stores the payload under key and returns the stored location
	Archive(ctx context.Context, key string, payload []byte) (string, error)
}
