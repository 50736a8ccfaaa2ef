package analytics

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/stockmesh/backend/internal/domain/integration"
	"github.com/stockmesh/backend/internal/domain/shared"
)

// ErrInvalidWindow indicates a history window outside the supported range
var ErrInvalidWindow = errors.New("analytics: invalid history window")

// Trend is the direction of an item's price over time
type Trend string

const (
	TrendIncreasing       Trend = "increasing"
	TrendDecreasing       Trend = "decreasing"
	TrendStable           Trend = "stable"
	TrendInsufficientData Trend = "insufficient_data"
)

// PriceRange is the observed min/max of a price series
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PriceTrend is the result of a least squares fit over an item's price history
type PriceTrend struct {
	ItemID       uuid.UUID  `json:"item_id"`
	Trend        Trend      `json:"trend"`
	Confidence   float64    `json:"confidence"`
	Slope        float64    `json:"slope"`
	AveragePrice float64    `json:"average_price"`
	PriceRange   PriceRange `json:"price_range"`
	SampleCount  int        `json:"sample_count"`
}

// SeasonalPattern classifies monthly demand
type SeasonalPattern string

const (
	PatternInsufficientData   SeasonalPattern = "insufficient_data"
	PatternMinimalSeasonality SeasonalPattern = "minimal_seasonality"
	PatternMultiSeason        SeasonalPattern = "multi_season"
	PatternSingleSeason       SeasonalPattern = "single_season"
)

// SeasonalDemand is the monthly demand profile of a category
type SeasonalDemand struct {
	Category      string          `json:"category"`
	Pattern       SeasonalPattern `json:"pattern"`
	Confidence    float64         `json:"confidence"`
	MonthlyCounts map[int]int     `json:"monthly_counts"`
	PeakMonths    []int           `json:"peak_months"`
	MeanMonthly   float64         `json:"mean_monthly"`
}

// PricingRecommendation is the competitive pricing verdict
type PricingRecommendation string

const (
	RecommendInsufficientData     PricingRecommendation = "insufficient_data"
	RecommendSingleMarketplace    PricingRecommendation = "single_marketplace"
	RecommendMatchMarket          PricingRecommendation = "match_market"
	RecommendCompetitiveAdvantage PricingRecommendation = "competitive_advantage"
)

// ChannelPriceStats summarizes competitor prices seen on one channel
type ChannelPriceStats struct {
	Average    float64 `json:"average"`
	Median     float64 `json:"median"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	SampleSize int     `json:"sample_size"`
}

// CompetitivePricing compares an item's competitor prices across channels
type CompetitivePricing struct {
	ItemID         uuid.UUID                                     `json:"item_id"`
	Recommendation PricingRecommendation                         `json:"recommendation"`
	TargetPrice    *float64                                      `json:"target_price,omitempty"`
	Confidence     float64                                       `json:"confidence"`
	Channels       map[integration.ChannelCode]ChannelPriceStats `json:"channels"`
}

// ---------------------------------------------------------------------------
// Persisted analytics records
// ---------------------------------------------------------------------------

// ListingMetrics are the data quality scores computed for one listing
type ListingMetrics struct {
	PriceAccuracy float64 `json:"price_accuracy"`
	DataFreshness float64 `json:"data_freshness"`
	CoverageRate  float64 `json:"coverage_rate"`
}

// ListingAnalytics is one recorded set of ListingMetrics
type ListingAnalytics struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ListingID     uuid.UUID `gorm:"type:uuid;not null;index" json:"listing_id"`
	PriceAccuracy float64   `gorm:"not null" json:"price_accuracy"`
	DataFreshness float64   `gorm:"not null" json:"data_freshness"`
	CoverageRate  float64   `gorm:"not null" json:"coverage_rate"`
	RecordedAt    time.Time `gorm:"not null;index" json:"recorded_at"`
}

// TableName returns the table name for GORM
func (ListingAnalytics) TableName() string {
	return "listing_analytics"
}

// NewListingAnalytics creates a record for the listing's metrics
func NewListingAnalytics(listingID uuid.UUID, m ListingMetrics, at time.Time) ListingAnalytics {
	return ListingAnalytics{
		ID:            uuid.New(),
		ListingID:     listingID,
		PriceAccuracy: m.PriceAccuracy,
		DataFreshness: m.DataFreshness,
		CoverageRate:  m.CoverageRate,
		RecordedAt:    at.UTC(),
	}
}

// CompetitorSample is a competitor price observed on a channel for an item
type CompetitorSample struct {
	ID         uuid.UUID               `gorm:"type:uuid;primaryKey"`
	ItemID     uuid.UUID               `gorm:"type:uuid;not null;index"`
	Channel    integration.ChannelCode `gorm:"type:varchar(32);not null;index"`
	Price      float64                 `gorm:"not null"`
	ObservedAt time.Time               `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CompetitorSample) TableName() string {
	return "competitor_samples"
}

// NewCompetitorSample creates a sample; non-positive prices are rejected
func NewCompetitorSample(itemID uuid.UUID, channel integration.ChannelCode, price float64, at time.Time) (*CompetitorSample, error) {
	if price <= 0 {
		return nil, shared.InvalidInput("competitor price must be positive")
	}
	return &CompetitorSample{
		ID:         uuid.New(),
		ItemID:     itemID,
		Channel:    channel,
		Price:      price,
		ObservedAt: at.UTC(),
	}, nil
}

// AnalyticsSnapshot aggregates one day of listing analytics
type AnalyticsSnapshot struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Day              time.Time `gorm:"type:date;not null;uniqueIndex" json:"day"`
	AvgPriceAccuracy float64   `gorm:"not null" json:"avg_price_accuracy"`
	AvgDataFreshness float64   `gorm:"not null" json:"avg_data_freshness"`
	AvgCoverageRate  float64   `gorm:"not null" json:"avg_coverage_rate"`
	RecordCount      int       `gorm:"not null" json:"record_count"`
	ListingCount     int       `gorm:"not null" json:"listing_count"`
	ArchiveKey       string    `gorm:"type:varchar(255)" json:"archive_key,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// TableName returns the table name for GORM
func (AnalyticsSnapshot) TableName() string {
	return "analytics_snapshots"
}

// Summarize builds a snapshot for day from the given records. The snapshot
// is labelled with day's calendar date in day's own location.
func Summarize(day time.Time, records []ListingAnalytics) AnalyticsSnapshot {
	snap := AnalyticsSnapshot{
		ID:          uuid.New(),
		Day:         time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
		RecordCount: len(records),
		CreatedAt:   time.Now().UTC(),
	}
	if len(records) == 0 {
		return snap
	}

	listings := make(map[uuid.UUID]struct{}, len(records))
	var accuracy, freshness, coverage float64
	for _, r := range records {
		accuracy += r.PriceAccuracy
		freshness += r.DataFreshness
		coverage += r.CoverageRate
		listings[r.ListingID] = struct{}{}
	}
	n := float64(len(records))
	snap.AvgPriceAccuracy = accuracy / n
	snap.AvgDataFreshness = freshness / n
	snap.AvgCoverageRate = coverage / n
	snap.ListingCount = len(listings)
	return snap
}
