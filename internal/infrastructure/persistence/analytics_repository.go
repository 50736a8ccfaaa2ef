package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockmesh/backend/internal/domain/analytics"
	"github.com/stockmesh/backend/internal/domain/shared"
)

const sampleBatchSize = 100

// GormCompetitorSampleRepository stores competitor prices observed during
// market research
type GormCompetitorSampleRepository struct {
	db *gorm.DB
}

// NewGormCompetitorSampleRepository creates a new GormCompetitorSampleRepository
func NewGormCompetitorSampleRepository(db *gorm.DB) *GormCompetitorSampleRepository {
	return &GormCompetitorSampleRepository{db: db}
}

// SaveSamples inserts competitor samples in batches
func (r *GormCompetitorSampleRepository) SaveSamples(ctx context.Context, samples []analytics.CompetitorSample) error {
	if len(samples) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(samples, sampleBatchSize).Error
}

// GormListingAnalyticsRepository stores listing data quality metrics and
// daily snapshots
type GormListingAnalyticsRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormListingAnalyticsRepository creates a new GormListingAnalyticsRepository
func NewGormListingAnalyticsRepository(db *gorm.DB) *GormListingAnalyticsRepository {
	return &GormListingAnalyticsRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// RecordAnalytics stores one metrics record for a listing
func (r *GormListingAnalyticsRepository) RecordAnalytics(ctx context.Context, listingID uuid.UUID, m analytics.ListingMetrics) error {
	record := analytics.NewListingAnalytics(listingID, m, r.now())
	return r.db.WithContext(ctx).Create(&record).Error
}

// RecordsSince returns the metrics recorded at or after since, oldest first
func (r *GormListingAnalyticsRepository) RecordsSince(ctx context.Context, since time.Time) ([]analytics.ListingAnalytics, error) {
	var records []analytics.ListingAnalytics
	if err := r.db.WithContext(ctx).
		Where("recorded_at >= ?", since).
		Order("recorded_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// LatestForListing returns the most recent metrics of a listing
func (r *GormListingAnalyticsRepository) LatestForListing(ctx context.Context, listingID uuid.UUID) (*analytics.ListingAnalytics, error) {
	var record analytics.ListingAnalytics
	if err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("recorded_at DESC").
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NotFound("No analytics recorded for listing")
		}
		return nil, err
	}
	return &record, nil
}

// SaveSnapshot stores a daily snapshot, replacing an earlier one for the same day
func (r *GormListingAnalyticsRepository) SaveSnapshot(ctx context.Context, snapshot *analytics.AnalyticsSnapshot) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"avg_price_accuracy",
			"avg_data_freshness",
			"avg_coverage_rate",
			"record_count",
			"listing_count",
			"archive_key",
		}),
	}).Create(snapshot).Error
}

// LatestSnapshot returns the most recent daily snapshot
func (r *GormListingAnalyticsRepository) LatestSnapshot(ctx context.Context) (*analytics.AnalyticsSnapshot, error) {
	var snap analytics.AnalyticsSnapshot
	if err := r.db.WithContext(ctx).Order("day DESC").First(&snap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NotFound("No analytics snapshot captured")
		}
		return nil, err
	}
	return &snap, nil
}

var (
	_ analytics.CompetitorSampleRepository = (*GormCompetitorSampleRepository)(nil)
	_ analytics.MetricsRecorder            = (*GormListingAnalyticsRepository)(nil)
	_ analytics.AnalyticsRepository        = (*GormListingAnalyticsRepository)(nil)
)
