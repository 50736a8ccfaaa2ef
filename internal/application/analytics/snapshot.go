package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stockmesh/backend/internal/domain/analytics"
)

const snapshotWindow = 24 * time.Hour

// SnapshotService aggregates recorded listing analytics into daily snapshots
type SnapshotService struct {
	repo    analytics.AnalyticsRepository
	archive analytics.SnapshotArchive
	logger  *zap.Logger
	now     func() time.Time
}

// NewSnapshotService creates a new SnapshotService. archive may be nil when
// no object storage is configured.
func NewSnapshotService(repo analytics.AnalyticsRepository, archive analytics.SnapshotArchive, logger *zap.Logger) *SnapshotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotService{
		repo:    repo,
		archive: archive,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CaptureDailySnapshot averages the last 24 hours of listing analytics into a
// snapshot for day, archives it and stores it. An archive failure is logged
// and the snapshot is stored without an archive key.
func (s *SnapshotService) CaptureDailySnapshot(ctx context.Context, day time.Time) (*analytics.AnalyticsSnapshot, error) {
	records, err := s.repo.RecordsSince(ctx, s.now().Add(-snapshotWindow))
	if err != nil {
		return nil, fmt.Errorf("load listing analytics: %w", err)
	}

	snap := analytics.Summarize(day, records)

	if s.archive != nil {
		payload, err := json.Marshal(snap)
		if err != nil {
			return nil, fmt.Errorf("encode snapshot: %w", err)
		}
		key := SnapshotKey(snap.Day)
		location, err := s.archive.Archive(ctx, key, payload)
		if err != nil {
			s.logger.Warn("Failed to archive analytics snapshot",
				zap.String("key", key),
				zap.Error(err),
			)
		} else {
			snap.ArchiveKey = location
		}
	}

	if err := s.repo.SaveSnapshot(ctx, &snap); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}

	s.logger.Info("Analytics snapshot captured",
		zap.String("day", snap.Day.Format(time.DateOnly)),
		zap.Int("records", snap.RecordCount),
		zap.Int("listings", snap.ListingCount),
	)
	return &snap, nil
}

// LatestListingMetrics returns the most recent metrics recorded for a listing
func (s *SnapshotService) LatestListingMetrics(ctx context.Context, listingID uuid.UUID) (*analytics.ListingAnalytics, error) {
	return s.repo.LatestForListing(ctx, listingID)
}

// LatestSnapshot returns the most recently captured daily snapshot
func (s *SnapshotService) LatestSnapshot(ctx context.Context) (*analytics.AnalyticsSnapshot, error) {
	return s.repo.LatestSnapshot(ctx)
}

// SnapshotKey returns the object key of the snapshot of day
func SnapshotKey(day time.Time) string {
	return fmt.Sprintf("snapshots/%s.json", day.UTC().Format(time.DateOnly))
}
