package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stockmesh/backend/internal/domain/analytics"
	"github.com/stockmesh/backend/internal/domain/integration"
	"github.com/stockmesh/backend/internal/domain/inventory"
	"github.com/stockmesh/backend/internal/infrastructure/telemetry"
)

const freshnessHorizonHours = 24.0

// ListingResearch is the market research outcome of one listing
type ListingResearch struct {
	ListingID     uuid.UUID                 `json:"listing_id"`
	ItemID        uuid.UUID                 `json:"item_id"`
	Channel       integration.ChannelCode   `json:"channel"`
	Status        string                    `json:"status"`
	Metrics       *analytics.ListingMetrics `json:"metrics,omitempty"`
	SampleCount   int                       `json:"sample_count"`
	HistoryPoints int                       `json:"history_points"`
	ErrorKind     string                    `json:"error_kind,omitempty"`
	ErrorMessage  string                    `json:"error,omitempty"`
}

// ResearchSummary is the result of one market research pass
type ResearchSummary struct {
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Processed  int               `json:"processed"`
	Succeeded  int               `json:"succeeded"`
	Failed     int               `json:"failed"`
	Results    []ListingResearch `json:"results"`
}

// MarketResearchConfig configures a MarketResearchService
type MarketResearchConfig struct {
	HistoryDays    int
	MaxConcurrency int
}

// MarketResearchService collects market data for every active listing,
// stores competitor prices and records data quality metrics
type MarketResearchService struct {
	listings inventory.ListingRepository
	registry integration.ChannelRegistry
	source   MarketDataSource
	samples  analytics.CompetitorSampleRepository
	recorder analytics.MetricsRecorder
	logger   *zap.Logger
	metrics  *telemetry.SyncMetrics
	cfg      MarketResearchConfig
	now      func() time.Time
}

// NewMarketResearchService creates a new MarketResearchService
func NewMarketResearchService(
	listings inventory.ListingRepository,
	registry integration.ChannelRegistry,
	source MarketDataSource,
	samples analytics.CompetitorSampleRepository,
	recorder analytics.MetricsRecorder,
	cfg MarketResearchConfig,
	logger *zap.Logger,
) *MarketResearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if source == nil {
		source = NewAdapterSource(registry)
	}
	if cfg.HistoryDays < MinHistoryDays || cfg.HistoryDays > MaxHistoryDays {
		cfg.HistoryDays = DefaultHistoryDays
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = 4
	}
	return &MarketResearchService{
		listings: listings,
		registry: registry,
		source:   source,
		samples:  samples,
		recorder: recorder,
		logger:   logger,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetMetrics sets the metrics collector
func (s *MarketResearchService) SetMetrics(m *telemetry.SyncMetrics) {
	s.metrics = m
}

// CollectMarketData runs one research pass over all active listings.
// Failures of individual listings are reported in the summary.
func (s *MarketResearchService) CollectMarketData(ctx context.Context) (_ *ResearchSummary, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "market_research", "collect")
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	summary := &ResearchSummary{StartedAt: s.now()}

	listings, err := s.listings.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active listings: %w", err)
	}

	results := make([]ListingResearch, len(listings))
	var g errgroup.Group
	g.SetLimit(s.cfg.MaxConcurrency)
	for i := range listings {
		listing := listings[i]
		g.Go(func() error {
			results[i] = s.researchListing(ctx, listing)
			return nil
		})
	}
	_ = g.Wait()

	summary.Results = results
	summary.Processed = len(results)
	for _, r := range results {
		if r.Status == StatusSuccess {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}
	summary.FinishedAt = s.now()
	telemetry.SetAttributes(span, "processed", summary.Processed, "failed", summary.Failed)

	s.logger.Info("Market research pass finished",
		zap.Int("processed", summary.Processed),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Duration("duration", summary.FinishedAt.Sub(summary.StartedAt)),
	)
	return summary, nil
}

// Research outcome statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

func (s *MarketResearchService) researchListing(ctx context.Context, listing inventory.Listing) (res ListingResearch) {
	res = ListingResearch{
		ListingID: listing.ID,
		ItemID:    listing.ItemID,
		Channel:   listing.Channel,
	}
	defer func() {
		if r := recover(); r != nil {
			res.Status = StatusError
			res.ErrorKind = string(integration.KindMarketplace)
			res.ErrorMessage = fmt.Sprintf("panic: %v", r)
		}
		s.metrics.RecordResearchOutcome(ctx, listing.Channel.String(), res.Status)
		if res.Status == StatusError {
			s.logger.Warn("Market research failed for listing",
				zap.String("listing_id", listing.ID.String()),
				zap.String("channel", listing.Channel.String()),
				zap.String("error_kind", res.ErrorKind),
				zap.String("error", res.ErrorMessage),
			)
		}
	}()

	fail := func(err error) ListingResearch {
		res.Status = StatusError
		res.ErrorKind = string(integration.KindOf(err))
		res.ErrorMessage = err.Error()
		return res
	}

	adapter, err := s.registry.Get(listing.Channel)
	if err != nil {
		return fail(err)
	}

	itemRef := listing.ItemID.String()
	raw, err := s.source.FetchMarketData(ctx, listing.Channel, itemRef)
	if err != nil {
		return fail(err)
	}
	data, err := adapter.ParseResponse(raw)
	if err != nil {
		return fail(err)
	}
	history, err := adapter.GetPriceHistory(ctx, itemRef, s.cfg.HistoryDays)
	if err != nil {
		return fail(err)
	}
	res.HistoryPoints = len(history.DailyPrices)

	now := s.now()
	samples := make([]analytics.CompetitorSample, 0, len(data.CompetitorPrices))
	for _, p := range data.CompetitorPrices {
		sample, err := analytics.NewCompetitorSample(listing.ItemID, listing.Channel, p.InexactFloat64(), now)
		if err != nil {
			continue
		}
		samples = append(samples, *sample)
	}
	if len(samples) > 0 {
		if err := s.samples.SaveSamples(ctx, samples); err != nil {
			return fail(fmt.Errorf("save competitor samples: %w", err))
		}
	}
	res.SampleCount = len(samples)

	metrics := ComputeListingMetrics(listing.Price.InexactFloat64(), data, now)
	if err := s.recorder.RecordAnalytics(ctx, listing.ID, metrics); err != nil {
		return fail(fmt.Errorf("record analytics: %w", err))
	}
	s.metrics.RecordListingQuality(ctx, listing.Channel.String(), metrics.PriceAccuracy, metrics.DataFreshness, metrics.CoverageRate)

	res.Metrics = &metrics
	res.Status = StatusSuccess
	return res
}

// ComputeListingMetrics scores how well a listing's price and the collected
// market data describe the market at now
func ComputeListingMetrics(price float64, data *integration.MarketData, now time.Time) analytics.ListingMetrics {
	var sum float64
	var n int
	for _, p := range data.CompetitorPrices {
		if v := p.InexactFloat64(); v > 0 {
			sum += v
			n++
		}
	}
	marketAvg := price
	if n > 0 {
		marketAvg = sum / float64(n)
	}
	var deviation float64
	if marketAvg > 0 {
		deviation = math.Abs(price-marketAvg) / marketAvg
	}

	freshness := 0.0
	if !data.Timestamp.IsZero() {
		age := now.Sub(data.Timestamp).Hours()
		if age < 0 {
			age = 0
		}
		freshness = 1 - math.Min(age/freshnessHorizonHours, 1)
	}

	present := 0
	for _, ok := range []bool{price > 0, len(data.CompetitorPrices) > 0, len(data.Conditions) > 0, data.HasDescriptions} {
		if ok {
			present++
		}
	}

	return analytics.ListingMetrics{
		PriceAccuracy: math.Max(0, 1-deviation),
		DataFreshness: freshness,
		CoverageRate:  float64(present) / 4,
	}
}
