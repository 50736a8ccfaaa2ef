// Package analytics implements the market analytics use cases: price trend,
// seasonal demand and competitive pricing analysis, market research passes
// and daily snapshots.
package analytics

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockmesh/backend/internal/domain/analytics"
)

// AnalyticsService groups the three stateless analyzers behind one facade
type AnalyticsService struct {
	trend       *PriceTrendAnalyzer
	seasonal    *SeasonalDemandPredictor
	competitive *CompetitivePricingAnalyzer
}

// NewAnalyticsService creates a new AnalyticsService over a history repository
func NewAnalyticsService(history analytics.HistoryRepository) *AnalyticsService {
	return &AnalyticsService{
		trend:       NewPriceTrendAnalyzer(history),
		seasonal:    NewSeasonalDemandPredictor(history),
		competitive: NewCompetitivePricingAnalyzer(history),
	}
}

// PriceTrend analyzes the price trend of an item
func (s *AnalyticsService) PriceTrend(ctx context.Context, itemID uuid.UUID) (*analytics.PriceTrend, error) {
	return s.trend.Analyze(ctx, itemID)
}

// SeasonalDemand predicts the seasonal demand of a category
func (s *AnalyticsService) SeasonalDemand(ctx context.Context, category string) (*analytics.SeasonalDemand, error) {
	return s.seasonal.Predict(ctx, category)
}

// CompetitivePricing recommends a price for an item
func (s *AnalyticsService) CompetitivePricing(ctx context.Context, itemID uuid.UUID) (*analytics.CompetitivePricing, error) {
	return s.competitive.Analyze(ctx, itemID)
}
