package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/stockmesh/backend/internal/domain/analytics"
	"github.com/stockmesh/backend/internal/domain/integration"
)

const (
	matchMarketSpread       = 0.10
	advantageDiscount       = 0.95
	singleChannelConfidence = 0.5
	fullConfidenceSamples   = 20.0
)

// CompetitivePricingAnalyzer compares competitor prices across channels
type CompetitivePricingAnalyzer struct {
	history analytics.HistoryRepository
}

// NewCompetitivePricingAnalyzer creates a new CompetitivePricingAnalyzer
func NewCompetitivePricingAnalyzer(history analytics.HistoryRepository) *CompetitivePricingAnalyzer {
	return &CompetitivePricingAnalyzer{history: history}
}

// Analyze returns a pricing recommendation for an item
func (a *CompetitivePricingAnalyzer) Analyze(ctx context.Context, itemID uuid.UUID) (*analytics.CompetitivePricing, error) {
	samples, err := a.history.CompetitorSamplesForItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("load competitor samples: %w", err)
	}
	return RecommendPrice(itemID, samples), nil
}

// RecommendPrice derives the competitive pricing recommendation from
// competitor prices grouped by channel
func RecommendPrice(itemID uuid.UUID, samples map[integration.ChannelCode][]float64) *analytics.CompetitivePricing {
	result := &analytics.CompetitivePricing{
		ItemID:         itemID,
		Recommendation: analytics.RecommendInsufficientData,
		Channels:       make(map[integration.ChannelCode]analytics.ChannelPriceStats),
	}

	total := 0
	for ch, prices := range samples {
		if len(prices) == 0 {
			continue
		}
		result.Channels[ch] = priceStats(prices)
		total += len(prices)
	}

	switch len(result.Channels) {
	case 0:
		return result
	case 1:
		for _, stats := range result.Channels {
			target := stats.Average
			result.TargetPrice = &target
		}
		result.Recommendation = analytics.RecommendSingleMarketplace
		result.Confidence = singleChannelConfidence
		return result
	}

	lowest, highest := math.Inf(1), math.Inf(-1)
	for _, stats := range result.Channels {
		lowest = math.Min(lowest, stats.Average)
		highest = math.Max(highest, stats.Average)
	}

	var target float64
	if highest-lowest < matchMarketSpread*lowest {
		result.Recommendation = analytics.RecommendMatchMarket
		target = lowest
	} else {
		result.Recommendation = analytics.RecommendCompetitiveAdvantage
		target = highest * advantageDiscount
	}
	result.TargetPrice = &target
	result.Confidence = math.Min(float64(total)/fullConfidenceSamples, 1)
	return result
}

func priceStats(prices []float64) analytics.ChannelPriceStats {
	sorted := append([]float64(nil), prices...)
	sort.Float64s(sorted)

	var sum float64
	for _, p := range sorted {
		sum += p
	}
	n := len(sorted)
	median := sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return analytics.ChannelPriceStats{
		Average:    sum / float64(n),
		Median:     median,
		Min:        sorted[0],
		Max:        sorted[n-1],
		SampleSize: n,
	}
}
