package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/stockmesh/backend/internal/domain/analytics"
)

const (
	seasonalWindow      = 365 * 24 * time.Hour
	minMonthsWithData   = 6
	maxMinimalPeaks     = 2
	multiSeasonMonthGap = 4
)

// SeasonalDemandPredictor profiles a category's completed orders by
// calendar month over the trailing year
type SeasonalDemandPredictor struct {
	history analytics.HistoryRepository
	now     func() time.Time
}

// NewSeasonalDemandPredictor creates a new SeasonalDemandPredictor
func NewSeasonalDemandPredictor(history analytics.HistoryRepository) *SeasonalDemandPredictor {
	return &SeasonalDemandPredictor{
		history: history,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Predict returns the seasonal demand pattern of a category
func (p *SeasonalDemandPredictor) Predict(ctx context.Context, category string) (*analytics.SeasonalDemand, error) {
	since := p.now().Add(-seasonalWindow)
	items, err := p.history.ItemsByCategorySince(ctx, category, since)
	if err != nil {
		return nil, fmt.Errorf("load category history: %w", err)
	}

	counts := make(map[int]int)
	for _, item := range items {
		for _, l := range item.Listings {
			for _, o := range l.Orders {
				if o.Status != analytics.OrderStatusCompleted {
					continue
				}
				at := o.CreatedAt
				if o.CompletedAt != nil {
					at = *o.CompletedAt
				}
				if at.Before(since) {
					continue
				}
				counts[int(at.Month())]++
			}
		}
	}

	return ClassifySeasonality(category, counts), nil
}

// ClassifySeasonality derives the seasonal pattern from completed orders
// counted per calendar month (1-12)
func ClassifySeasonality(category string, counts map[int]int) *analytics.SeasonalDemand {
	result := &analytics.SeasonalDemand{
		Category:      category,
		Pattern:       analytics.PatternInsufficientData,
		MonthlyCounts: make(map[int]int, len(counts)),
		PeakMonths:    []int{},
	}

	total, maxCount, months := 0, 0, 0
	for month, c := range counts {
		if c <= 0 {
			continue
		}
		result.MonthlyCounts[month] = c
		total += c
		months++
		if c > maxCount {
			maxCount = c
		}
	}
	if total == 0 {
		return result
	}

	mean := float64(total) / float64(months)
	result.MeanMonthly = mean
	for month, c := range result.MonthlyCounts {
		if float64(c) > mean {
			result.PeakMonths = append(result.PeakMonths, month)
		}
	}
	sort.Ints(result.PeakMonths)

	if months < minMonthsWithData {
		return result
	}

	switch {
	case len(result.PeakMonths) <= maxMinimalPeaks:
		result.Pattern = analytics.PatternMinimalSeasonality
	case largestGap(result.PeakMonths) > multiSeasonMonthGap:
		result.Pattern = analytics.PatternMultiSeason
	default:
		result.Pattern = analytics.PatternSingleSeason
	}

	confidence := float64(months)/12*0.7 + (float64(maxCount)/mean-1)*0.3
	result.Confidence = math.Max(0, math.Min(confidence, 1))
	return result
}

func largestGap(sorted []int) int {
	gap := 0
	for i := 1; i < len(sorted); i++ {
		if d := sorted[i] - sorted[i-1]; d > gap {
			gap = d
		}
	}
	return gap
}
