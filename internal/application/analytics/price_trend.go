package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/stockmesh/backend/internal/domain/analytics"
)

// Trend classification thresholds on the fitted slope (price units per day)
const (
	trendSlopeThreshold = 0.01
	hoursPerDay         = 24.0
)

type pricePoint struct {
	at    time.Time
	price float64
}

// PriceTrendAnalyzer fits a least squares line through an item's listing
// prices and completed order totals
type PriceTrendAnalyzer struct {
	history analytics.HistoryRepository
}

// NewPriceTrendAnalyzer creates a new PriceTrendAnalyzer
func NewPriceTrendAnalyzer(history analytics.HistoryRepository) *PriceTrendAnalyzer {
	return &PriceTrendAnalyzer{history: history}
}

// Analyze returns the price trend of an item
func (a *PriceTrendAnalyzer) Analyze(ctx context.Context, itemID uuid.UUID) (*analytics.PriceTrend, error) {
	listings, err := a.history.ListingsForItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("load listing history: %w", err)
	}

	var points []pricePoint
	for _, l := range listings {
		points = append(points, pricePoint{at: l.CreatedAt, price: l.Price.InexactFloat64()})
		for _, o := range l.Orders {
			if o.Status != analytics.OrderStatusCompleted {
				continue
			}
			at := o.CreatedAt
			if o.CompletedAt != nil {
				at = *o.CompletedAt
			}
			points = append(points, pricePoint{at: at, price: o.TotalPrice.InexactFloat64()})
		}
	}

	return fitPriceTrend(itemID, points), nil
}

// fitPriceTrend classifies a series of timestamped prices
func fitPriceTrend(itemID uuid.UUID, points []pricePoint) *analytics.PriceTrend {
	result := &analytics.PriceTrend{
		ItemID:      itemID,
		Trend:       analytics.TrendInsufficientData,
		SampleCount: len(points),
	}
	if len(points) == 0 {
		return result
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].at.Before(points[j].at) })

	n := float64(len(points))
	origin := points[0].at
	xs := make([]float64, len(points))
	var sumX, sumY float64
	result.PriceRange = analytics.PriceRange{Min: points[0].price, Max: points[0].price}
	for i, p := range points {
		xs[i] = p.at.Sub(origin).Hours() / hoursPerDay
		sumX += xs[i]
		sumY += p.price
		result.PriceRange.Min = math.Min(result.PriceRange.Min, p.price)
		result.PriceRange.Max = math.Max(result.PriceRange.Max, p.price)
	}
	meanX, meanY := sumX/n, sumY/n
	result.AveragePrice = meanY

	if len(points) < 2 {
		return result
	}

	var sxx, sxy, syy float64
	for i, p := range points {
		dx, dy := xs[i]-meanX, p.price-meanY
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
	}

	var slope float64
	if sxx > 0 {
		slope = sxy / sxx
	}
	intercept := meanY - slope*meanX

	var confidence float64
	if syy > 0 && sxx > 0 {
		var ssRes float64
		for i, p := range points {
			r := p.price - (slope*xs[i] + intercept)
			ssRes += r * r
		}
		confidence = math.Max(0, 1-ssRes/syy)
	}

	result.Slope = slope
	result.Confidence = confidence
	switch {
	case slope > trendSlopeThreshold:
		result.Trend = analytics.TrendIncreasing
	case slope < -trendSlopeThreshold:
		result.Trend = analytics.TrendDecreasing
	default:
		result.Trend = analytics.TrendStable
	}
	return result
}
