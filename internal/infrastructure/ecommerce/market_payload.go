package ecommerce

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockmesh/backend/internal/domain/integration"
)

// marketPayload is the wire format of a channel market data response
type marketPayload struct {
	Timestamp     string          `json:"timestamp"`
	ItemID        string          `json:"item_id"`
	Listings      []marketListing `json:"listings"`
	TotalListings int             `json:"total_listings"`
}

type marketListing struct {
	Price       decimal.Decimal `json:"price"`
	Condition   string          `json:"condition"`
	Description string          `json:"description,omitempty"`
}

// historyPayload is the wire format of a channel price history response
type historyPayload struct {
	ItemID      string         `json:"item_id"`
	StartDate   string         `json:"start_date,omitempty"`
	EndDate     string         `json:"end_date,omitempty"`
	DailyPrices []dailyPayload `json:"daily_prices"`
}

type dailyPayload struct {
	Date          string          `json:"date"`
	AveragePrice  decimal.Decimal `json:"average_price"`
	TotalListings int             `json:"total_listings"`
}

var errMissingListings = errors.New("listings field is missing")

// parseMarketPayload converts a raw market payload into MarketData
func parseMarketPayload(channel integration.ChannelCode, raw []byte) (*integration.MarketData, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, integration.ParseError(channel, "parse_response", err)
	}
	if _, ok := fields["listings"]; !ok {
		return nil, integration.ParseError(channel, "parse_response", errMissingListings)
	}

	var p marketPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, integration.ParseError(channel, "parse_response", err)
	}

	data := &integration.MarketData{
		TotalListings:    p.TotalListings,
		CompetitorPrices: make([]decimal.Decimal, 0, len(p.Listings)),
		Conditions:       []string{},
	}
	if p.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, p.Timestamp)
		if err != nil {
			return nil, integration.ParseError(channel, "parse_response", fmt.Errorf("timestamp: %w", err))
		}
		data.Timestamp = ts.UTC()
	}

	seen := make(map[string]bool)
	sum := decimal.Zero
	for i, l := range p.Listings {
		if l.Price.IsNegative() {
			return nil, integration.ParseError(channel, "parse_response", fmt.Errorf("listing %d has a negative price", i))
		}
		data.CompetitorPrices = append(data.CompetitorPrices, l.Price)
		sum = sum.Add(l.Price)
		if i == 0 || l.Price.LessThan(data.MinPrice) {
			data.MinPrice = l.Price
		}
		if i == 0 || l.Price.GreaterThan(data.MaxPrice) {
			data.MaxPrice = l.Price
		}
		if l.Condition != "" && !seen[l.Condition] {
			seen[l.Condition] = true
			data.Conditions = append(data.Conditions, l.Condition)
		}
		if l.Description != "" {
			data.HasDescriptions = true
		}
	}
	if n := len(p.Listings); n > 0 {
		data.AvgPrice = sum.Div(decimal.NewFromInt(int64(n)))
	}
	return data, nil
}

// toPriceHistory converts a history payload into PriceHistory
func toPriceHistory(channel integration.ChannelCode, days int, p historyPayload) (*integration.PriceHistory, error) {
	out := &integration.PriceHistory{
		ItemID:      p.ItemID,
		Days:        days,
		DailyPrices: make([]integration.DailyPrice, 0, len(p.DailyPrices)),
	}
	for _, d := range p.DailyPrices {
		date, err := time.Parse(time.RFC3339, d.Date)
		if err != nil {
			return nil, integration.HistoricalDataError(channel, "get_price_history", fmt.Errorf("date %q: %w", d.Date, err))
		}
		out.DailyPrices = append(out.DailyPrices, integration.DailyPrice{
			Date:          date.UTC(),
			AvgPrice:      d.AveragePrice,
			TotalListings: d.TotalListings,
		})
	}
	return out, nil
}
