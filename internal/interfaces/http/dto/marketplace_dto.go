package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockmesh/backend/internal/domain/integration"
)

// UpdateStockRequest sets an item's total stock
type UpdateStockRequest struct {
	Quantity *int `json:"quantity" binding:"required,gte=0" example:"40"`
}

// ListingSyncRequest publishes a listing on one or more channels.
// Omitting channels targets every registered channel.
type ListingSyncRequest struct {
	ItemID      string          `json:"item_id" binding:"omitempty,uuid"`
	ListingID   string          `json:"listing_id" binding:"omitempty,uuid"`
	SKU         string          `json:"sku" binding:"max=64"`
	Title       string          `json:"title" binding:"required,max=200" example:"Vintage film camera"`
	Description string          `json:"description" binding:"max=10000"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" binding:"gte=0"`
	Condition   string          `json:"condition" binding:"max=32" example:"used"`
	Category    string          `json:"category" binding:"max=100"`
	Channels    []string        `json:"channels" binding:"omitempty,dive,channel"`
}

// PriceHistoryQuery holds the price history query string
type PriceHistoryQuery struct {
	Days int `form:"days,default=30" binding:"min=1,max=365"`
}

// MarketDataQuery holds the market data query string. Refresh bypasses
// the market data cache.
type MarketDataQuery struct {
	Refresh bool `form:"refresh"`
}

// MarketDataResponse is the parsed market snapshot of one item on one channel
type MarketDataResponse struct {
	Channel          integration.ChannelCode `json:"channel"`
	ItemID           string                  `json:"item_id"`
	AvgPrice         decimal.Decimal         `json:"avg_price"`
	MinPrice         decimal.Decimal         `json:"min_price"`
	MaxPrice         decimal.Decimal         `json:"max_price"`
	TotalListings    int                     `json:"total_listings"`
	CompetitorPrices []decimal.Decimal       `json:"competitor_prices"`
	Conditions       []string                `json:"conditions"`
	HasDescriptions  bool                    `json:"has_descriptions"`
	Timestamp        time.Time               `json:"timestamp"`
}

// NewMarketDataResponse converts market data to its API form
func NewMarketDataResponse(channel integration.ChannelCode, itemID string, md *integration.MarketData) MarketDataResponse {
	resp := MarketDataResponse{
		Channel:          channel,
		ItemID:           itemID,
		AvgPrice:         md.AvgPrice,
		MinPrice:         md.MinPrice,
		MaxPrice:         md.MaxPrice,
		TotalListings:    md.TotalListings,
		CompetitorPrices: md.CompetitorPrices,
		Conditions:       md.Conditions,
		HasDescriptions:  md.HasDescriptions,
		Timestamp:        md.Timestamp,
	}
	if resp.CompetitorPrices == nil {
		resp.CompetitorPrices = []decimal.Decimal{}
	}
	if resp.Conditions == nil {
		resp.Conditions = []string{}
	}
	return resp
}

// DailyPriceResponse is one day of price history
type DailyPriceResponse struct {
	Date          string          `json:"date"`
	AvgPrice      decimal.Decimal `json:"avg_price"`
	TotalListings int             `json:"total_listings"`
}

// PriceHistoryResponse is a window of daily prices for one item on one channel
type PriceHistoryResponse struct {
	Channel     integration.ChannelCode `json:"channel"`
	ItemID      string                  `json:"item_id"`
	Days        int                     `json:"days"`
	DailyPrices []DailyPriceResponse    `json:"daily_prices"`
}

// NewPriceHistoryResponse converts a price history to its API form
func NewPriceHistoryResponse(channel integration.ChannelCode, h *integration.PriceHistory) PriceHistoryResponse {
	resp := PriceHistoryResponse{
		Channel:     channel,
		ItemID:      h.ItemID,
		Days:        h.Days,
		DailyPrices: make([]DailyPriceResponse, 0, len(h.DailyPrices)),
	}
	for _, p := range h.DailyPrices {
		resp.DailyPrices = append(resp.DailyPrices, DailyPriceResponse{
			Date:          p.Date.UTC().Format(time.DateOnly),
			AvgPrice:      p.AvgPrice,
			TotalListings: p.TotalListings,
		})
	}
	return resp
}

// HealthResponse is the liveness report
type HealthResponse struct {
	Status   string    `json:"status"`
	Database string    `json:"database"`
	Channels int       `json:"channels"`
	Time     time.Time `json:"time"`
}
