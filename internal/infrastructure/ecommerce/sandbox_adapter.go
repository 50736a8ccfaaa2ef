package ecommerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockmesh/backend/internal/domain/integration"
)

// DefaultSandboxBaseURL is the root of the listing URLs issued by the sandbox
const DefaultSandboxBaseURL = "https://sandbox.stockmesh.local"

// Fixed market returned by the sandbox
var (
	sandboxListings = []marketListing{
		{Price: decimal.RequireFromString("99.99"), Condition: "New", Description: "Factory sealed"},
		{Price: decimal.RequireFromString("79.99"), Condition: "Used", Description: "Light wear"},
	}
	sandboxHistoryPrice    = decimal.RequireFromString("89.99")
	sandboxHistoryListings = 10
)

var (
	errSandboxUnknownListing = errors.New("listing not found")
	errSandboxEndedListing   = errors.New("listing has ended")
)

type sandboxListing struct {
	quantity int
	ended    bool
}

// SandboxAdapter is an in-memory channel used for development and tests.
// Listings live in a mutex-protected map keyed by external ID.
type SandboxAdapter struct {
	config *ChannelConfig
	now    func() time.Time

	mu       sync.Mutex
	listings map[string]*sandboxListing
}

// NewSandboxAdapter creates a new sandbox adapter
func NewSandboxAdapter(config *ChannelConfig) (*SandboxAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultSandboxBaseURL
	}
	return &SandboxAdapter{
		config:   config,
		now:      func() time.Time { return time.Now().UTC() },
		listings: make(map[string]*sandboxListing),
	}, nil
}

// Code returns the channel this adapter handles
func (a *SandboxAdapter) Code() integration.ChannelCode {
	return a.config.Code
}

// Authenticate always succeeds
func (a *SandboxAdapter) Authenticate(ctx context.Context) error {
	return ctx.Err()
}

// CreateListing stores the listing and issues an external ID
func (a *SandboxAdapter) CreateListing(ctx context.Context, req integration.ListingRequest) (*integration.ListingReceipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, integration.OperationError(a.config.Code, "create_listing", err)
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, integration.OperationError(a.config.Code, "create_listing", errors.New("title is required"))
	}
	if req.Quantity < 0 {
		return nil, integration.OperationError(a.config.Code, "create_listing", errors.New("quantity cannot be negative"))
	}

	externalID := fmt.Sprintf("%s-%s", a.config.Code, uuid.NewString())
	a.mu.Lock()
	a.listings[externalID] = &sandboxListing{quantity: req.Quantity}
	a.mu.Unlock()

	return &integration.ListingReceipt{
		ExternalID: externalID,
		URL:        fmt.Sprintf("%s/%s/listing/%s", a.config.BaseURL, a.config.Code, externalID),
	}, nil
}

// UpdateStock sets the quantity of a stored listing
func (a *SandboxAdapter) UpdateStock(ctx context.Context, externalID string, quantity int) error {
	if quantity < 0 {
		return integration.OperationError(a.config.Code, "update_stock", errors.New("quantity cannot be negative"))
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	l, err := a.lookupLocked(externalID)
	if err != nil {
		return integration.OperationError(a.config.Code, "update_stock", err)
	}
	if l.ended {
		return integration.OperationError(a.config.Code, "update_stock", errSandboxEndedListing)
	}
	l.quantity = quantity
	return nil
}

// EndListing marks a stored listing as ended
func (a *SandboxAdapter) EndListing(ctx context.Context, externalID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	l, err := a.lookupLocked(externalID)
	if err != nil {
		return integration.OperationError(a.config.Code, "end_listing", err)
	}
	l.ended = true
	l.quantity = 0
	return nil
}

// GetStockLevel returns the stored quantity, or nil for unknown listings
func (a *SandboxAdapter) GetStockLevel(ctx context.Context, externalID string) (*int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	l, ok := a.listings[externalID]
	if !ok {
		return nil, nil
	}
	qty := l.quantity
	return &qty, nil
}

// Seed registers an existing listing, used when a sandbox is restarted
// against a database that already holds external IDs
func (a *SandboxAdapter) Seed(externalID string, quantity int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listings[externalID] = &sandboxListing{quantity: quantity}
}

func (a *SandboxAdapter) lookupLocked(externalID string) (*sandboxListing, error) {
	l, ok := a.listings[externalID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errSandboxUnknownListing, externalID)
	}
	return l, nil
}

// FetchMarketData returns a fixed two-listing market for any item
func (a *SandboxAdapter) FetchMarketData(ctx context.Context, itemID string) ([]byte, error) {
	if strings.TrimSpace(itemID) == "" {
		return nil, integration.MarketDataError(a.config.Code, "fetch_market_data", errors.New("item id is required"))
	}
	if err := ctx.Err(); err != nil {
		return nil, integration.MarketDataError(a.config.Code, "fetch_market_data", err)
	}
	raw, err := json.Marshal(marketPayload{
		Timestamp:     a.now().Format(time.RFC3339),
		ItemID:        itemID,
		Listings:      sandboxListings,
		TotalListings: len(sandboxListings),
	})
	if err != nil {
		return nil, integration.MarketDataError(a.config.Code, "fetch_market_data", err)
	}
	return raw, nil
}

// ParseResponse converts a market payload into MarketData
func (a *SandboxAdapter) ParseResponse(raw []byte) (*integration.MarketData, error) {
	return parseMarketPayload(a.config.Code, raw)
}

// GetPriceHistory returns one flat price point per day, both ends inclusive
func (a *SandboxAdapter) GetPriceHistory(ctx context.Context, itemID string, days int) (*integration.PriceHistory, error) {
	if days < 1 {
		return nil, integration.HistoricalDataError(a.config.Code, "get_price_history", fmt.Errorf("invalid days %d", days))
	}
	if err := ctx.Err(); err != nil {
		return nil, integration.HistoricalDataError(a.config.Code, "get_price_history", err)
	}

	end := a.now()
	start := end.AddDate(0, 0, -days)
	p := historyPayload{
		ItemID:      itemID,
		StartDate:   start.Format(time.RFC3339),
		EndDate:     end.Format(time.RFC3339),
		DailyPrices: make([]dailyPayload, 0, days+1),
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		p.DailyPrices = append(p.DailyPrices, dailyPayload{
			Date:          d.Format(time.RFC3339),
			AveragePrice:  sandboxHistoryPrice,
			TotalListings: sandboxHistoryListings,
		})
	}
	return toPriceHistory(a.config.Code, days, p)
}

var _ integration.ChannelAdapter = (*SandboxAdapter)(nil)
