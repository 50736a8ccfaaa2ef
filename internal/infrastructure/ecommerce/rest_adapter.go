package ecommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockmesh/backend/internal/domain/integration"
)

// maxResponseSize is the maximum allowed response size from a channel API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Request headers of the channel REST protocol
const (
	HeaderAPIKey    = "X-Api-Key"
	HeaderTimestamp = "X-Timestamp"
	HeaderSignature = "X-Signature"
	HeaderRequestID = "X-Request-Id"
)

// RESTAdapter talks to a channel over a signed JSON/HTTP API
type RESTAdapter struct {
	config     *ChannelConfig
	httpClient *http.Client
	now        func() time.Time
}

// NewRESTAdapter creates a new REST adapter with the given configuration
func NewRESTAdapter(config *ChannelConfig) (*RESTAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &RESTAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		now: time.Now,
	}, nil
}

// Code returns the channel this adapter handles
func (a *RESTAdapter) Code() integration.ChannelCode {
	return a.config.Code
}

// Authenticate verifies the configured credentials
func (a *RESTAdapter) Authenticate(ctx context.Context) error {
	_, err := a.doRequest(ctx, "authenticate", integration.KindAuthentication, http.MethodPost, "/auth/verify", nil)
	return err
}

type createListingBody struct {
	ItemID      string          `json:"item_id"`
	SKU         string          `json:"sku,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Condition   string          `json:"condition,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Category    string          `json:"category,omitempty"`
}

type createListingResponse struct {
	ExternalID string `json:"external_id"`
	URL        string `json:"url"`
}

// CreateListing publishes a new listing
func (a *RESTAdapter) CreateListing(ctx context.Context, req integration.ListingRequest) (*integration.ListingReceipt, error) {
	const op = "create_listing"
	body, err := json.Marshal(createListingBody{
		ItemID:      req.ItemID,
		SKU:         req.SKU,
		Title:       req.Title,
		Description: req.Description,
		Condition:   req.Condition,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
	})
	if err != nil {
		return nil, integration.OperationError(a.config.Code, op, err)
	}

	respBody, err := a.doRequest(ctx, op, integration.KindMarketplace, http.MethodPost, "/listings", body)
	if err != nil {
		return nil, err
	}

	var resp createListingResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, integration.ParseError(a.config.Code, op, err)
	}
	if resp.ExternalID == "" {
		return nil, integration.ParseError(a.config.Code, op, fmt.Errorf("response has no external_id"))
	}
	return &integration.ListingReceipt{ExternalID: resp.ExternalID, URL: resp.URL}, nil
}

type stockBody struct {
	Quantity *int `json:"quantity"`
}

// UpdateStock sets the available quantity of a published listing
func (a *RESTAdapter) UpdateStock(ctx context.Context, externalID string, quantity int) error {
	body, err := json.Marshal(stockBody{Quantity: &quantity})
	if err != nil {
		return integration.OperationError(a.config.Code, "update_stock", err)
	}
	_, err = a.doRequest(ctx, "update_stock", integration.KindMarketplace, http.MethodPut, listingPath(externalID)+"/stock", body)
	return err
}

// EndListing withdraws a published listing
func (a *RESTAdapter) EndListing(ctx context.Context, externalID string) error {
	_, err := a.doRequest(ctx, "end_listing", integration.KindMarketplace, http.MethodDelete, listingPath(externalID), nil)
	return err
}

// GetStockLevel returns the channel's view of the quantity
func (a *RESTAdapter) GetStockLevel(ctx context.Context, externalID string) (*int, error) {
	const op = "get_stock_level"
	respBody, err := a.doRequest(ctx, op, integration.KindMarketplace, http.MethodGet, listingPath(externalID)+"/stock", nil)
	if err != nil {
		return nil, err
	}
	var resp stockBody
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, integration.ParseError(a.config.Code, op, err)
	}
	return resp.Quantity, nil
}

// FetchMarketData returns the raw market payload for an item
func (a *RESTAdapter) FetchMarketData(ctx context.Context, itemID string) ([]byte, error) {
	if itemID == "" {
		return nil, integration.MarketDataError(a.config.Code, "fetch_market_data", fmt.Errorf("item id is required"))
	}
	return a.doRequest(ctx, "fetch_market_data", integration.KindMarketData, http.MethodGet, "/market-data/"+url.PathEscape(itemID), nil)
}

// ParseResponse converts a raw market payload into MarketData
func (a *RESTAdapter) ParseResponse(raw []byte) (*integration.MarketData, error) {
	return parseMarketPayload(a.config.Code, raw)
}

// GetPriceHistory returns daily prices for the last days
func (a *RESTAdapter) GetPriceHistory(ctx context.Context, itemID string, days int) (*integration.PriceHistory, error) {
	const op = "get_price_history"
	if days < 1 {
		return nil, integration.HistoricalDataError(a.config.Code, op, fmt.Errorf("invalid days %d", days))
	}
	path := "/price-history/" + url.PathEscape(itemID) + "?days=" + strconv.Itoa(days)
	respBody, err := a.doRequest(ctx, op, integration.KindHistoricalData, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var p historyPayload
	if err := json.Unmarshal(respBody, &p); err != nil {
		return nil, integration.HistoricalDataError(a.config.Code, op, err)
	}
	return toPriceHistory(a.config.Code, days, p)
}

func listingPath(externalID string) string {
	return "/listings/" + url.PathEscape(externalID)
}

// doRequest sends a signed request and returns the response body.
// Transport and HTTP failures are reported as kind, except 401 and 403
// which are always authentication failures.
func (a *RESTAdapter) doRequest(ctx context.Context, op string, kind integration.ErrorKind, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.config.BaseURL+path, reader)
	if err != nil {
		return nil, integration.NewMarketplaceError(kind, a.config.Code, op, err)
	}

	timestamp := strconv.FormatInt(a.now().Unix(), 10)
	req.Header.Set(HeaderAPIKey, a.config.APIKey)
	req.Header.Set(HeaderTimestamp, timestamp)
	req.Header.Set(HeaderSignature, a.config.Sign(method, req.URL.RequestURI(), timestamp, body))
	req.Header.Set(HeaderRequestID, uuid.NewString())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, integration.NewMarketplaceError(kind, a.config.Code, op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, integration.NewMarketplaceError(kind, a.config.Code, op, fmt.Errorf("read response: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, integration.AuthError(a.config.Code, op, fmt.Errorf("HTTP %d", resp.StatusCode))
	case resp.StatusCode >= 400:
		return nil, integration.NewMarketplaceError(kind, a.config.Code, op, fmt.Errorf("HTTP %d", resp.StatusCode))
	}
	return respBody, nil
}

var _ integration.ChannelAdapter = (*RESTAdapter)(nil)
