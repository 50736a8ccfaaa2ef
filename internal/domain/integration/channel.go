package integration

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// ChannelCode
// ---------------------------------------------------------------------------

// ChannelCode identifies a configured sales channel (e.g. "ebay", "shopify")
type ChannelCode string

var channelCodePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,31}$`)

// NewChannelCode normalizes and validates a channel code
func NewChannelCode(raw string) (ChannelCode, error) {
	code := ChannelCode(strings.ToLower(strings.TrimSpace(raw)))
	if !code.IsValid() {
		return "", ErrInvalidChannelCode
	}
	return code, nil
}

// IsValid returns true if the code is a well-formed channel identifier
func (c ChannelCode) IsValid() bool {
	return channelCodePattern.MatchString(string(c))
}

// String returns the string representation of ChannelCode
func (c ChannelCode) String() string {
	return string(c)
}

// ---------------------------------------------------------------------------
// SyncStatus
// ---------------------------------------------------------------------------

// SyncStatus is the aggregate status of a fan-out synchronization
type SyncStatus string

const (
	// SyncStatusSuccess indicates every channel operation succeeded
	SyncStatusSuccess SyncStatus = "SUCCESS"
	// SyncStatusPartial indicates some channel operations failed
	SyncStatusPartial SyncStatus = "PARTIAL"
	// SyncStatusFailed indicates every channel operation failed
	SyncStatusFailed SyncStatus = "FAILED"
	// SyncStatusNoActiveListings indicates there was nothing to synchronize
	SyncStatusNoActiveListings SyncStatus = "NO_ACTIVE_LISTINGS"
)

// AggregateSyncStatus derives the aggregate status from success and failure counts
func AggregateSyncStatus(succeeded, failed int) SyncStatus {
	switch {
	case succeeded == 0 && failed == 0:
		return SyncStatusNoActiveListings
	case failed == 0:
		return SyncStatusSuccess
	case succeeded > 0:
		return SyncStatusPartial
	default:
		return SyncStatusFailed
	}
}

// ---------------------------------------------------------------------------
// Value objects exchanged with adapters
// ---------------------------------------------------------------------------

// ListingRequest is the channel-neutral description of a listing to publish
type ListingRequest struct {
	ItemID      string
	SKU         string
	Title       string
	Description string
	Condition   string
	Price       decimal.Decimal
	Quantity    int
	Category    string
}

// ListingReceipt is returned by a channel after a listing is published
type ListingReceipt struct {
	ExternalID string
	URL        string
}

// MarketData is the normalized market snapshot returned by ParseResponse
type MarketData struct {
	AvgPrice         decimal.Decimal
	MinPrice         decimal.Decimal
	MaxPrice         decimal.Decimal
	TotalListings    int
	CompetitorPrices []decimal.Decimal
	Conditions       []string
	HasDescriptions  bool
	Timestamp        time.Time
}

// DailyPrice is one day of channel price history
type DailyPrice struct {
	Date          time.Time
	AvgPrice      decimal.Decimal
	TotalListings int
}

// PriceHistory holds a window of daily prices for one item on one channel
type PriceHistory struct {
	ItemID      string
	Days        int
	DailyPrices []DailyPrice
}

// Capabilities advertised by a connected channel
const (
	CapabilityCreateListing  = "create_listing"
	CapabilityMarketResearch = "market_research"
	CapabilityPriceHistory   = "price_history"
)

// DefaultCapabilities returns the capabilities every adapter implements
func DefaultCapabilities() []string {
	return []string{CapabilityCreateListing, CapabilityMarketResearch, CapabilityPriceHistory}
}

// ---------------------------------------------------------------------------
// ChannelAdapter Port Interface
// ---------------------------------------------------------------------------

// ChannelAdapter defines the port interface for an external sales channel.
// It is defined in the domain layer; concrete adapters live in the
// infrastructure layer. Every method may block on network I/O and must
// return errors from the MarketplaceError family.
type ChannelAdapter interface {
	// Code returns the channel this adapter handles
	Code() ChannelCode

	// Authenticate verifies the configured credentials
	Authenticate(ctx context.Context) error

	// CreateListing publishes a new listing
	CreateListing(ctx context.Context, req ListingRequest) (*ListingReceipt, error)

	// UpdateStock sets the available quantity of a published listing
	UpdateStock(ctx context.Context, externalID string, quantity int) error

	// EndListing withdraws a published listing
	EndListing(ctx context.Context, externalID string) error

	// GetStockLevel returns the channel's view of the quantity, or nil when unknown
	GetStockLevel(ctx context.Context, externalID string) (*int, error)

	// FetchMarketData returns the raw market payload for an item
	FetchMarketData(ctx context.Context, itemID string) ([]byte, error)

	// ParseResponse converts a raw market payload into MarketData
	ParseResponse(raw []byte) (*MarketData, error)

	// GetPriceHistory returns daily prices for the last days
	GetPriceHistory(ctx context.Context, itemID string, days int) (*PriceHistory, error)
}

// ChannelRegistry provides access to the configured channel adapters
type ChannelRegistry interface {
	// Get returns the adapter for the channel or ErrUnknownChannel
	Get(code ChannelCode) (ChannelAdapter, error)

	// Codes returns the registered channel codes in registration order
	Codes() []ChannelCode

	// Has returns true if the channel is registered
	Has(code ChannelCode) bool
}
