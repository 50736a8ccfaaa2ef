package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockmesh/backend/internal/domain/integration"
)

// SyncAction is what the orchestrator did to a listing
type SyncAction string

const (
	SyncActionUpdated  SyncAction = "updated"
	SyncActionDelisted SyncAction = "delisted"
)

// Outcome statuses of a single channel operation
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Error codes recorded on failed outcomes besides the marketplace error kinds
const (
	ErrCodePersistenceFailed = "PERSISTENCE_FAILED"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

// ListingSyncOutcome is the result of synchronizing one listing
type ListingSyncOutcome struct {
	ListingID    uuid.UUID               `json:"listing_id"`
	Channel      integration.ChannelCode `json:"channel"`
	Action       SyncAction              `json:"action"`
	NewStock     int                     `json:"new_stock"`
	Status       string                  `json:"status"`
	ErrorCode    string                  `json:"error_code,omitempty"`
	ErrorMessage string                  `json:"error,omitempty"`
}

// Succeeded returns true if the channel call and the write-back both succeeded
func (o ListingSyncOutcome) Succeeded() bool {
	return o.Status == OutcomeSuccess
}

// InventorySyncReport aggregates an inventory sync across channels
type InventorySyncReport struct {
	ItemID     uuid.UUID              `json:"item_id"`
	TotalStock int                    `json:"total_stock"`
	Status     integration.SyncStatus `json:"status"`
	Allocation *AllocationResult      `json:"allocation,omitempty"`
	Outcomes   []ListingSyncOutcome   `json:"listing_results"`
	Succeeded  int                    `json:"succeeded"`
	Failed     int                    `json:"failed"`
	SyncedAt   time.Time              `json:"synced_at"`
}

// ListingSyncRequest publishes a listing on a set of channels.
// ListingID or ItemID select local listings that receive the returned
// platform data; both are optional.
type ListingSyncRequest struct {
	ListingID *uuid.UUID
	ItemID    *uuid.UUID
	Listing   integration.ListingRequest
	Channels  []integration.ChannelCode
}

// ChannelListingResult is the outcome of publishing on one channel
type ChannelListingResult struct {
	Status       string     `json:"status"`
	ExternalID   string     `json:"external_id,omitempty"`
	URL          string     `json:"url,omitempty"`
	Timestamp    *time.Time `json:"timestamp,omitempty"`
	ErrorCode    string     `json:"error_code,omitempty"`
	ErrorMessage string     `json:"error,omitempty"`
}

// ListingSyncStatusCompleted is the status of every finished listing sync
const ListingSyncStatusCompleted = "completed"

// ListingSyncReport holds per-channel publication results
type ListingSyncReport struct {
	Status   string                                           `json:"status"`
	Results  map[integration.ChannelCode]ChannelListingResult `json:"platform_results"`
	SyncedAt time.Time                                        `json:"sync_timestamp"`
}

// StockLevel is one channel's view of a listing's quantity
type StockLevel struct {
	ListingID     uuid.UUID `json:"listing_id"`
	LocalQuantity int       `json:"local_quantity"`
	ChannelStock  *int      `json:"channel_stock"`
	Status        string    `json:"status"`
	ErrorMessage  string    `json:"error,omitempty"`
}

// ItemStockResponse is the stock of an item across channels
type ItemStockResponse struct {
	ItemID      uuid.UUID                              `json:"item_id"`
	TotalStock  int                                    `json:"total_stock"`
	Channels    map[integration.ChannelCode]StockLevel `json:"marketplace_stock"`
	LastUpdated time.Time                              `json:"last_update"`
}

// Platform connection states
const (
	PlatformConnected   = "connected"
	PlatformError       = "error"
	PlatformUnsupported = "unsupported"
)

// PlatformStatus is the connection state of a channel
type PlatformStatus struct {
	Channel      integration.ChannelCode `json:"channel"`
	Status       string                  `json:"status"`
	Capabilities []string                `json:"capabilities,omitempty"`
	Message      string                  `json:"message,omitempty"`
}
