package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockmesh/backend/internal/domain/integration"
	"github.com/stockmesh/backend/internal/domain/shared"
)

// ListingStatus is the lifecycle state of a channel listing
type ListingStatus string

const (
	ListingStatusActive ListingStatus = "active"
	ListingStatusEnded  ListingStatus = "ended"
)

// IsValid returns true if the status is valid
func (s ListingStatus) IsValid() bool {
	return s == ListingStatusActive || s == ListingStatusEnded
}

// Platform data keys written after a channel accepts a listing
const (
	PlatformDataExternalID    = "external_id"
	PlatformDataURL           = "url"
	PlatformDataSyncTimestamp = "sync_timestamp"
)

// Listing is an item published on one sales channel
type Listing struct {
	shared.BaseEntity
	ItemID          uuid.UUID               `gorm:"type:uuid;not null;index"`
	Channel         integration.ChannelCode `gorm:"type:varchar(32);not null;index"`
	ExternalID      string                  `gorm:"type:varchar(128)"`
	URL             string                  `gorm:"type:varchar(512)"`
	Status          ListingStatus           `gorm:"type:varchar(16);not null;index"`
	Price           decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	Quantity        int                     `gorm:"not null;default:0"`
	PlatformData    map[string]string       `gorm:"serializer:json;type:text"`
	LastStockUpdate *time.Time
	LastSyncedAt    *time.Time
	EndedAt         *time.Time

	Orders []Order `gorm:"foreignKey:ListingID;references:ID"`
}

// TableName returns the table name for GORM
func (Listing) TableName() string {
	return "listings"
}

// NewListing creates an active listing for an item on a channel
func NewListing(itemID uuid.UUID, channel integration.ChannelCode, price decimal.Decimal, quantity int) (*Listing, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if !channel.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Channel code is invalid")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	return &Listing{
		BaseEntity:   shared.NewBaseEntity(),
		ItemID:       itemID,
		Channel:      channel,
		Status:       ListingStatusActive,
		Price:        price,
		Quantity:     quantity,
		PlatformData: make(map[string]string),
	}, nil
}

// IsActive returns true if the listing is live on its channel
func (l *Listing) IsActive() bool {
	return l.Status == ListingStatusActive
}

// ApplyStock records a new channel quantity
func (l *Listing) ApplyStock(quantity int, at time.Time) error {
	if !l.IsActive() {
		return shared.NewDomainError("INVALID_STATE", "Cannot update stock of an ended listing")
	}
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	l.Quantity = quantity
	l.LastStockUpdate = &at
	l.Touch(at)
	return nil
}

// End marks the listing as withdrawn from its channel
func (l *Listing) End(at time.Time) {
	l.Status = ListingStatusEnded
	l.Quantity = 0
	l.EndedAt = &at
	l.Touch(at)
}

// RecordPublication stores the identifiers a channel returned for this listing
func (l *Listing) RecordPublication(receipt integration.ListingReceipt, at time.Time) {
	if l.PlatformData == nil {
		l.PlatformData = make(map[string]string)
	}
	l.ExternalID = receipt.ExternalID
	l.URL = receipt.URL
	l.PlatformData[PlatformDataExternalID] = receipt.ExternalID
	l.PlatformData[PlatformDataURL] = receipt.URL
	l.PlatformData[PlatformDataSyncTimestamp] = at.UTC().Format(time.RFC3339)
	l.LastSyncedAt = &at
	l.Touch(at)
}

// RemoteID returns the identifier used when addressing this listing on its
// channel; listings that were never published fall back to the local ID
func (l *Listing) RemoteID() string {
	if l.ExternalID != "" {
		return l.ExternalID
	}
	return l.ID.String()
}
