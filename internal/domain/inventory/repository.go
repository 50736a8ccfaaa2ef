package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stockmesh/backend/internal/domain/integration"
	"github.com/stockmesh/backend/internal/domain/shared/strategy"
)

// ItemRepository defines the interface for item persistence
type ItemRepository interface {
	// FindByID finds an item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *Item) error

	// UpdateStock sets the item's total stock
	UpdateStock(ctx context.Context, id uuid.UUID, quantity int) error
}

// ListingRepository defines the interface for listing persistence
type ListingRepository interface {
	// FindByID finds a listing by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Listing, error)

	// FindActiveByItem returns the item's active listings ordered by creation
	FindActiveByItem(ctx context.Context, itemID uuid.UUID) ([]Listing, error)

	// FindAllActive returns every active listing
	FindAllActive(ctx context.Context) ([]Listing, error)

	// Save creates or updates a listing
	Save(ctx context.Context, listing *Listing) error

	// UpdateQuantity writes back a synchronized quantity
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int, at time.Time) error

	// MarkEnded writes back a delisting
	MarkEnded(ctx context.Context, id uuid.UUID, at time.Time) error

	// UpdatePlatformData writes back what a channel returned on publication
	UpdatePlatformData(ctx context.Context, id uuid.UUID, receipt integration.ListingReceipt, at time.Time) error
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// Save creates or updates an order
	Save(ctx context.Context, order *Order) error

	// FindByListing returns the orders placed against a listing
	FindByListing(ctx context.Context, listingID uuid.UUID) ([]Order, error)
}

// ChannelHistoryReader loads the order history used to score channels
type ChannelHistoryReader interface {
	// ChannelHistory returns, per channel, the outcomes of orders placed on any
	// of that channel's listings. Channels without such orders are absent.
	ChannelHistory(ctx context.Context, channels []integration.ChannelCode) (map[integration.ChannelCode][]strategy.OrderOutcome, error)
}
