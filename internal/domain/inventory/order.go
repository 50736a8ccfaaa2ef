package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockmesh/backend/internal/domain/shared"
	"github.com/stockmesh/backend/internal/domain/shared/strategy"
)

// OrderStatus is the lifecycle state of a channel order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsTerminal returns true for completed and cancelled orders
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Order is a sale placed against a listing. The core only reads orders.
type Order struct {
	shared.BaseEntity
	ListingID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status      OrderStatus     `gorm:"type:varchar(16);not null;index"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CompletedAt *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a pending order for a listing
func NewOrder(listingID uuid.UUID, total decimal.Decimal) (*Order, error) {
	if listingID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LISTING", "Listing ID cannot be empty")
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Order total cannot be negative")
	}
	return &Order{
		BaseEntity: shared.NewBaseEntity(),
		ListingID:  listingID,
		Status:     OrderStatusPending,
		TotalPrice: total,
	}, nil
}

// Complete marks the order as completed
func (o *Order) Complete(at time.Time) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending orders can be completed")
	}
	o.Status = OrderStatusCompleted
	o.CompletedAt = &at
	o.Touch(at)
	return nil
}

// Cancel marks the order as cancelled
func (o *Order) Cancel(at time.Time) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending orders can be cancelled")
	}
	o.Status = OrderStatusCancelled
	o.Touch(at)
	return nil
}

// Outcome converts the order into the allocation strategy's view of it
func (o Order) Outcome(listedAt time.Time) strategy.OrderOutcome {
	return strategy.OrderOutcome{
		Status:      strategy.OutcomeStatus(o.Status),
		ListedAt:    listedAt,
		CompletedAt: o.CompletedAt,
	}
}
