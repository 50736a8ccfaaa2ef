package inventory

import (
	"strings"
	"time"

	"github.com/stockmesh/backend/internal/domain/shared"
)

// Item is a merchant's physical stock-keeping unit. TotalStock is the
// quantity available to split across channels.
type Item struct {
	shared.BaseEntity
	SKU        string `gorm:"type:varchar(64);not null;uniqueIndex"`
	Title      string `gorm:"type:varchar(255);not null"`
	Category   string `gorm:"type:varchar(100);not null;index"`
	TotalStock int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new item with the given opening stock
func NewItem(sku, title, category string, stock int) (*Item, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Stock cannot be negative")
	}

	return &Item{
		BaseEntity: shared.NewBaseEntity(),
		SKU:        sku,
		Title:      strings.TrimSpace(title),
		Category:   strings.TrimSpace(category),
		TotalStock: stock,
	}, nil
}

// SetStock replaces the total stock
func (i *Item) SetStock(quantity int, at time.Time) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Stock cannot be negative")
	}
	i.TotalStock = quantity
	i.Touch(at)
	return nil
}
