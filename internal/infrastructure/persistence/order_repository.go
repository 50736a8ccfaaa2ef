package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockmesh/backend/internal/domain/inventory"
)

// GormOrderRepository implements inventory.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save creates or updates an order
func (r *GormOrderRepository) Save(ctx context.Context, order *inventory.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// FindByListing returns the orders placed against a listing, oldest first
func (r *GormOrderRepository) FindByListing(ctx context.Context, listingID uuid.UUID) ([]inventory.Order, error) {
	var orders []inventory.Order
	if err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

var _ inventory.OrderRepository = (*GormOrderRepository)(nil)
