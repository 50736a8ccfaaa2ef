package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockmesh/backend/internal/domain/integration"
	"github.com/stockmesh/backend/internal/domain/inventory"
	"github.com/stockmesh/backend/internal/domain/shared"
)

// GormListingRepository implements inventory.ListingRepository using GORM
type GormListingRepository struct {
	db *gorm.DB
}

// NewGormListingRepository creates a new GormListingRepository
func NewGormListingRepository(db *gorm.DB) *GormListingRepository {
	return &GormListingRepository{db: db}
}

// FindByID finds a listing by its ID
func (r *GormListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Listing, error) {
	var listing inventory.Listing
	if err := r.db.WithContext(ctx).First(&listing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NotFound("Listing not found")
		}
		return nil, err
	}
	return &listing, nil
}

// FindActiveByItem returns the item's active listings ordered by creation
func (r *GormListingRepository) FindActiveByItem(ctx context.Context, itemID uuid.UUID) ([]inventory.Listing, error) {
	var listings []inventory.Listing
	if err := r.db.WithContext(ctx).
		Where("item_id = ? AND status = ?", itemID, inventory.ListingStatusActive).
		Order("created_at ASC, id ASC").
		Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// FindAllActive returns every active listing
func (r *GormListingRepository) FindAllActive(ctx context.Context) ([]inventory.Listing, error) {
	var listings []inventory.Listing
	if err := r.db.WithContext(ctx).
		Where("status = ?", inventory.ListingStatusActive).
		Order("created_at ASC, id ASC").
		Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// Save creates or updates a listing
func (r *GormListingRepository) Save(ctx context.Context, listing *inventory.Listing) error {
	return r.db.WithContext(ctx).Omit("Orders").Save(listing).Error
}

// UpdateQuantity writes back a synchronized quantity
func (r *GormListingRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int, at time.Time) error {
	return r.update(ctx, id, map[string]any{
		"quantity":          quantity,
		"last_stock_update": at,
		"updated_at":        at,
	})
}

// MarkEnded writes back a delisting
func (r *GormListingRepository) MarkEnded(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.update(ctx, id, map[string]any{
		"status":     inventory.ListingStatusEnded,
		"quantity":   0,
		"ended_at":   at,
		"updated_at": at,
	})
}

// UpdatePlatformData writes back what a channel returned on publication.
// Existing platform data keys are preserved.
func (r *GormListingRepository) UpdatePlatformData(ctx context.Context, id uuid.UUID, receipt integration.ListingReceipt, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing inventory.Listing
		if err := tx.First(&listing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.NotFound("Listing not found")
			}
			return err
		}
		listing.RecordPublication(receipt, at)
		return tx.Model(&listing).
			Select("external_id", "url", "platform_data", "last_synced_at", "updated_at").
			Updates(&listing).Error
	})
}

func (r *GormListingRepository) update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	result := r.db.WithContext(ctx).Model(&inventory.Listing{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound("Listing not found")
	}
	return nil
}

var _ inventory.ListingRepository = (*GormListingRepository)(nil)
