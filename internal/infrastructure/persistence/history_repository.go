package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockmesh/backend/internal/domain/analytics"
	"github.com/stockmesh/backend/internal/domain/integration"
	"github.com/stockmesh/backend/internal/domain/inventory"
	"github.com/stockmesh/backend/internal/domain/shared/strategy"
)

// GormHistoryRepository reads listing and order history for the analyzers
// and the allocator
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GormHistoryRepository
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// ListingsForItem returns every listing of an item with its orders
func (r *GormHistoryRepository) ListingsForItem(ctx context.Context, itemID uuid.UUID) ([]analytics.ListingHistory, error) {
	var listings []inventory.Listing
	if err := r.db.WithContext(ctx).
		Preload("Orders", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("item_id = ?", itemID).
		Order("created_at ASC").
		Find(&listings).Error; err != nil {
		return nil, err
	}

	out := make([]analytics.ListingHistory, len(listings))
	for i := range listings {
		out[i] = toListingHistory(&listings[i])
	}
	return out, nil
}

// ItemsByCategorySince returns the items of a category with the orders
// created or completed since the given time
func (r *GormHistoryRepository) ItemsByCategorySince(ctx context.Context, category string, since time.Time) ([]analytics.ItemHistory, error) {
	var items []inventory.Item
	if err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []analytics.ItemHistory{}, nil
	}

	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	var listings []inventory.Listing
	if err := r.db.WithContext(ctx).
		Preload("Orders", "created_at >= ? OR completed_at >= ?", since, since).
		Where("item_id IN ?", ids).
		Order("created_at ASC").
		Find(&listings).Error; err != nil {
		return nil, err
	}

	byItem := make(map[uuid.UUID][]analytics.ListingHistory, len(items))
	for i := range listings {
		l := &listings[i]
		byItem[l.ItemID] = append(byItem[l.ItemID], toListingHistory(l))
	}

	out := make([]analytics.ItemHistory, len(items))
	for i, item := range items {
		out[i] = analytics.ItemHistory{ItemID: item.ID, Listings: byItem[item.ID]}
	}
	return out, nil
}

// CompetitorSamplesForItem returns stored competitor prices grouped by channel
func (r *GormHistoryRepository) CompetitorSamplesForItem(ctx context.Context, itemID uuid.UUID) (map[integration.ChannelCode][]float64, error) {
	var samples []analytics.CompetitorSample
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("observed_at ASC").
		Find(&samples).Error; err != nil {
		return nil, err
	}

	out := make(map[integration.ChannelCode][]float64)
	for _, s := range samples {
		out[s.Channel] = append(out[s.Channel], s.Price)
	}
	return out, nil
}

// ChannelHistory returns, per channel, the outcomes of orders placed on any
// of that channel's listings. Channels without orders are absent.
func (r *GormHistoryRepository) ChannelHistory(ctx context.Context, channels []integration.ChannelCode) (map[integration.ChannelCode][]strategy.OrderOutcome, error) {
	out := make(map[integration.ChannelCode][]strategy.OrderOutcome)
	if len(channels) == 0 {
		return out, nil
	}

	var listings []inventory.Listing
	if err := r.db.WithContext(ctx).
		Preload("Orders").
		Where("channel IN ?", channels).
		Find(&listings).Error; err != nil {
		return nil, err
	}

	for _, l := range listings {
		for _, o := range l.Orders {
			out[l.Channel] = append(out[l.Channel], o.Outcome(l.CreatedAt))
		}
	}
	return out, nil
}

func toListingHistory(l *inventory.Listing) analytics.ListingHistory {
	h := analytics.ListingHistory{
		ListingID: l.ID,
		Channel:   l.Channel,
		Price:     l.Price,
		CreatedAt: l.CreatedAt,
		Orders:    make([]analytics.OrderHistory, len(l.Orders)),
	}
	for i, o := range l.Orders {
		h.Orders[i] = analytics.OrderHistory{
			Status:      string(o.Status),
			TotalPrice:  o.TotalPrice,
			CreatedAt:   o.CreatedAt,
			CompletedAt: o.CompletedAt,
		}
	}
	return h
}

var (
	_ analytics.HistoryRepository    = (*GormHistoryRepository)(nil)
	_ inventory.ChannelHistoryReader = (*GormHistoryRepository)(nil)
)
