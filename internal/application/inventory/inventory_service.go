package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stockmesh/backend/internal/domain/integration"
	"github.com/stockmesh/backend/internal/domain/inventory"
	"github.com/stockmesh/backend/internal/domain/shared"
)

// InventoryService handles item stock updates and their channel propagation
type InventoryService struct {
	items        inventory.ItemRepository
	orchestrator *SyncOrchestrator
	registry     integration.ChannelRegistry
	logger       *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	items inventory.ItemRepository,
	orchestrator *SyncOrchestrator,
	registry integration.ChannelRegistry,
	logger *zap.Logger,
) *InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryService{
		items:        items,
		orchestrator: orchestrator,
		registry:     registry,
		logger:       logger,
	}
}

// UpdateStockLevel sets an item's total stock and synchronizes it across the
// item's active listings. The master stock is updated after the channels.
func (s *InventoryService) UpdateStockLevel(ctx context.Context, itemID uuid.UUID, quantity int) (*InventorySyncReport, error) {
	if quantity < 0 {
		return nil, shared.InvalidInput("quantity cannot be negative")
	}
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return nil, err
	}

	report, err := s.orchestrator.SyncInventory(ctx, itemID, quantity)
	if err != nil {
		return nil, err
	}

	if err := s.items.UpdateStock(ctx, itemID, quantity); err != nil {
		s.logger.Error("Failed to update master stock after sync",
			zap.String("item_id", itemID.String()),
			zap.Int("quantity", quantity),
			zap.Error(err),
		)
		return nil, fmt.Errorf("update item stock: %w", err)
	}
	return report, nil
}

// GetStockLevels returns the item's stock as seen by each channel
func (s *InventoryService) GetStockLevels(ctx context.Context, itemID uuid.UUID) (*ItemStockResponse, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	levels, err := s.orchestrator.StockLevels(ctx, itemID)
	if err != nil {
		return nil, err
	}

	return &ItemStockResponse{
		ItemID:      item.ID,
		TotalStock:  item.TotalStock,
		Channels:    levels,
		LastUpdated: item.UpdatedAt,
	}, nil
}

// SyncListing publishes a listing. An empty channel set targets every
// registered channel.
func (s *InventoryService) SyncListing(ctx context.Context, req ListingSyncRequest) (*ListingSyncReport, error) {
	if len(req.Channels) == 0 {
		req.Channels = s.registry.Codes()
	}
	return s.orchestrator.SyncListing(ctx, req)
}

// PlatformStatus reports the connection state of one channel
func (s *InventoryService) PlatformStatus(ctx context.Context, channel integration.ChannelCode) PlatformStatus {
	return s.orchestrator.PlatformStatus(ctx, channel)
}

// AllPlatformStatuses reports the connection state of every channel
func (s *InventoryService) AllPlatformStatuses(ctx context.Context) []PlatformStatus {
	return s.orchestrator.AllPlatformStatuses(ctx)
}
