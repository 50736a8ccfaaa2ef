package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/stockmesh/backend/internal/application/inventory"
	"github.com/stockmesh/backend/internal/domain/integration"
	"github.com/stockmesh/backend/internal/interfaces/http/dto"
)

// InventoryUseCases is the inventory application surface used by the API
type InventoryUseCases interface {
	UpdateStockLevel(ctx context.Context, itemID uuid.UUID, quantity int) (*inventoryapp.InventorySyncReport, error)
	GetStockLevels(ctx context.Context, itemID uuid.UUID) (*inventoryapp.ItemStockResponse, error)
	SyncListing(ctx context.Context, req inventoryapp.ListingSyncRequest) (*inventoryapp.ListingSyncReport, error)
}

// InventoryHandler handles stock and listing synchronization endpoints
type InventoryHandler struct {
	BaseHandler
	inventory InventoryUseCases
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventory InventoryUseCases) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// UpdateStock godoc
// @ID           updateInventoryStock
// @Summary      Update an item's stock
// @Description  Sets the total stock of an item and pushes the allocated quantity to every channel the item is listed on.
// @Description  Channel failures are reported per listing and never fail the request.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        item_id path string true "Item ID" format(uuid)
// @Param        request body dto.UpdateStockRequest true "New total stock"
// @Success      200 {object} dto.Response{data=inventoryapp.InventorySyncReport}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/{item_id}/stock [put]
func (h *InventoryHandler) UpdateStock(c *gin.Context) {
	itemID, ok := h.ParseUUIDParam(c, "item_id")
	if !ok {
		return
	}

	var req dto.UpdateStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	report, err := h.inventory.UpdateStockLevel(c.Request.Context(), itemID, *req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// GetStock godoc
// @ID           getInventoryStock
// @Summary      Get an item's stock per channel
// @Description  Reports the local and channel-side quantity of every active listing of an item
// @Tags         inventory
// @Produce      json
// @Param        item_id path string true "Item ID" format(uuid)
// @Success      200 {object} dto.Response{data=inventoryapp.ItemStockResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/{item_id}/stock [get]
func (h *InventoryHandler) GetStock(c *gin.Context) {
	itemID, ok := h.ParseUUIDParam(c, "item_id")
	if !ok {
		return
	}

	levels, err := h.inventory.GetStockLevels(c.Request.Context(), itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, levels)
}

// SyncListing godoc
// @ID           syncListing
// @Summary      Publish a listing on channels
// @Description  Creates the listing on each requested channel, or on every registered channel when channels is omitted
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        request body dto.ListingSyncRequest true "Listing to publish"
// @Success      200 {object} dto.Response{data=inventoryapp.ListingSyncReport}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /listings/sync [post]
func (h *InventoryHandler) SyncListing(c *gin.Context) {
	var req dto.ListingSyncRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if !req.Price.IsPositive() {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidationRange, "price must be positive")
		return
	}

	syncReq := inventoryapp.ListingSyncRequest{
		Listing: integration.ListingRequest{
			ItemID:      req.ItemID,
			SKU:         req.SKU,
			Title:       req.Title,
			Description: req.Description,
			Condition:   req.Condition,
			Price:       req.Price,
			Quantity:    req.Quantity,
			Category:    req.Category,
		},
	}
	var err error
	if syncReq.ItemID, err = optionalUUID(req.ItemID); err != nil {
		h.BadRequest(c, "Invalid item_id format")
		return
	}
	if syncReq.ListingID, err = optionalUUID(req.ListingID); err != nil {
		h.BadRequest(c, "Invalid listing_id format")
		return
	}
	for _, raw := range req.Channels {
		code, err := integration.NewChannelCode(raw)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		syncReq.Channels = append(syncReq.Channels, code)
	}

	report, err := h.inventory.SyncListing(c.Request.Context(), syncReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

func optionalUUID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
