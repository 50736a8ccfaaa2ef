package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	inventoryapp "github.com/stockmesh/backend/internal/application/inventory"
	"github.com/stockmesh/backend/internal/domain/integration"
	"github.com/stockmesh/backend/internal/interfaces/http/dto"
)

// PlatformStatusReader reports channel connection states
type PlatformStatusReader interface {
	PlatformStatus(ctx context.Context, channel integration.ChannelCode) inventoryapp.PlatformStatus
	AllPlatformStatuses(ctx context.Context) []inventoryapp.PlatformStatus
}

// MarketDataReader reads market data and price history from channels
type MarketDataReader interface {
	FetchMarketData(ctx context.Context, channel integration.ChannelCode, itemID string) (*integration.MarketData, error)
	RefreshMarketData(ctx context.Context, channel integration.ChannelCode, itemID string) (*integration.MarketData, error)
	PriceHistory(ctx context.Context, channel integration.ChannelCode, itemID string, days int) (*integration.PriceHistory, error)
}

// MarketplaceHandler handles channel status and market data endpoints
type MarketplaceHandler struct {
	BaseHandler
	platforms  PlatformStatusReader
	marketData MarketDataReader
}

// NewMarketplaceHandler creates a new MarketplaceHandler
func NewMarketplaceHandler(platforms PlatformStatusReader, marketData MarketDataReader) *MarketplaceHandler {
	return &MarketplaceHandler{platforms: platforms, marketData: marketData}
}

// ListPlatforms godoc
// @ID           listMarketplaces
// @Summary      List channel connection states
// @Description  Reports the connection state and capabilities of every registered channel
// @Tags         marketplaces
// @Produce      json
// @Success      200 {object} dto.Response{data=[]inventoryapp.PlatformStatus}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /marketplaces [get]
func (h *MarketplaceHandler) ListPlatforms(c *gin.Context) {
	h.Success(c, h.platforms.AllPlatformStatuses(c.Request.Context()))
}

// GetPlatformStatus godoc
// @ID           getMarketplaceStatus
// @Summary      Get a channel connection state
// @Description  Unregistered channels are reported as unsupported rather than rejected
// @Tags         marketplaces
// @Produce      json
// @Param        channel path string true "Channel code" example(ebay)
// @Success      200 {object} dto.Response{data=inventoryapp.PlatformStatus}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /marketplaces/{channel}/status [get]
func (h *MarketplaceHandler) GetPlatformStatus(c *gin.Context) {
	channel, ok := h.ParseChannelParam(c)
	if !ok {
		return
	}
	h.Success(c, h.platforms.PlatformStatus(c.Request.Context(), channel))
}

// GetMarketData godoc
// @ID           getMarketData
// @Summary      Get market data of an item
// @Description  Returns competitor prices and listing counts for an item on a channel.
// @Description  Responses are cached; refresh=true reads past the cache.
// @Tags         marketplaces
// @Produce      json
// @Param        channel path string true "Channel code" example(ebay)
// @Param        item_id path string true "Channel item ID"
// @Param        refresh query bool false "Bypass the market data cache"
// @Success      200 {object} dto.Response{data=dto.MarketDataResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /marketplaces/{channel}/market-data/{item_id} [get]
func (h *MarketplaceHandler) GetMarketData(c *gin.Context) {
	channel, ok := h.ParseChannelParam(c)
	if !ok {
		return
	}
	itemID := c.Param("item_id")

	var query dto.MarketDataQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleQueryError(c, err)
		return
	}

	fetch := h.marketData.FetchMarketData
	if query.Refresh {
		fetch = h.marketData.RefreshMarketData
	}
	data, err := fetch(c.Request.Context(), channel, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewMarketDataResponse(channel, itemID, data))
}

// GetPriceHistory godoc
// @ID           getPriceHistory
// @Summary      Get price history of an item
// @Description  Returns daily average prices of an item on a channel
// @Tags         marketplaces
// @Produce      json
// @Param        channel path string true "Channel code" example(ebay)
// @Param        item_id path string true "Channel item ID"
// @Param        days query int false "Window in days" minimum(1) maximum(365) default(30)
// @Success      200 {object} dto.Response{data=dto.PriceHistoryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /marketplaces/{channel}/price-history/{item_id} [get]
func (h *MarketplaceHandler) GetPriceHistory(c *gin.Context) {
	channel, ok := h.ParseChannelParam(c)
	if !ok {
		return
	}

	var query dto.PriceHistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleQueryError(c, err)
		return
	}

	history, err := h.marketData.PriceHistory(c.Request.Context(), channel, c.Param("item_id"), query.Days)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewPriceHistoryResponse(channel, history))
}
