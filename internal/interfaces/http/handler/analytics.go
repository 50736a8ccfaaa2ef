package handler

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	analyticsapp "github.com/stockmesh/backend/internal/application/analytics"
	"github.com/stockmesh/backend/internal/domain/analytics"
)

// AnalyticsReader runs the pricing and demand analyzers
type AnalyticsReader interface {
	PriceTrend(ctx context.Context, itemID uuid.UUID) (*analytics.PriceTrend, error)
	CompetitivePricing(ctx context.Context, itemID uuid.UUID) (*analytics.CompetitivePricing, error)
	SeasonalDemand(ctx context.Context, category string) (*analytics.SeasonalDemand, error)
}

// MarketResearcher runs a market data collection pass
type MarketResearcher interface {
	CollectMarketData(ctx context.Context) (*analyticsapp.ResearchSummary, error)
}

// SnapshotTaker captures daily snapshots and reads listing metrics
type SnapshotTaker interface {
	CaptureDailySnapshot(ctx context.Context, day time.Time) (*analytics.AnalyticsSnapshot, error)
	LatestListingMetrics(ctx context.Context, listingID uuid.UUID) (*analytics.ListingAnalytics, error)
	LatestSnapshot(ctx context.Context) (*analytics.AnalyticsSnapshot, error)
}

// AnalyticsHandler handles analytics endpoints
type AnalyticsHandler struct {
	BaseHandler
	analyzers AnalyticsReader
	research  MarketResearcher
	snapshots SnapshotTaker
	now       func() time.Time
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyzers AnalyticsReader, research MarketResearcher, snapshots SnapshotTaker) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyzers: analyzers,
		research:  research,
		snapshots: snapshots,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// GetPriceTrend godoc
// @ID           getPriceTrend
// @Summary      Get the price trend of an item
// @Description  Classifies recent competitor price movement of an item with a least squares fit
// @Tags         analytics
// @Produce      json
// @Param        item_id path string true "Item ID" format(uuid)
// @Success      200 {object} dto.Response{data=analytics.PriceTrend}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /analytics/items/{item_id}/price-trend [get]
func (h *AnalyticsHandler) GetPriceTrend(c *gin.Context) {
	itemID, ok := h.ParseUUIDParam(c, "item_id")
	if !ok {
		return
	}

	trend, err := h.analyzers.PriceTrend(c.Request.Context(), itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, trend)
}

// GetCompetitivePricing godoc
// @ID           getCompetitivePricing
// @Summary      Get a competitive price recommendation
// @Description  Compares competitor prices of an item across channels and recommends a target price
// @Tags         analytics
// @Produce      json
// @Param        item_id path string true "Item ID" format(uuid)
// @Success      200 {object} dto.Response{data=analytics.CompetitivePricing}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /analytics/items/{item_id}/competitive-pricing [get]
func (h *AnalyticsHandler) GetCompetitivePricing(c *gin.Context) {
	itemID, ok := h.ParseUUIDParam(c, "item_id")
	if !ok {
		return
	}

	pricing, err := h.analyzers.CompetitivePricing(c.Request.Context(), itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pricing)
}

// GetSeasonalDemand godoc
// @ID           getSeasonalDemand
// @Summary      Get the seasonal demand of a category
// @Description  Predicts the seasonal sales pattern of a category from monthly order counts
// @Tags         analytics
// @Produce      json
// @Param        category path string true "Category"
// @Success      200 {object} dto.Response{data=analytics.SeasonalDemand}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /analytics/categories/{category}/seasonal-demand [get]
func (h *AnalyticsHandler) GetSeasonalDemand(c *gin.Context) {
	category := strings.TrimSpace(c.Param("category"))
	if category == "" {
		h.BadRequest(c, "category is required")
		return
	}

	demand, err := h.analyzers.SeasonalDemand(c.Request.Context(), category)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, demand)
}

// RunMarketResearch godoc
// @ID           runMarketResearch
// @Summary      Run a market research pass
// @Description  Collects market data for every active listing now and returns the pass summary
// @Tags         analytics
// @Produce      json
// @Success      200 {object} dto.Response{data=analyticsapp.ResearchSummary}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /analytics/market-research/run [post]
func (h *AnalyticsHandler) RunMarketResearch(c *gin.Context) {
	summary, err := h.research.CollectMarketData(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// RunSnapshot godoc
// @ID           runAnalyticsSnapshot
// @Summary      Capture today's analytics snapshot
// @Description  Averages the last 24 hours of listing metrics into today's snapshot, replacing an earlier one for the same day
// @Tags         analytics
// @Produce      json
// @Success      200 {object} dto.Response{data=analytics.AnalyticsSnapshot}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /analytics/snapshots/run [post]
func (h *AnalyticsHandler) RunSnapshot(c *gin.Context) {
	snapshot, err := h.snapshots.CaptureDailySnapshot(c.Request.Context(), h.now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, snapshot)
}

// GetListingMetrics godoc
// @ID           getListingMetrics
// @Summary      Get the latest metrics of a listing
// @Description  Returns the most recently recorded data quality metrics of a listing
// @Tags         analytics
// @Produce      json
// @Param        listing_id path string true "Listing ID" format(uuid)
// @Success      200 {object} dto.Response{data=analytics.ListingAnalytics}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /analytics/listings/{listing_id}/metrics [get]
func (h *AnalyticsHandler) GetListingMetrics(c *gin.Context) {
	listingID, ok := h.ParseUUIDParam(c, "listing_id")
	if !ok {
		return
	}

	metrics, err := h.snapshots.LatestListingMetrics(c.Request.Context(), listingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, metrics)
}

// GetLatestSnapshot godoc
// @ID           getLatestAnalyticsSnapshot
// @Summary      Get the latest analytics snapshot
// @Description  Returns the snapshot of the most recent captured day
// @Tags         analytics
// @Produce      json
// @Success      200 {object} dto.Response{data=analytics.AnalyticsSnapshot}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /analytics/snapshots/latest [get]
func (h *AnalyticsHandler) GetLatestSnapshot(c *gin.Context) {
	snapshot, err := h.snapshots.LatestSnapshot(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, snapshot)
}
