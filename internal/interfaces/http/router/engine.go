package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/stockmesh/backend/internal/infrastructure/logger"
	"github.com/stockmesh/backend/internal/interfaces/http/handler"
	"github.com/stockmesh/backend/internal/interfaces/http/middleware"
)

// HealthPath is served outside the versioned API and is not access-logged
const HealthPath = "/health"

// EngineConfig configures the middleware chain of the HTTP engine
type EngineConfig struct {
	Tracing        middleware.TracingConfig
	CORS           middleware.CORSConfig
	MaxBodySize    int64
	TrustedProxies []string
	// Meter records HTTP server metrics; nil disables them
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewEngine builds a gin engine with the standard middleware chain. The
// tracing middleware runs first so request logs carry trace ids.
func NewEngine(cfg EngineConfig) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	metrics, err := middleware.HTTPMetrics(cfg.Meter)
	if err != nil {
		return nil, fmt.Errorf("http metrics: %w", err)
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Tracing(cfg.Tracing),
		middleware.SpanAttributes(),
		middleware.SpanErrorMarker(),
		logger.GinMiddleware(log, HealthPath),
		metrics,
		logger.Recovery(log),
		middleware.CORS(cfg.CORS),
		middleware.Secure(),
		middleware.BodyLimit(cfg.MaxBodySize),
	)
	return engine, nil
}

// Handlers groups the API handlers mounted by RegisterAPI
type Handlers struct {
	Inventory   *handler.InventoryHandler
	Marketplace *handler.MarketplaceHandler
	Analytics   *handler.AnalyticsHandler
	Scheduler   *handler.SchedulerHandler
	Health      *handler.HealthHandler
}

// RegisterAPI mounts the health check and the v1 API on engine
func RegisterAPI(engine *gin.Engine, h Handlers) {
	engine.GET(HealthPath, h.Health.Check)

	inventory := NewDomainGroup("inventory", "/inventory")
	inventory.PUT("/:item_id/stock", h.Inventory.UpdateStock).
		GET("/:item_id/stock", h.Inventory.GetStock)

	listings := NewDomainGroup("listings", "/listings")
	listings.POST("/sync", h.Inventory.SyncListing)

	marketplaces := NewDomainGroup("marketplaces", "/marketplaces")
	marketplaces.GET("", h.Marketplace.ListPlatforms).
		GET("/:channel/status", h.Marketplace.GetPlatformStatus).
		GET("/:channel/market-data/:item_id", h.Marketplace.GetMarketData).
		GET("/:channel/price-history/:item_id", h.Marketplace.GetPriceHistory)

	analytics := NewDomainGroup("analytics", "/analytics")
	analytics.Group("items", "/items").
		GET("/:item_id/price-trend", h.Analytics.GetPriceTrend).
		GET("/:item_id/competitive-pricing", h.Analytics.GetCompetitivePricing)
	analytics.GET("/categories/:category/seasonal-demand", h.Analytics.GetSeasonalDemand).
		GET("/listings/:listing_id/metrics", h.Analytics.GetListingMetrics).
		POST("/market-research/run", h.Analytics.RunMarketResearch).
		POST("/snapshots/run", h.Analytics.RunSnapshot).
		GET("/snapshots/latest", h.Analytics.GetLatestSnapshot).
		GET("/jobs", h.Scheduler.GetStatus).
		POST("/jobs/:name/run", h.Scheduler.RunJob)

	NewRouter(engine, WithAPIVersion("v1")).
		Register(inventory).
		Register(listings).
		Register(marketplaces).
		Register(analytics).
		Setup()
}
