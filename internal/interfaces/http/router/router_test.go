package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/stockmesh/backend/internal/interfaces/http/handler"
	"github.com/stockmesh/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("inventory", "/inventory")
	g.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	NewRouter(engine, WithAPIVersion("v1")).Register(g).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/inventory/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouterUse(t *testing.T) {
	engine := gin.New()
	engine.GET("/outside", func(c *gin.Context) { c.Status(http.StatusOK) })
	g := NewDomainGroup("inventory", "/inventory")
	g.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	NewRouter(engine).
		Use(func(c *gin.Context) {
			c.Header("X-API", "1")
			c.Next()
		}).
		Register(g).
		Setup()

	assert.Equal(t, "1", serve(engine, http.MethodGet, "/api/v1/inventory/ping").Header().Get("X-API"))
	assert.Empty(t, serve(engine, http.MethodGet, "/outside").Header().Get("X-API"))
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("marketplaces", "/marketplaces")
		assert.Equal(t, "marketplaces", g.Name())
		assert.Equal(t, "/marketplaces", g.Prefix())
	})

	t.Run("registers each method", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.GET("/a", func(c *gin.Context) { c.String(http.StatusOK, "a") }).
			POST("/b", func(c *gin.Context) { c.String(http.StatusCreated, "b") }).
			PUT("/c/:id", func(c *gin.Context) { c.String(http.StatusOK, c.Param("id")) }).
			Handle(http.MethodDelete, "/d", func(c *gin.Context) { c.Status(http.StatusNoContent) })
		g.RegisterRoutes(engine.Group("/api/v1"))

		tests := []struct {
			method string
			path   string
			status int
		}{
			{http.MethodGet, "/api/v1/test/a", http.StatusOK},
			{http.MethodPost, "/api/v1/test/b", http.StatusCreated},
			{http.MethodPut, "/api/v1/test/c/7", http.StatusOK},
			{http.MethodDelete, "/api/v1/test/d", http.StatusNoContent},
		}
		for _, tt := range tests {
			w := serve(engine, tt.method, tt.path)
			assert.Equal(t, tt.status, w.Code, "%s %s", tt.method, tt.path)
		}
	})

	t.Run("applies group middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.Use(func(c *gin.Context) {
			c.Header("X-Test-Middleware", "applied")
			c.Next()
		})
		g.GET("/items", func(c *gin.Context) { c.Status(http.StatusOK) })
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, http.MethodGet, "/api/v1/test/items")
		assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
	})

	t.Run("nests subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("analytics", "/analytics")
		g.Group("items", "/items").GET("/:item_id/price-trend", func(c *gin.Context) {
			c.String(http.StatusOK, c.Param("item_id"))
		})
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, http.MethodGet, "/api/v1/analytics/items/42/price-trend")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "42", w.Body.String())
	})
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func TestRegisterAPI_Routes(t *testing.T) {
	engine := gin.New()
	RegisterAPI(engine, Handlers{
		Inventory:   handler.NewInventoryHandler(nil),
		Marketplace: handler.NewMarketplaceHandler(nil, nil),
		Analytics:   handler.NewAnalyticsHandler(nil, nil, nil),
		Scheduler:   handler.NewSchedulerHandler(nil),
		Health:      handler.NewHealthHandler(fakePinger{}, nil),
	})

	registered := make(map[string]bool)
	for _, r := range engine.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /health",
		"PUT /api/v1/inventory/:item_id/stock",
		"GET /api/v1/inventory/:item_id/stock",
		"POST /api/v1/listings/sync",
		"GET /api/v1/marketplaces",
		"GET /api/v1/marketplaces/:channel/status",
		"GET /api/v1/marketplaces/:channel/market-data/:item_id",
		"GET /api/v1/marketplaces/:channel/price-history/:item_id",
		"GET /api/v1/analytics/items/:item_id/price-trend",
		"GET /api/v1/analytics/items/:item_id/competitive-pricing",
		"GET /api/v1/analytics/categories/:category/seasonal-demand",
		"GET /api/v1/analytics/listings/:listing_id/metrics",
		"POST /api/v1/analytics/market-research/run",
		"POST /api/v1/analytics/snapshots/run",
		"GET /api/v1/analytics/snapshots/latest",
		"GET /api/v1/analytics/jobs",
		"POST /api/v1/analytics/jobs/:name/run",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

func TestNewEngine(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	engine, err := NewEngine(EngineConfig{
		Tracing:     middleware.TracingConfig{Enabled: false},
		CORS:        middleware.DefaultCORSConfig(),
		MaxBodySize: 1024,
		Meter:       provider.Meter("test"),
	})
	require.NoError(t, err)

	engine.GET(HealthPath, handler.NewHealthHandler(fakePinger{err: errors.New("down")}, nil).Check)
	engine.GET("/boom", func(c *gin.Context) { panic("boom") })

	t.Run("request id and security headers", func(t *testing.T) {
		w := serve(engine, http.MethodGet, HealthPath)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	})

	t.Run("panics become 500", func(t *testing.T) {
		w := serve(engine, http.MethodGet, "/boom")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_INTERNAL")
	})

	t.Run("records request metrics", func(t *testing.T) {
		var rm metricdata.ResourceMetrics
		require.NoError(t, reader.Collect(context.Background(), &rm))

		found := false
		for _, sm := range rm.ScopeMetrics {
			for _, m := range sm.Metrics {
				if m.Name == "http_server_request_total" {
					found = true
				}
			}
		}
		assert.True(t, found)
	})
}

func TestNewEngine_InvalidTrustedProxy(t *testing.T) {
	_, err := NewEngine(EngineConfig{TrustedProxies: []string{"not-an-ip"}})
	assert.Error(t, err)
}
