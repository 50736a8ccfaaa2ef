package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stockmesh/backend/internal/domain/integration"
	"github.com/stockmesh/backend/internal/infrastructure/logger"
	"github.com/stockmesh/backend/internal/interfaces/http/dto"
	"github.com/stockmesh/backend/internal/interfaces/http/middleware"
)

// Pinger checks connectivity to a backing store
type Pinger interface {
	Ping(ctx context.Context) error
}

// ChannelLister lists the registered channel codes
type ChannelLister interface {
	Codes() []integration.ChannelCode
}

// HealthHandler answers liveness checks
type HealthHandler struct {
	BaseHandler
	db       Pinger
	channels ChannelLister
	now      func() time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db Pinger, channels ChannelLister) *HealthHandler {
	return &HealthHandler{db: db, channels: channels, now: time.Now}
}

// Check godoc
// @ID           getHealth
// @Summary      Check service health
// @Description  Reports database reachability and the number of registered channels.
// @Description  Served at the server root, outside /api/v1.
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=dto.HealthResponse}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	resp := dto.HealthResponse{
		Status:   "healthy",
		Database: "ok",
		Time:     h.now().UTC(),
	}
	if h.channels != nil {
		resp.Channels = len(h.channels.Codes())
	}

	if err := h.db.Ping(c.Request.Context()); err != nil {
		logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
		resp.Status = "unhealthy"
		resp.Database = "error"
		c.JSON(http.StatusServiceUnavailable, dto.Response{
			Success: false,
			Data:    resp,
			Error: &dto.ErrorInfo{
				Code:      dto.ErrCodeUnavailable,
				Message:   "database unreachable",
				RequestID: middleware.GetRequestID(c),
			},
		})
		return
	}

	h.Success(c, resp)
}
