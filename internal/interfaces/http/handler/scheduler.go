package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stockmesh/backend/internal/infrastructure/scheduler"
	"github.com/stockmesh/backend/internal/interfaces/http/dto"
)

// JobRunner lists and triggers the scheduled analytics jobs
type JobRunner interface {
	Entries() []scheduler.EntryInfo
	IsRunning() bool
	RunNow(ctx context.Context, name string) error
}

// SchedulerStatusResponse reports the scheduler state and its jobs
// @Description Scheduler state and registered jobs
type SchedulerStatusResponse struct {
	Running bool                  `json:"running"`
	Jobs    []scheduler.EntryInfo `json:"jobs"`
}

// JobRunResponse reports a manually triggered job run
// @Description Result of a manually triggered job run
type JobRunResponse struct {
	Job      string `json:"job" example:"daily_snapshot"`
	Duration string `json:"duration" example:"1.204s"`
}

// SchedulerHandler exposes the analytics job scheduler
type SchedulerHandler struct {
	BaseHandler
	runner JobRunner
}

// NewSchedulerHandler creates a new SchedulerHandler
func NewSchedulerHandler(runner JobRunner) *SchedulerHandler {
	return &SchedulerHandler{runner: runner}
}

// GetStatus godoc
// @ID           getSchedulerStatus
// @Summary      Get scheduler status
// @Description  Reports whether the scheduler is firing jobs and when each job runs next
// @Tags         scheduler
// @Produce      json
// @Success      200 {object} dto.Response{data=SchedulerStatusResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /analytics/jobs [get]
func (h *SchedulerHandler) GetStatus(c *gin.Context) {
	h.Success(c, SchedulerStatusResponse{
		Running: h.runner.IsRunning(),
		Jobs:    h.runner.Entries(),
	})
}

// RunJob godoc
// @ID           runSchedulerJob
// @Summary      Run a scheduled job now
// @Description  Runs a registered job synchronously, outside its schedule
// @Tags         scheduler
// @Produce      json
// @Param        name path string true "Job name" Enums(market_research, daily_snapshot)
// @Success      200 {object} dto.Response{data=JobRunResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /analytics/jobs/{name}/run [post]
func (h *SchedulerHandler) RunJob(c *gin.Context) {
	name := c.Param("name")
	start := time.Now()

	err := h.runner.RunNow(c.Request.Context(), name)
	switch {
	case errors.Is(err, scheduler.ErrJobNotFound):
		h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, err.Error())
		return
	case err != nil:
		h.HandleError(c, err)
		return
	}

	h.Success(c, JobRunResponse{
		Job:      name,
		Duration: time.Since(start).Round(time.Millisecond).String(),
	})
}
