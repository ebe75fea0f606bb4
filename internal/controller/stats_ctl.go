package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"store_rating_v1/internal/api/dto"
	"store_rating_v1/internal/service"
)

// StatsController platform statistics
type StatsController struct {
	statsService *service.StatsService
}

// NewStatsController creates the stats controller
func NewStatsController(statsService *service.StatsService) *StatsController {
	return &StatsController{statsService: statsService}
}

// Get platform counters
// @Summary Platform statistics
// @Tags Stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StatsResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /stats [get]
func (c *StatsController) Get(ctx *gin.Context) {
	stats, err := c.statsService.Get(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// ==================== Health ====================

// Pinger reports database reachability
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthController liveness endpoint
type HealthController struct {
	db Pinger
}

// NewHealthController creates the health controller
func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// Check pings the database. Served at /healthz outside the /api base path, so it is
// left out of the swagger document.
func (c *HealthController) Check(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.db.PingContext(pingCtx); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Code:    http.StatusServiceUnavailable,
			Message: "database unavailable",
		})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "ok"})
}
