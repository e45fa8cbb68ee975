package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/surya-platform/service-storefront/internal/models"
	"github.com/surya-platform/service-storefront/internal/observability"
	"github.com/surya-platform/service-storefront/internal/services"
)

// StatsProvider computes dashboard snapshots.
type StatsProvider interface {
	GetDashboardStats(ctx context.Context, now time.Time) (*models.DashboardSnapshot, error)
}

// DashboardHandler serves the admin dashboard statistics endpoint.
type DashboardHandler struct {
	service StatsProvider
	cache   *services.DashboardCacheService
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler. Cache and metrics may
// be nil; the handler then always computes fresh snapshots.
func NewDashboardHandler(
	service StatsProvider,
	cache *services.DashboardCacheService,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

// GetStats returns the full dashboard snapshot as JSON.
// @Summary Get dashboard statistics
// @Tags Dashboard
// @Param refresh query bool false "Force refresh (bypass cache)"
// @Success 200 {object} models.DashboardSnapshot
// @Router /admin/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	forceRefresh := c.Query("refresh") == "true"

	if h.cache != nil && !forceRefresh {
		if snapshot, _ := h.cache.Get(c.Request.Context()); snapshot != nil {
			if h.metrics != nil {
				h.metrics.CacheHitsTotal.Inc()
			}
			c.JSON(http.StatusOK, snapshot)
			return
		}
		if h.metrics != nil {
			h.metrics.CacheMissesTotal.Inc()
		}
	}

	start := time.Now()
	snapshot, err := h.service.GetDashboardStats(c.Request.Context(), time.Now())
	if h.metrics != nil {
		h.metrics.ObserveCompute(time.Since(start), err)
	}
	if err != nil {
		h.logger.Error("failed to compute dashboard stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to load dashboard data",
			"error":   err.Error(),
		})
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(c.Request.Context(), snapshot); err != nil {
			h.logger.Warn("failed to cache dashboard snapshot", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, snapshot)
}
