package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/affordablebilliards/billiards_api/internal/service"
	"github.com/affordablebilliards/billiards_api/internal/utils"
)

// DashboardHandler serves the back-office summary.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// GetStats handles GET /api/admin/dashboard
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load dashboard")
		return
	}
	utils.Success(c, 200, "Dashboard retrieved", stats)
}
