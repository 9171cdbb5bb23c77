package handlers

import (
	"net/http"

	"pos_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// DashboardHandler holds the dashboard service.
type DashboardHandler struct {
	dashboardService services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(ds services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: ds}
}

// GetDashboardStats handles the POS landing-page summary.
func (h *DashboardHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.dashboardService.GetDashboardStats()
	if err != nil {
		respondServiceError(c, err, "Failed to fetch dashboard stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetInventoryStats handles the cross-company inventory summary.
func (h *DashboardHandler) GetInventoryStats(c *gin.Context) {
	stats, err := h.dashboardService.GetInventoryStats()
	if err != nil {
		respondServiceError(c, err, "Failed to fetch inventory stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
