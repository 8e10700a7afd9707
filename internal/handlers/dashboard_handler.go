package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whisperrid/backend/internal/services/dashboard"
)

// DashboardHandler serves the dashboard overview
type DashboardHandler struct {
	dashboardService *dashboard.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *dashboard.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard returns stats, chart data, the regional alert and recent cases
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboardService.Overview())
}
