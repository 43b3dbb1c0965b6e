package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/sekolah-api/internal/middleware"
	"github.com/yourusername/sekolah-api/internal/service"
)

// DashboardHandler serves the per-role dashboards
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Show returns the dashboard of the logged-in user
// GET /SuperAdmin, /guru, /siswa, /staf
func (h *DashboardHandler) Show(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	summary, err := h.dashboardService.Summary(c.Request.Context(), user)
	if err != nil {
		handleError(c, "DashboardHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":        user,
		"route":       c.GetString(middleware.ContextRoute),
		"isWaliKelas": c.GetBool(middleware.ContextIsWaliKelas),
		"departement": c.GetString(middleware.ContextDepartement),
		"dashboard":   summary,
	})
}
