package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/milkroute/storefront_api/internal/middleware"
	"github.com/milkroute/storefront_api/internal/service"
	"github.com/milkroute/storefront_api/internal/utils"
)

// DashboardHandler serves the derived customer dashboard.
type DashboardHandler struct {
	dashboardService   *service.DashboardService
	clientStateService *service.ClientStateService
}

func NewDashboardHandler(dashboardService *service.DashboardService, clientStateService *service.ClientStateService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, clientStateService: clientStateService}
}

// View handles GET /user/dashboard. The stored active-panel marker, when
// present, rides along once and is then gone.
func (h *DashboardHandler) View(c *gin.Context) {
	rec := middleware.CurrentSession(c)
	view, err := h.dashboardService.View(c.Request.Context(), rec)
	if err != nil {
		writeBackendError(c, err)
		return
	}

	panel, err := h.clientStateService.TakeActivePanel(c.Request.Context(), rec.User.ID)
	if err != nil {
		panel = ""
	}

	utils.Success(c, 200, "Dashboard retrieved", gin.H{
		"dashboard":    view,
		"active_panel": panel,
	})
}
