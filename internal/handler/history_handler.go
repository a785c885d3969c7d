package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/milkroute/storefront_api/internal/middleware"
	"github.com/milkroute/storefront_api/internal/service"
	"github.com/milkroute/storefront_api/internal/utils"
)

// HistoryHandler serves the read-only history pages.
type HistoryHandler struct {
	historyService *service.HistoryService
}

func NewHistoryHandler(historyService *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// Payments handles GET /user/payments
func (h *HistoryHandler) Payments(c *gin.Context) {
	rec := middleware.CurrentSession(c)
	payments, err := h.historyService.Payments(c.Request.Context(), rec)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	utils.Success(c, 200, "Payments retrieved", gin.H{"payments": payments})
}

// Orders handles GET /user/orders
func (h *HistoryHandler) Orders(c *gin.Context) {
	rec := middleware.CurrentSession(c)
	orders, err := h.historyService.Orders(c.Request.Context(), rec)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	utils.Success(c, 200, "Orders retrieved", gin.H{"orders": orders})
}

// Deliveries handles GET /user/deliveries?days=
func (h *HistoryHandler) Deliveries(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	rec := middleware.CurrentSession(c)
	deliveries, err := h.historyService.Deliveries(c.Request.Context(), rec, days)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	utils.Success(c, 200, "Deliveries retrieved", gin.H{"deliveries": deliveries})
}

// Notifications handles GET /user/notifications
func (h *HistoryHandler) Notifications(c *gin.Context) {
	rec := middleware.CurrentSession(c)
	feed, err := h.historyService.Notifications(c.Request.Context(), rec)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	utils.Success(c, 200, "Notifications retrieved", gin.H{"notifications": feed})
}

// ReorderSuggestions handles GET /user/reorders
func (h *HistoryHandler) ReorderSuggestions(c *gin.Context) {
	rec := middleware.CurrentSession(c)
	suggestions, err := h.historyService.ReorderSuggestions(c.Request.Context(), rec)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	utils.Success(c, 200, "Reorder suggestions retrieved", gin.H{"suggestions": suggestions})
}
