package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/milkroute/storefront_api/internal/middleware"
	"github.com/milkroute/storefront_api/internal/models"
	"github.com/milkroute/storefront_api/internal/service"
	"github.com/milkroute/storefront_api/internal/utils"
)

// StateHandler handles the durable per-user client state blobs.
type StateHandler struct {
	clientStateService *service.ClientStateService
}

func NewStateHandler(clientStateService *service.ClientStateService) *StateHandler {
	return &StateHandler{clientStateService: clientStateService}
}

type setPanelRequest struct {
	Panel string `json:"panel" binding:"required"`
}

// SetActivePanel handles POST /user/panel
func (h *StateHandler) SetActivePanel(c *gin.Context) {
	var req setPanelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "panel is required")
		return
	}
	rec := middleware.CurrentSession(c)
	if err := h.clientStateService.SetActivePanel(c.Request.Context(), rec.User.ID, req.Panel); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to store panel")
		return
	}
	utils.Success(c, 200, "Panel stored", nil)
}

// Prefs handles GET /user/prefs
func (h *StateHandler) Prefs(c *gin.Context) {
	rec := middleware.CurrentSession(c)
	prefs, err := h.clientStateService.Prefs(c.Request.Context(), rec.User.ID)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load preferences")
		return
	}
	utils.Success(c, 200, "Preferences retrieved", gin.H{"prefs": prefs})
}

// SavePrefs handles POST /user/prefs
func (h *StateHandler) SavePrefs(c *gin.Context) {
	var prefs models.UserPrefs
	if err := c.ShouldBindJSON(&prefs); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	rec := middleware.CurrentSession(c)
	if err := h.clientStateService.SavePrefs(c.Request.Context(), rec.User.ID, prefs); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to save preferences")
		return
	}
	utils.Success(c, 200, "Preferences saved", gin.H{"prefs": prefs})
}

// Favorites handles GET /user/favorites
func (h *StateHandler) Favorites(c *gin.Context) {
	rec := middleware.CurrentSession(c)
	favorites, err := h.clientStateService.Favorites(c.Request.Context(), rec.User.ID)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load favorites")
		return
	}
	utils.Success(c, 200, "Favorites retrieved", gin.H{"favorites": favorites})
}

// ToggleFavorite handles POST /user/favorites/:product_id
func (h *StateHandler) ToggleFavorite(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil || productID <= 0 {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return
	}
	rec := middleware.CurrentSession(c)
	favorites, err := h.clientStateService.ToggleFavorite(c.Request.Context(), rec.User.ID, productID)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update favorites")
		return
	}
	utils.Success(c, 200, "Favorites updated", gin.H{"favorites": favorites})
}

// SupportTickets handles GET /user/support
func (h *StateHandler) SupportTickets(c *gin.Context) {
	rec := middleware.CurrentSession(c)
	tickets, err := h.clientStateService.SupportTickets(c.Request.Context(), rec.User.ID)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load tickets")
		return
	}
	utils.Success(c, 200, "Tickets retrieved", gin.H{"tickets": tickets})
}

type fileTicketRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// FileSupportTicket handles POST /user/support
func (h *StateHandler) FileSupportTicket(c *gin.Context) {
	var req fileTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "subject and message are required")
		return
	}
	rec := middleware.CurrentSession(c)
	tickets, err := h.clientStateService.FileSupportTicket(c.Request.Context(), rec.User.ID, req.Subject, req.Message)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to file ticket")
		return
	}
	utils.Success(c, 201, "Ticket filed", gin.H{"tickets": tickets})
}
