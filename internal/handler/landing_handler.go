package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/milkroute/storefront_api/internal/config"
	"github.com/milkroute/storefront_api/internal/models"
	"github.com/milkroute/storefront_api/internal/service"
	"github.com/milkroute/storefront_api/internal/utils"
)

// LandingHandler serves the anonymous landing surface.
type LandingHandler struct {
	landingService *service.LandingService
	cfg            *config.Config
}

func NewLandingHandler(landingService *service.LandingService, cfg *config.Config) *LandingHandler {
	return &LandingHandler{landingService: landingService, cfg: cfg}
}

// Featured handles GET /landing/featured. A failed catalog read serves the
// static fixtures instead of an error.
func (h *LandingHandler) Featured(c *gin.Context) {
	products := h.landingService.Featured(c.Request.Context())
	utils.Success(c, 200, "Featured products retrieved", gin.H{"products": products})
}

type intentRequest struct {
	Items []models.IntentItem `json:"items" binding:"required"`
}

// SaveIntent handles POST /landing/intent. The snapshot is keyed by an
// anonymous visitor cookie and picked up again after authentication.
func (h *LandingHandler) SaveIntent(c *gin.Context) {
	var req intentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "items are required")
		return
	}

	visitorID, err := c.Cookie(visitorCookieName)
	if err != nil || visitorID == "" {
		visitorID = uuid.New().String()
		c.SetCookie(visitorCookieName, visitorID, int(h.cfg.Session.StateTTL.Seconds()), "/", "", h.cfg.Env == "production", true)
	}

	if err := h.landingService.SaveVisitorIntent(c.Request.Context(), visitorID, req.Items); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to store checkout intent")
		return
	}
	utils.Success(c, 201, "Checkout intent stored", nil)
}
