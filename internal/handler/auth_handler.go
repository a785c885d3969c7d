package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/milkroute/storefront_api/internal/config"
	"github.com/milkroute/storefront_api/internal/middleware"
	"github.com/milkroute/storefront_api/internal/service"
	"github.com/milkroute/storefront_api/internal/utils"
	"github.com/milkroute/storefront_api/pkg/dairyapi"
)

const visitorCookieName = "mm_visitor"

// AuthHandler handles the auth surface: signup, login, identity bootstrap
// and logout.
type AuthHandler struct {
	authService    *service.AuthService
	landingService *service.LandingService
	cfg            *config.Config
	limiter        *middleware.InvalidAuthRateLimiter
}

func NewAuthHandler(authService *service.AuthService, landingService *service.LandingService, cfg *config.Config, limiter *middleware.InvalidAuthRateLimiter) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		landingService: landingService,
		cfg:            cfg,
		limiter:        limiter,
	}
}

type loginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Identifier and password are required")
		return
	}

	user, sid, err := h.authService.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		// The limiter counts failed attempts only; successful logins never
		// consume the budget.
		if !h.limiter.Allow(c.ClientIP()) {
			utils.Error(c, 429, "TOO_MANY_ATTEMPTS", "Too many failed attempts, try again later")
			return
		}
		writeBackendError(c, err)
		return
	}

	if !h.establishSession(c, sid, user.Role, user.ID) {
		return
	}
	utils.Success(c, 200, "Login successful", gin.H{"user": user})
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dairyapi.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if req.Role == "" {
		req.Role = "user"
	}

	user, sid, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		writeBackendError(c, err)
		return
	}

	if !h.establishSession(c, sid, user.Role, user.ID) {
		return
	}
	utils.Success(c, 201, "Account created", gin.H{"user": user})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	rec := middleware.CurrentSession(c)
	if rec == nil {
		utils.Success(c, 200, "Anonymous", gin.H{"user": nil})
		return
	}
	utils.Success(c, 200, "Authenticated", gin.H{"user": rec.User})
}

// Logout handles POST /auth/logout. The local session always clears, even
// when the backend revoke fails.
func (h *AuthHandler) Logout(c *gin.Context) {
	rec := middleware.CurrentSession(c)
	if rec != nil {
		h.authService.Logout(c.Request.Context(), rec)
	}
	h.clearSessionCookie(c)
	utils.Success(c, 200, "Logged out", nil)
}

func (h *AuthHandler) establishSession(c *gin.Context, sid, role string, userID int) bool {
	token, err := utils.GenerateSessionToken(h.cfg.JWTSecret, sid, role, h.cfg.Session.TTL)
	if err != nil {
		log.Error().Err(err).Msg("Failed to sign session token")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to establish session")
		return false
	}

	// Pending landing intent, if any, follows the visitor into the account.
	if visitorID, cookieErr := c.Cookie(visitorCookieName); cookieErr == nil && visitorID != "" {
		h.landingService.AdoptIntent(c.Request.Context(), visitorID, userID)
		c.SetCookie(visitorCookieName, "", -1, "/", "", h.secureCookies(), true)
	}

	c.SetCookie(h.cfg.Session.CookieName, token, int(h.cfg.Session.TTL.Seconds()), "/", "", h.secureCookies(), true)
	return true
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(h.cfg.Session.CookieName, "", -1, "/", "", h.secureCookies(), true)
}

func (h *AuthHandler) secureCookies() bool {
	return h.cfg.Env == "production"
}
