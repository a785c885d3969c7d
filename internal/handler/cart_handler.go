package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/milkroute/storefront_api/internal/middleware"
	"github.com/milkroute/storefront_api/internal/notify"
	"github.com/milkroute/storefront_api/internal/service"
	"github.com/milkroute/storefront_api/internal/utils"
	"github.com/milkroute/storefront_api/pkg/dairyapi"
)

// CartHandler handles the one-time cart and its checkout.
type CartHandler struct {
	checkoutService *service.CheckoutService
	notices         *notify.Center
}

func NewCartHandler(checkoutService *service.CheckoutService, notices *notify.Center) *CartHandler {
	return &CartHandler{checkoutService: checkoutService, notices: notices}
}

// List handles GET /user/cart
func (h *CartHandler) List(c *gin.Context) {
	rec := middleware.CurrentSession(c)
	utils.Success(c, 200, "Cart retrieved", gin.H{"cart": h.checkoutService.Lines(rec.SID)})
}

type addLineRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity"`
}

// AddLine handles POST /user/cart/items
func (h *CartHandler) AddLine(c *gin.Context) {
	var req addLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "product_id is required")
		return
	}
	rec := middleware.CurrentSession(c)
	lines, err := h.checkoutService.Add(c.Request.Context(), rec, req.ProductID, req.Quantity)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	utils.Success(c, 200, "Cart updated", gin.H{"cart": lines})
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetQuantity handles PUT /user/cart/items/:key. Zero or below removes the
// line.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	rec := middleware.CurrentSession(c)
	lines := h.checkoutService.SetQuantity(rec.SID, c.Param("key"), req.Quantity)
	utils.Success(c, 200, "Cart updated", gin.H{"cart": lines})
}

// RemoveLine handles DELETE /user/cart/items/:key
func (h *CartHandler) RemoveLine(c *gin.Context) {
	rec := middleware.CurrentSession(c)
	lines := h.checkoutService.Remove(rec.SID, c.Param("key"))
	utils.Success(c, 200, "Cart updated", gin.H{"cart": lines})
}

// Clear handles DELETE /user/cart
func (h *CartHandler) Clear(c *gin.Context) {
	rec := middleware.CurrentSession(c)
	h.checkoutService.Clear(rec.SID)
	utils.Success(c, 200, "Cart cleared", gin.H{"cart": []any{}})
}

// Checkout handles POST /user/cart/checkout
func (h *CartHandler) Checkout(c *gin.Context) {
	var details dairyapi.PaymentDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	rec := middleware.CurrentSession(c)
	receipt, err := h.checkoutService.Checkout(c.Request.Context(), rec, &details)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrEmptyCart):
			utils.Error(c, 400, "EMPTY_CART", "Cart is empty")
		case errors.Is(err, utils.ErrUnavailableItems):
			utils.Error(c, 400, "UNAVAILABLE_ITEMS", "Remove unavailable items before checking out")
		case errors.Is(err, utils.ErrSubscriptionOnly):
			h.notices.Post(rec.SID, "warning", "Some items need an active subscription")
			utils.ErrorWithDetails(c, 409, "SUBSCRIPTION_ONLY_ITEMS", "Some items need an active subscription", gin.H{
				"redirect": "/user/dashboard?panel=subscriptions",
			})
		case errors.Is(err, utils.ErrInvalidPayment):
			utils.Error(c, 400, "INVALID_PAYMENT_DETAILS", err.Error())
		default:
			writeBackendError(c, err)
		}
		return
	}

	h.notices.Post(rec.SID, "success", "Order placed")
	utils.Success(c, 200, "Checkout completed", gin.H{"receipt": receipt})
}

// Notices handles GET /user/notices
func (h *CartHandler) Notices(c *gin.Context) {
	rec := middleware.CurrentSession(c)
	utils.Success(c, 200, "Notices retrieved", gin.H{"notices": h.notices.List(rec.SID)})
}

// DismissNotice handles DELETE /user/notices/:id
func (h *CartHandler) DismissNotice(c *gin.Context) {
	rec := middleware.CurrentSession(c)
	h.notices.Dismiss(rec.SID, c.Param("id"))
	utils.Success(c, 200, "Notice dismissed", nil)
}
