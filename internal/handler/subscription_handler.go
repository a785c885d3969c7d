package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/milkroute/storefront_api/internal/middleware"
	"github.com/milkroute/storefront_api/internal/notify"
	"github.com/milkroute/storefront_api/internal/service"
	"github.com/milkroute/storefront_api/internal/utils"
	"github.com/milkroute/storefront_api/pkg/dairyapi"
)

// SubscriptionHandler handles plan activation, deactivation and the
// recurring-delivery basket.
type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
	notices             *notify.Center
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService, notices *notify.Center) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService, notices: notices}
}

type subscribeRequest struct {
	SubscriptionID int `json:"subscription_id" binding:"required"`
	dairyapi.PaymentDetails
}

// Subscribe handles POST /user/subscribe
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "subscription_id is required")
		return
	}

	rec := middleware.CurrentSession(c)
	receipt, err := h.subscriptionService.Subscribe(c.Request.Context(), rec, req.SubscriptionID, &req.PaymentDetails)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidPayment) {
			utils.Error(c, 400, "INVALID_PAYMENT_DETAILS", err.Error())
			return
		}
		writeBackendError(c, err)
		return
	}

	h.notices.Post(rec.SID, "success", "Subscription activated")
	utils.Success(c, 200, "Subscription activated", gin.H{"receipt": receipt})
}

// RequestDeactivation handles POST /user/subscription/deactivate. Nothing
// changes upstream until the confirm call arrives with the issued token.
func (h *SubscriptionHandler) RequestDeactivation(c *gin.Context) {
	rec := middleware.CurrentSession(c)
	token, err := h.subscriptionService.RequestDeactivation(c.Request.Context(), rec)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to start deactivation")
		return
	}
	utils.Success(c, 200, "Confirm to deactivate", gin.H{"confirm_token": token})
}

type confirmDeactivationRequest struct {
	ConfirmToken string `json:"confirm_token" binding:"required"`
}

// ConfirmDeactivation handles POST /user/subscription/deactivate/confirm
func (h *SubscriptionHandler) ConfirmDeactivation(c *gin.Context) {
	var req confirmDeactivationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "confirm_token is required")
		return
	}

	rec := middleware.CurrentSession(c)
	resp, err := h.subscriptionService.ConfirmDeactivation(c.Request.Context(), rec, req.ConfirmToken)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidConfirmToken) {
			utils.Error(c, 409, "INVALID_CONFIRM_TOKEN", "Deactivation was not confirmed in time")
			return
		}
		writeBackendError(c, err)
		return
	}

	h.notices.Post(rec.SID, "info", "Subscription deactivated")
	utils.Success(c, 200, "Subscription deactivated", resp)
}

// Basket handles GET /user/basket
func (h *SubscriptionHandler) Basket(c *gin.Context) {
	rec := middleware.CurrentSession(c)
	items, err := h.subscriptionService.Basket(c.Request.Context(), rec)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	utils.Success(c, 200, "Basket retrieved", gin.H{"basket": items})
}

type basketUpsertRequest struct {
	ProductID int    `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Frequency string `json:"frequency"`
}

// UpsertBasketItem handles POST /user/basket
func (h *SubscriptionHandler) UpsertBasketItem(c *gin.Context) {
	var req basketUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "product_id and quantity are required")
		return
	}

	rec := middleware.CurrentSession(c)
	items, err := h.subscriptionService.UpsertBasketItem(c.Request.Context(), rec, req.ProductID, req.Quantity, req.Frequency)
	if err != nil {
		if errors.Is(err, utils.ErrNoActivePlan) {
			utils.Error(c, 409, "NO_ACTIVE_PLAN", "An active subscription is required to build a basket")
			return
		}
		writeBackendError(c, err)
		return
	}
	utils.Success(c, 200, "Basket updated", gin.H{"basket": items})
}

// DeleteBasketItem handles DELETE /user/basket/:product_id
func (h *SubscriptionHandler) DeleteBasketItem(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil || productID <= 0 {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return
	}

	rec := middleware.CurrentSession(c)
	items, err := h.subscriptionService.DeleteBasketItem(c.Request.Context(), rec, productID)
	if err != nil {
		writeBackendError(c, err)
		return
	}
	utils.Success(c, 200, "Basket updated", gin.H{"basket": items})
}
