package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/milkroute/storefront_api/internal/utils"
	"github.com/milkroute/storefront_api/pkg/dairyapi"
)

// writeBackendError maps an upstream failure onto the response envelope. A
// typed backend rejection keeps its status and message; anything else is a
// bad gateway.
func writeBackendError(c *gin.Context, err error) {
	if apiErr, ok := dairyapi.AsAPIError(err); ok {
		if apiErr.IsSubscriptionOnlyRejection() {
			utils.ErrorWithDetails(c, apiErr.StatusCode, "SUBSCRIPTION_ONLY_ITEMS", apiErr.Error(), gin.H{
				"subscription_only_items": apiErr.SubscriptionOnlyItems,
				"redirect":                "/user/dashboard?panel=subscriptions",
			})
			return
		}
		utils.Error(c, apiErr.StatusCode, "BACKEND_REJECTED", apiErr.Error())
		return
	}
	utils.Error(c, 502, "BACKEND_UNAVAILABLE", "Upstream service unavailable")
}
