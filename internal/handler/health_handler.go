package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/milkroute/storefront_api/internal/cache"
	"github.com/milkroute/storefront_api/internal/utils"
)

// HealthHandler reports service liveness and redis reachability.
type HealthHandler struct {
	redis *cache.RedisClient
}

func NewHealthHandler(redis *cache.RedisClient) *HealthHandler {
	return &HealthHandler{redis: redis}
}

// GetHealth handles GET /health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	redisStatus := "up"
	if _, err := h.redis.Exists(c.Request.Context(), "health:probe"); err != nil {
		redisStatus = "down"
	}
	utils.Success(c, 200, "OK", gin.H{
		"status": "up",
		"redis":  redisStatus,
	})
}
