package notification

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"payment-preconfirm/internal/api/rest"
	"payment-preconfirm/internal/logger"
	"payment-preconfirm/internal/services"
)

type cacheCleaner interface {
	ClearPreconfirmData(ctx context.Context) error
}

// SetupRoutes настраивает маршруты для notification service
func SetupRoutes(router *gin.Engine, notificationService services.NotificationService, redisClient cacheCleaner) {
	rest.SetupDecisionStatsEndpoint(router, notificationService)

	router.DELETE("/api/v1/stats/decisions", func(c *gin.Context) {
		if err := redisClient.ClearPreconfirmData(c.Request.Context()); err != nil {
			log.Printf("Warning: Failed to clear Redis data: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear decision stats"})
			return
		}

		logger.Clear()

		c.JSON(http.StatusOK, gin.H{
			"message":     "Decision stats and cache cleared successfully",
			"clear_cache": true,
		})
	})

	// Используем общие endpoints (health, metrics, events, stats)
	rest.SetupCommonEndpoints(router)
}
