package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"payment-preconfirm/internal/logger"
	"payment-preconfirm/internal/models"
)

// CORSMiddleware возвращает middleware для обработки CORS
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// SetupCommonEndpoints добавляет общие endpoints (health, metrics, events, stats) к роутеру
func SetupCommonEndpoints(router *gin.Engine) {
	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Prometheus
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Events endpoint
	router.GET("/api/v1/events", func(c *gin.Context) {
		limit := 100
		if limitStr := c.Query("limit"); limitStr != "" {
			if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 500 {
				limit = parsed
			}
		}
		events := logger.GetEvents(limit)
		c.JSON(http.StatusOK, gin.H{"events": events})
	})

	// Stats endpoint
	router.GET("/api/v1/stats", func(c *gin.Context) {
		stats := logger.GetStats()
		c.JSON(http.StatusOK, stats)
	})
}

// StatsProvider источник агрегированных счетчиков решений и эскалаций
type StatsProvider interface {
	GetStats(ctx context.Context) (*models.DecisionStats, error)
	IsUserEscalated(ctx context.Context, userID string) (bool, error)
}

// SetupDecisionStatsEndpoint добавляет endpoint счетчиков решений сервиса уведомлений
func SetupDecisionStatsEndpoint(router *gin.Engine, provider StatsProvider) {
	router.GET("/api/v1/stats/decisions", func(c *gin.Context) {
		stats, err := provider.GetStats(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	router.GET("/api/v1/escalations/:user_id", func(c *gin.Context) {
		userID := c.Param("user_id")
		escalated, err := provider.IsUserEscalated(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "escalated": escalated})
	})
}

// registerRoutes регистрирует маршруты предварительной проверки
func registerRoutes(router *gin.Engine, handlers *Handlers) {
	api := router.Group("/api/v1/risk/preconfirm")
	{
		api.POST("/decision", handlers.Decide)
		api.GET("/checks", handlers.ListChecks)
		api.GET("/checks/:payment_id", handlers.GetCheck)
		api.DELETE("/checks", handlers.ClearChecks)
		api.GET("/decisions/:payment_id/cached", handlers.GetCachedDecision)
		api.GET("/forms/:form_id", handlers.GetForm)
		api.POST("/approvals/:payment_id", handlers.CreateApproval)
		api.GET("/approvals/:payment_id", handlers.ListApprovals)
		api.POST("/approvals/:payment_id/:approval_id/resolve", handlers.ResolveApproval)
		api.POST("/documents/:payment_id", handlers.UploadDocument)
		api.GET("/documents/:payment_id", handlers.ListDocuments)
		api.GET("/generate", handlers.GenerateRequest)
	}
}

// SetupRouter настраивает маршруты REST API
func SetupRouter(handlers *Handlers) *gin.Engine {
	router := gin.New()

	// CORS middleware
	router.Use(CORSMiddleware())

	router.Use(gin.Logger(), gin.Recovery())

	// Лимит multipart в памяти, остальное уходит во временные файлы
	router.MaxMultipartMemory = handlers.maxUploadBytes

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	registerRoutes(router, handlers)

	// Общие endpoints (health, metrics, events, stats)
	SetupCommonEndpoints(router)

	return router
}
