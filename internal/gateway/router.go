package gateway

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tesseract-nexus/storefront-client/internal/config"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Proxied backend services
	api := router.Group("/api")
	if cfg.Gateway.APIKeyHash != "" {
		api.Use(APIKeyAuth(cfg.Gateway.APIKeyHash, logger))
	}
	for name, serviceURL := range cfg.Gateway.Services {
		group := api.Group("/" + name)
		proxy := HandleProxy(serviceURL, logger)
		group.GET("/*path", proxy)
		group.POST("/*path", proxy)
		group.PUT("/*path", proxy)
		group.PATCH("/*path", proxy)
		group.DELETE("/*path", HandleProxyDelete(serviceURL, logger))
	}

	return router
}
