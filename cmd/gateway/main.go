package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/tesseract-nexus/storefront-client/internal/config"
	"github.com/tesseract-nexus/storefront-client/internal/gateway"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if len(cfg.Gateway.Services) == 0 {
		logger.Warn("No backend services configured, gateway will only serve /health")
	}
	for name, url := range cfg.Gateway.Services {
		logger.Info("Proxying backend service",
			zap.String("service", name),
			zap.String("url", url),
		)
	}

	router := gateway.NewRouter(cfg, logger)

	logger.Info("Starting admin gateway", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
