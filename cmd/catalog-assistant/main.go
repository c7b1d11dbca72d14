package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"catalog-assistant/internal/api"
	"catalog-assistant/internal/api/handlers"
	"catalog-assistant/internal/repository"
	"catalog-assistant/internal/service"
	"catalog-assistant/pkg/config"
	"catalog-assistant/pkg/logger"
	"catalog-assistant/pkg/shopify"

	"go.uber.org/zap"
)

// @title Catalog Assistant API
// @version 1.0
// @description Storefront shopping assistant: trains a knowledge base from the product catalog and answers shopper questions from it.

// @contact.name API Support
// @contact.email support@feelori.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5001
// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting catalog assistant")

	// Knowledge base store
	state := repository.NewKnowledgeState()
	knowledgeRepo := repository.NewKnowledgeRepository(cfg.KnowledgeBase.FilePath(), state, logger.Named("knowledge_repository"))
	if kb := knowledgeRepo.Current(context.Background()); kb.IsTrained() {
		appLogger.Info("Loaded knowledge base",
			zap.Int("products", kb.ProductCatalog.Len()),
			zap.Time("created_at", kb.CreatedAt),
		)
	} else {
		appLogger.Warn("No knowledge base found, training is required", zap.String("path", knowledgeRepo.Path()))
	}

	// Storefront
	shopifyClient := shopify.NewClient(&cfg.Shopify, logger.Named("shopify"))
	if !cfg.Shopify.Configured() {
		appLogger.Warn("Shopify credentials are not set, storefront training is disabled")
	}

	// Initialize services
	builder := service.NewKnowledgeBaseBuilder(logger.Named("kb_builder"))
	trainingService := service.NewTrainingService(shopifyClient, builder, knowledgeRepo, logger.Named("training"))
	chatService := service.NewChatService(service.NewQueryEngine(), knowledgeRepo, logger.Named("chat"))
	catalogService := service.NewCatalogService(knowledgeRepo, logger.Named("catalog"))
	recService := service.NewRecommendationService(knowledgeRepo, logger.Named("recommendations"))

	// Initialize handlers
	h := api.Handlers{
		Health:     handlers.NewHealthHandler(trainingService),
		Chat:       handlers.NewChatHandler(chatService, appLogger),
		Training:   handlers.NewTrainingHandler(trainingService, appLogger),
		Storefront: handlers.NewStorefrontHandler(shopifyClient, appLogger),
		Catalog:    handlers.NewCatalogHandler(catalogService, recService, appLogger),
	}

	// Setup router
	app := api.SetupRouter(h, &cfg.Server, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
