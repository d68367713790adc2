package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"assetdb/internal/config"
	"assetdb/internal/database"
	"assetdb/internal/handlers"
	"assetdb/internal/logger"
	"assetdb/internal/middleware"
	"assetdb/internal/services"
	"assetdb/internal/validator"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	assetService := services.NewAssetService(db)
	detailService := services.NewDetailService(db)
	barService := services.NewBarService(db)

	// Initialize handlers
	assetHandler := handlers.NewAssetHandler(assetService)
	detailHandler := handlers.NewDetailHandler(detailService)
	barHandler := handlers.NewBarHandler(barService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Asset routes
	assets := v1.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.GetAssets)
	assets.PUT("/:id", assetHandler.EditAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)

	// Detail routes
	details := v1.Group("/details")
	details.POST("/:type", detailHandler.AddDetails)
	details.GET("/:type", detailHandler.GetDetails)
	details.POST("/:type/query", detailHandler.QueryDetails)
	details.PUT("/:type/:assetId", detailHandler.EditDetails)

	// Bar routes
	bars := v1.Group("/bars")
	bars.POST("/query", barHandler.QueryBars)
	bars.POST("/:type", barHandler.AddBars)
	bars.PUT("/:type/:assetId", barHandler.EditBar)

	log.Infof("Starting asset database server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
