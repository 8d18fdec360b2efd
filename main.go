package main

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"clinic-portal-server/internal/config"
	"clinic-portal-server/internal/models"
	"clinic-portal-server/internal/routes"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	// Load environment variables; a missing .env is fine in production
	if err := godotenv.Load(); err != nil {
		logger.Info(".env file not loaded", zap.Error(err))
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("error loading config", zap.Error(err))
	}

	// Initialize database connection
	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		logger.Fatal("error connecting to database", zap.Error(err))
	}

	// Initialize Gin router
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Set up routes - passing DB and config to let routes.go create the handlers
	routes.SetupRoutes(router, db, cfg, logger)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := router.Run(serverAddr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
