package main

import (
	"fmt"
	"os"

	"github.com/mealtrack/backend-go/internal/api"
	"github.com/mealtrack/backend-go/internal/config"
	"github.com/mealtrack/backend-go/internal/database"
	"github.com/mealtrack/backend-go/internal/database/repository"
	"github.com/mealtrack/backend-go/internal/database/service"
	"github.com/mealtrack/backend-go/internal/handler"
	"github.com/mealtrack/backend-go/internal/logger"
	"github.com/mealtrack/backend-go/internal/middleware"
)

func main() {
	// 1. Config
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 [Auth] Starting auth service...", "environment", cfg.AppEnv)

	if err := cfg.ValidateAuth(); err != nil {
		appLogger.Error("❌ Missing required configuration", "error", err)
		os.Exit(1)
	}

	// 3. Connect to Database
	db, err := database.ConnectDatabase(cfg, appLogger, database.AuthMigrations)
	if err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}

	// 4. Initialize Repositories & Services
	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, cfg, appLogger)

	// 5. Initialize Handlers & Middleware
	authHandler := handler.NewAuthHandler(authService, appLogger)
	authMiddleware := middleware.NewAuthMiddleware(authService, appLogger)

	r := api.SetupAuthRouter(authHandler, authMiddleware)

	// 6. Start HTTP Server
	addr := fmt.Sprintf(":%s", cfg.AuthServicePort)
	appLogger.Info("🌍 [Auth] HTTP Server running...", "port", addr)
	if err := r.Run(addr); err != nil {
		appLogger.Error("❌ HTTP Server failed to start", "error", err)
		os.Exit(1)
	}
}
