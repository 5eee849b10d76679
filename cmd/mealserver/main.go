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
	"github.com/mealtrack/backend-go/internal/identity"
	"github.com/mealtrack/backend-go/internal/logger"
	"github.com/mealtrack/backend-go/internal/middleware"
)

func main() {
	// 1. Config
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 [Meals] Starting meal service...",
		"auth_service", cfg.AuthServiceURL,
		"environment", cfg.AppEnv,
	)

	if err := cfg.ValidateMeal(); err != nil {
		appLogger.Error("❌ Missing required configuration", "error", err)
		os.Exit(1)
	}

	// 3. Connect to Database
	db, err := database.ConnectDatabase(cfg, appLogger, database.MealMigrations)
	if err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}

	// 4. Initialize Repositories
	mealRepo := repository.NewMealRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)

	// 5. Initialize Services
	mealService := service.NewMealService(mealRepo, appLogger)
	recipeService := service.NewRecipeService(recipeRepo, mealRepo, appLogger)

	// 6. Identity client against the auth service
	verifier := identity.NewClient(cfg, appLogger)

	// 7. Initialize Handlers & Middleware
	mealHandler := handler.NewMealHandler(mealService, appLogger)
	recipeHandler := handler.NewRecipeHandler(recipeService, appLogger)
	identityMiddleware := middleware.NewIdentityMiddleware(verifier, appLogger)

	r := api.SetupMealRouter(mealHandler, recipeHandler, identityMiddleware)

	// 8. Start HTTP Server
	addr := fmt.Sprintf(":%s", cfg.MealServicePort)
	appLogger.Info("🌍 [Meals] HTTP Server running...", "port", addr)
	if err := r.Run(addr); err != nil {
		appLogger.Error("❌ HTTP Server failed to start", "error", err)
		os.Exit(1)
	}
}
