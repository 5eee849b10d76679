package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mealtrack/backend-go/internal/handler"
	"github.com/mealtrack/backend-go/internal/middleware"
)

// SetupAuthRouter wires the auth service's HTTP surface.
func SetupAuthRouter(
	authHandler *handler.AuthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)
	r.Use(middleware.RequestID())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "auth"})
	})

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/me", authMiddleware.RequireAuth(), authHandler.Me)
	}

	return r
}

// SetupMealRouter wires the meal service's HTTP surface. Every route under
// /api/meals resolves the caller's identity against the auth service first.
func SetupMealRouter(
	mealHandler *handler.MealHandler,
	recipeHandler *handler.RecipeHandler,
	identityMiddleware *middleware.IdentityMiddleware,
) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)
	r.Use(middleware.RequestID())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "meals"})
	})

	meals := r.Group("/api/meals")
	meals.Use(identityMiddleware.RequireIdentity())
	{
		meals.POST("/meal", mealHandler.CreateMeal)
		meals.GET("/all", mealHandler.GetAllMeals)
		meals.GET("/:meal_id", mealHandler.GetMeal)
		meals.PATCH("/:meal_id", mealHandler.UpdateMeal)
		meals.DELETE("/:meal_id", mealHandler.DeleteMeal)

		// Meal-scoped recipe routes: authorized through meal ownership
		meals.POST("/:meal_id/recipe", recipeHandler.CreateRecipeForMeal)
		meals.PATCH("/:meal_id/recipe/:recipe_id", recipeHandler.UpdateMealRecipe)
		meals.DELETE("/:meal_id/recipe/:recipe_id", recipeHandler.DeleteMealRecipe)
		meals.POST("/:meal_id/recipe/:recipe_id/link", recipeHandler.LinkRecipe)
		meals.DELETE("/:meal_id/recipe/:recipe_id/link", recipeHandler.UnlinkRecipe)

		// User-scoped recipe routes: authorized through direct ownership
		meals.GET("/user/recipe/all", recipeHandler.GetUserRecipes)
		meals.GET("/user/recipe/:recipe_id", recipeHandler.GetUserRecipe)
		meals.PATCH("/user/recipe/:recipe_id", recipeHandler.UpdateUserRecipe)
		meals.DELETE("/user/recipe/:recipe_id", recipeHandler.DeleteUserRecipe)
	}

	return r
}
