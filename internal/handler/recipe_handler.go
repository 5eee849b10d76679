package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealtrack/backend-go/internal/database/repository"
	"github.com/mealtrack/backend-go/internal/database/service"
	"github.com/mealtrack/backend-go/internal/middleware"
)

// RecipeHandler handles HTTP requests for recipes, both the meal-scoped
// routes and the user-scoped /user/recipe routes.
type RecipeHandler struct {
	service service.RecipeService
	logger  *slog.Logger
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(service service.RecipeService, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{
		service: service,
		logger:  logger,
	}
}

// Request DTOs
type CreateRecipeRequest struct {
	Title        string   `json:"title" binding:"required"`
	Instructions *string  `json:"instructions"`
	Calories     *float64 `json:"calories"`
}

type UpdateRecipeRequest struct {
	Title        *string  `json:"title"`
	Instructions *string  `json:"instructions"`
	Calories     *float64 `json:"calories"`
}

// CreateRecipeForMeal creates a recipe and links it to the meal atomically
func (h *RecipeHandler) CreateRecipeForMeal(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	mealID, ok := pathID(c, "meal_id")
	if !ok {
		return
	}

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [Handler] Invalid create recipe request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. Recipe title required."})
		return
	}

	recipe, err := h.service.CreateForMeal(userID, mealID, req.Title, req.Instructions, req.Calories)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

// LinkRecipe links an existing recipe to a meal; an existing link is a conflict
func (h *RecipeHandler) LinkRecipe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	mealID, ok := pathID(c, "meal_id")
	if !ok {
		return
	}
	recipeID, ok := pathID(c, "recipe_id")
	if !ok {
		return
	}

	if err := h.service.Link(userID, mealID, recipeID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"meal_id": mealID, "recipe_id": recipeID})
}

// UnlinkRecipe removes the link only; the recipe itself always survives
func (h *RecipeHandler) UnlinkRecipe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	mealID, ok := pathID(c, "meal_id")
	if !ok {
		return
	}
	recipeID, ok := pathID(c, "recipe_id")
	if !ok {
		return
	}

	if err := h.service.Unlink(userID, mealID, recipeID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateMealRecipe patches a recipe reached through a meal the caller owns
func (h *RecipeHandler) UpdateMealRecipe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	mealID, ok := pathID(c, "meal_id")
	if !ok {
		return
	}
	recipeID, ok := pathID(c, "recipe_id")
	if !ok {
		return
	}

	req, ok := h.bindUpdate(c)
	if !ok {
		return
	}

	recipe, err := h.service.UpdateForMeal(userID, mealID, recipeID, service.RecipePatch{
		Title:        req.Title,
		Instructions: req.Instructions,
		Calories:     req.Calories,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRecipeResponse(recipe))
}

// DeleteMealRecipe unlinks the recipe from the meal and garbage-collects
// it when no links remain (the cascading variant)
func (h *RecipeHandler) DeleteMealRecipe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	mealID, ok := pathID(c, "meal_id")
	if !ok {
		return
	}
	recipeID, ok := pathID(c, "recipe_id")
	if !ok {
		return
	}

	if err := h.service.DeleteFromMeal(userID, mealID, recipeID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetUserRecipes lists every recipe the caller owns directly
func (h *RecipeHandler) GetUserRecipes(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	recipes, err := h.service.GetAll(userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	resp := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		resp = append(resp, toRecipeResponse(&recipes[i]))
	}

	c.JSON(http.StatusOK, gin.H{"recipes": resp, "count": len(resp)})
}

// GetUserRecipe returns one recipe the caller owns directly
func (h *RecipeHandler) GetUserRecipe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	recipeID, ok := pathID(c, "recipe_id")
	if !ok {
		return
	}

	recipe, err := h.service.Get(userID, recipeID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRecipeResponse(recipe))
}

// UpdateUserRecipe patches a recipe the caller owns directly
func (h *RecipeHandler) UpdateUserRecipe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	recipeID, ok := pathID(c, "recipe_id")
	if !ok {
		return
	}

	req, ok := h.bindUpdate(c)
	if !ok {
		return
	}

	recipe, err := h.service.Update(userID, recipeID, service.RecipePatch{
		Title:        req.Title,
		Instructions: req.Instructions,
		Calories:     req.Calories,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRecipeResponse(recipe))
}

// DeleteUserRecipe deletes an owned recipe and all of its links
func (h *RecipeHandler) DeleteUserRecipe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	recipeID, ok := pathID(c, "recipe_id")
	if !ok {
		return
	}

	if err := h.service.Delete(userID, recipeID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) bindUpdate(c *gin.Context) (UpdateRecipeRequest, bool) {
	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [Handler] Invalid update recipe request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return req, false
	}
	return req, true
}

// handleServiceError maps service errors to HTTP responses
func (h *RecipeHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrMealNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
	case errors.Is(err, repository.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
	case errors.Is(err, repository.ErrLinkNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe is not linked to this meal"})
	case errors.Is(err, repository.ErrLinkExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Recipe already linked to this meal"})
	default:
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
