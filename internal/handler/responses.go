package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mealtrack/backend-go/internal/database/models"
)

// RecipeResponse mirrors a recipe row plus the IDs of the meals it is
// linked to, without nesting full meal records.
type RecipeResponse struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	Title        string    `json:"title"`
	Instructions *string   `json:"instructions,omitempty"`
	Calories     *float64  `json:"calories,omitempty"`
	Meals        []uint    `json:"meals"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MealResponse carries a meal with its linked recipes nested.
type MealResponse struct {
	ID        uint             `json:"id"`
	UserID    uint             `json:"user_id"`
	Name      string           `json:"name"`
	Date      time.Time        `json:"date"`
	Recipes   []RecipeResponse `json:"recipes"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func toRecipeResponse(recipe *models.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:           recipe.ID,
		UserID:       recipe.UserID,
		Title:        recipe.Title,
		Instructions: recipe.Instructions,
		Calories:     recipe.Calories,
		Meals:        recipe.MealIDs(),
		CreatedAt:    recipe.CreatedAt,
		UpdatedAt:    recipe.UpdatedAt,
	}
}

func toMealResponse(meal *models.Meal) MealResponse {
	recipes := make([]RecipeResponse, 0, len(meal.Recipes))
	for i := range meal.Recipes {
		recipes = append(recipes, toRecipeResponse(&meal.Recipes[i]))
	}
	return MealResponse{
		ID:        meal.ID,
		UserID:    meal.UserID,
		Name:      meal.Name,
		Date:      meal.Date,
		Recipes:   recipes,
		CreatedAt: meal.CreatedAt,
		UpdatedAt: meal.UpdatedAt,
	}
}

// pathID parses a numeric path parameter, answering 400 on garbage input.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}
