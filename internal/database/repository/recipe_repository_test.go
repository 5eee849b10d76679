package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealtrack/backend-go/internal/database/models"
)

func seedMeal(t *testing.T, repo MealRepository, userID uint, name string) *models.Meal {
	t.Helper()
	meal := &models.Meal{UserID: userID, Name: name, Date: time.Now().UTC()}
	require.NoError(t, repo.Create(meal))
	return meal
}

func TestRecipeRepository_CreateForMeal(t *testing.T) {
	db := setupTestDB(t)
	mealRepo := NewMealRepository(db)
	recipeRepo := NewRecipeRepository(db)

	meal := seedMeal(t, mealRepo, 1, "Lunch")

	calories := 250.0
	recipe := &models.Recipe{UserID: 1, Title: "Soup", Calories: &calories}
	require.NoError(t, recipeRepo.CreateForMeal(recipe, meal.ID))

	// recipe and link must appear together
	assert.NotZero(t, recipe.ID)
	assert.EqualValues(t, 1, countLinks(t, db, recipe.ID))

	found, err := mealRepo.FindByIDForUser(meal.ID, 1)
	require.NoError(t, err)
	require.Len(t, found.Recipes, 1)
	assert.Equal(t, "Soup", found.Recipes[0].Title)
}

func TestRecipeRepository_Link(t *testing.T) {
	db := setupTestDB(t)
	mealRepo := NewMealRepository(db)
	recipeRepo := NewRecipeRepository(db)

	meal1 := seedMeal(t, mealRepo, 1, "Lunch")
	meal2 := seedMeal(t, mealRepo, 1, "Dinner")

	recipe := &models.Recipe{UserID: 1, Title: "Soup"}
	require.NoError(t, recipeRepo.CreateForMeal(recipe, meal1.ID))

	t.Run("first link succeeds", func(t *testing.T) {
		require.NoError(t, recipeRepo.Link(meal2.ID, recipe.ID))
	})

	t.Run("second identical link is a conflict", func(t *testing.T) {
		err := recipeRepo.Link(meal2.ID, recipe.ID)
		assert.ErrorIs(t, err, ErrLinkExists)
	})
}

func TestRecipeRepository_Unlink(t *testing.T) {
	db := setupTestDB(t)
	mealRepo := NewMealRepository(db)
	recipeRepo := NewRecipeRepository(db)

	meal := seedMeal(t, mealRepo, 1, "Lunch")
	recipe := &models.Recipe{UserID: 1, Title: "Soup"}
	require.NoError(t, recipeRepo.CreateForMeal(recipe, meal.ID))

	t.Run("unlink removes the link but keeps the recipe", func(t *testing.T) {
		require.NoError(t, recipeRepo.Unlink(meal.ID, recipe.ID))
		assert.Zero(t, countLinks(t, db, recipe.ID))
		assert.True(t, recipeExists(t, db, recipe.ID), "unlink must never delete the recipe")
	})

	t.Run("unlinking a missing link is not found", func(t *testing.T) {
		err := recipeRepo.Unlink(meal.ID, recipe.ID)
		assert.ErrorIs(t, err, ErrLinkNotFound)
	})
}

func TestRecipeRepository_DeleteFromMeal(t *testing.T) {
	db := setupTestDB(t)
	mealRepo := NewMealRepository(db)
	recipeRepo := NewRecipeRepository(db)

	meal1 := seedMeal(t, mealRepo, 1, "Lunch")
	meal2 := seedMeal(t, mealRepo, 1, "Dinner")

	t.Run("last link deletes the recipe", func(t *testing.T) {
		recipe := &models.Recipe{UserID: 1, Title: "Soup"}
		require.NoError(t, recipeRepo.CreateForMeal(recipe, meal1.ID))

		require.NoError(t, recipeRepo.DeleteFromMeal(meal1.ID, recipe.ID))
		assert.False(t, recipeExists(t, db, recipe.ID))
	})

	t.Run("recipe linked elsewhere survives", func(t *testing.T) {
		recipe := &models.Recipe{UserID: 1, Title: "Salad"}
		require.NoError(t, recipeRepo.CreateForMeal(recipe, meal1.ID))
		require.NoError(t, recipeRepo.Link(meal2.ID, recipe.ID))

		require.NoError(t, recipeRepo.DeleteFromMeal(meal1.ID, recipe.ID))
		assert.True(t, recipeExists(t, db, recipe.ID))
		assert.EqualValues(t, 1, countLinks(t, db, recipe.ID))
	})

	t.Run("missing link is not found", func(t *testing.T) {
		recipe := &models.Recipe{UserID: 1, Title: "Stew"}
		require.NoError(t, recipeRepo.CreateForMeal(recipe, meal1.ID))

		err := recipeRepo.DeleteFromMeal(meal2.ID, recipe.ID)
		assert.ErrorIs(t, err, ErrLinkNotFound)
	})
}

func TestRecipeRepository_DeleteWithLinks(t *testing.T) {
	db := setupTestDB(t)
	mealRepo := NewMealRepository(db)
	recipeRepo := NewRecipeRepository(db)

	meal1 := seedMeal(t, mealRepo, 1, "Lunch")
	meal2 := seedMeal(t, mealRepo, 1, "Dinner")

	recipe := &models.Recipe{UserID: 1, Title: "Soup"}
	require.NoError(t, recipeRepo.CreateForMeal(recipe, meal1.ID))
	require.NoError(t, recipeRepo.Link(meal2.ID, recipe.ID))

	require.NoError(t, recipeRepo.DeleteWithLinks(recipe.ID))

	assert.False(t, recipeExists(t, db, recipe.ID))
	assert.Zero(t, countLinks(t, db, recipe.ID))
}

func TestRecipeRepository_OwnershipPredicates(t *testing.T) {
	db := setupTestDB(t)
	mealRepo := NewMealRepository(db)
	recipeRepo := NewRecipeRepository(db)

	meal := seedMeal(t, mealRepo, 1, "Lunch")
	recipe := &models.Recipe{UserID: 1, Title: "Soup"}
	require.NoError(t, recipeRepo.CreateForMeal(recipe, meal.ID))

	t.Run("direct ownership", func(t *testing.T) {
		found, err := recipeRepo.FindByIDForUser(recipe.ID, 1)
		require.NoError(t, err)
		require.Len(t, found.Meals, 1)
		assert.Equal(t, meal.ID, found.Meals[0].ID)

		_, err = recipeRepo.FindByIDForUser(recipe.ID, 2)
		assert.ErrorIs(t, err, ErrRecipeNotFound)
	})

	t.Run("link reachability", func(t *testing.T) {
		found, err := recipeRepo.FindLinkedToMeal(recipe.ID, meal.ID)
		require.NoError(t, err)
		assert.Equal(t, recipe.ID, found.ID)

		otherMeal := seedMeal(t, mealRepo, 1, "Dinner")
		_, err = recipeRepo.FindLinkedToMeal(recipe.ID, otherMeal.ID)
		assert.ErrorIs(t, err, ErrRecipeNotFound)
	})

	t.Run("user-scoped list", func(t *testing.T) {
		recipes, err := recipeRepo.FindAllByUser(1)
		require.NoError(t, err)
		assert.Len(t, recipes, 1)

		recipes, err = recipeRepo.FindAllByUser(2)
		require.NoError(t, err)
		assert.Empty(t, recipes)
	})
}
