package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mealtrack/backend-go/internal/database/models"
)

// RecipeRepository defines the interface for recipe and link data operations.
// Two ownership predicates coexist: FindByIDForUser checks the recipe's own
// user_id, FindLinkedToMeal checks reachability through a link row.
type RecipeRepository interface {
	CreateForMeal(recipe *models.Recipe, mealID uint) error
	FindByIDForUser(id, userID uint) (*models.Recipe, error)
	FindAllByUser(userID uint) ([]models.Recipe, error)
	FindLinkedToMeal(recipeID, mealID uint) (*models.Recipe, error)
	Update(recipe *models.Recipe) error
	Link(mealID, recipeID uint) error
	Unlink(mealID, recipeID uint) error
	DeleteFromMeal(mealID, recipeID uint) error
	DeleteWithLinks(recipeID uint) error
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository instance
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// CreateForMeal inserts the recipe and its link to the meal as one
// transaction; a recipe without its link must never be observable.
func (r *recipeRepository) CreateForMeal(recipe *models.Recipe, mealID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		return tx.Create(&models.MealRecipeLink{MealID: mealID, RecipeID: recipe.ID}).Error
	})
}

func (r *recipeRepository) FindByIDForUser(id, userID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.Preload("Meals").Where("id = ? AND user_id = ?", id, userID).First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) FindAllByUser(userID uint) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := r.db.Preload("Meals").Where("user_id = ?", userID).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// FindLinkedToMeal resolves a recipe through its link row, the meal-scoped
// ownership predicate. The caller must have verified meal ownership first.
func (r *recipeRepository) FindLinkedToMeal(recipeID, mealID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.Preload("Meals").
		Joins("JOIN meal_recipe_links ON meal_recipe_links.recipe_id = recipes.id").
		Where("recipes.id = ? AND meal_recipe_links.meal_id = ?", recipeID, mealID).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) Update(recipe *models.Recipe) error {
	return r.db.Save(recipe).Error
}

func (r *recipeRepository) Link(mealID, recipeID uint) error {
	err := r.db.Create(&models.MealRecipeLink{MealID: mealID, RecipeID: recipeID}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrLinkExists
		}
		return err
	}
	return nil
}

// Unlink removes the link row only. The recipe stays, even with zero links
// remaining; only the meal-delete and meal-scoped-delete paths collect it.
func (r *recipeRepository) Unlink(mealID, recipeID uint) error {
	res := r.db.Where("meal_id = ? AND recipe_id = ?", mealID, recipeID).Delete(&models.MealRecipeLink{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

// DeleteFromMeal removes the link to the given meal and deletes the recipe
// if that was its last link.
func (r *recipeRepository) DeleteFromMeal(mealID, recipeID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("meal_id = ? AND recipe_id = ?", mealID, recipeID).Delete(&models.MealRecipeLink{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrLinkNotFound
		}

		var remaining int64
		if err := tx.Model(&models.MealRecipeLink{}).Where("recipe_id = ?", recipeID).Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			return tx.Delete(&models.Recipe{}, recipeID).Error
		}
		return nil
	})
}

// DeleteWithLinks removes the recipe and all of its links, whatever meals
// it was linked to.
func (r *recipeRepository) DeleteWithLinks(recipeID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.MealRecipeLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, recipeID).Error
	})
}

// Repository errors
var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrLinkNotFound   = errors.New("link not found")
	ErrLinkExists     = errors.New("recipe already linked to meal")
)
