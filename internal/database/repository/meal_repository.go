package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mealtrack/backend-go/internal/database/models"
)

// MealRepository defines the interface for meal data operations.
// Every lookup is scoped to an owning user; a row owned by someone else is
// indistinguishable from a missing row.
type MealRepository interface {
	Create(meal *models.Meal) error
	FindByIDForUser(id, userID uint) (*models.Meal, error)
	FindAllByUser(userID uint) ([]models.Meal, error)
	Update(meal *models.Meal) error
	DeleteCascade(mealID uint) error
}

type mealRepository struct {
	db *gorm.DB
}

// NewMealRepository creates a new meal repository instance
func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{db: db}
}

func (r *mealRepository) Create(meal *models.Meal) error {
	return r.db.Create(meal).Error
}

func (r *mealRepository) FindByIDForUser(id, userID uint) (*models.Meal, error) {
	var meal models.Meal
	err := r.db.Preload("Recipes.Meals").Where("id = ? AND user_id = ?", id, userID).First(&meal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	return &meal, nil
}

func (r *mealRepository) FindAllByUser(userID uint) ([]models.Meal, error) {
	var meals []models.Meal
	if err := r.db.Where("user_id = ?", userID).Order("date DESC").Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *mealRepository) Update(meal *models.Meal) error {
	return r.db.Save(meal).Error
}

// DeleteCascade removes the meal, every link referencing it, and any recipe
// left without links afterwards. Runs in a single transaction so a crash
// cannot leave orphaned link rows behind.
func (r *mealRepository) DeleteCascade(mealID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var linkedRecipeIDs []uint
		if err := tx.Model(&models.MealRecipeLink{}).
			Where("meal_id = ?", mealID).
			Pluck("recipe_id", &linkedRecipeIDs).Error; err != nil {
			return err
		}

		if err := tx.Where("meal_id = ?", mealID).Delete(&models.MealRecipeLink{}).Error; err != nil {
			return err
		}

		// Garbage-collect recipes that lost their last link
		if len(linkedRecipeIDs) > 0 {
			if err := tx.Where(
				"id IN ? AND NOT EXISTS (SELECT 1 FROM meal_recipe_links WHERE recipe_id = recipes.id)",
				linkedRecipeIDs,
			).Delete(&models.Recipe{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Meal{}, mealID).Error
	})
}

// Repository errors
var (
	ErrMealNotFound = errors.New("meal not found")
)
