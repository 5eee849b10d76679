package service

import (
	"errors"
	"log/slog"

	"github.com/mealtrack/backend-go/internal/database/models"
	"github.com/mealtrack/backend-go/internal/database/repository"
)

// RecipeService defines the interface for recipe business logic. Meal-scoped
// operations authorize through ownership of the linking meal; user-scoped
// operations authorize through ownership of the recipe row itself. The two
// predicates are deliberately distinct.
type RecipeService interface {
	CreateForMeal(userID, mealID uint, title string, instructions *string, calories *float64) (*models.Recipe, error)
	Link(userID, mealID, recipeID uint) error
	Unlink(userID, mealID, recipeID uint) error
	UpdateForMeal(userID, mealID, recipeID uint, patch RecipePatch) (*models.Recipe, error)
	DeleteFromMeal(userID, mealID, recipeID uint) error

	Get(userID, recipeID uint) (*models.Recipe, error)
	GetAll(userID uint) ([]models.Recipe, error)
	Update(userID, recipeID uint, patch RecipePatch) (*models.Recipe, error)
	Delete(userID, recipeID uint) error
}

// RecipePatch carries the fields of a sparse update. A nil field was absent
// from the request and leaves the stored value untouched.
type RecipePatch struct {
	Title        *string
	Instructions *string
	Calories     *float64
}

func (p RecipePatch) apply(recipe *models.Recipe) {
	if p.Title != nil {
		recipe.Title = *p.Title
	}
	if p.Instructions != nil {
		recipe.Instructions = p.Instructions
	}
	if p.Calories != nil {
		recipe.Calories = p.Calories
	}
}

type recipeService struct {
	recipeRepo repository.RecipeRepository
	mealRepo   repository.MealRepository
	logger     *slog.Logger
}

// NewRecipeService creates a new recipe service instance
func NewRecipeService(recipeRepo repository.RecipeRepository, mealRepo repository.MealRepository, logger *slog.Logger) RecipeService {
	return &recipeService{
		recipeRepo: recipeRepo,
		mealRepo:   mealRepo,
		logger:     logger,
	}
}

func (s *recipeService) CreateForMeal(userID, mealID uint, title string, instructions *string, calories *float64) (*models.Recipe, error) {
	if _, err := s.mealRepo.FindByIDForUser(mealID, userID); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		UserID:       userID,
		Title:        title,
		Instructions: instructions,
		Calories:     calories,
	}

	if err := s.recipeRepo.CreateForMeal(recipe, mealID); err != nil {
		s.logger.Error("❌ [RecipeService] Failed to create recipe", "error", err, "meal_id", mealID)
		return nil, err
	}

	s.logger.Info("✅ [RecipeService] Recipe created and linked", "recipe_id", recipe.ID, "meal_id", mealID)
	return recipe, nil
}

func (s *recipeService) Link(userID, mealID, recipeID uint) error {
	if _, err := s.mealRepo.FindByIDForUser(mealID, userID); err != nil {
		return err
	}
	if _, err := s.recipeRepo.FindByIDForUser(recipeID, userID); err != nil {
		return err
	}

	if err := s.recipeRepo.Link(mealID, recipeID); err != nil {
		if errors.Is(err, repository.ErrLinkExists) {
			s.logger.Warn("⚠️ [RecipeService] Link already exists", "meal_id", mealID, "recipe_id", recipeID)
		}
		return err
	}

	s.logger.Info("✅ [RecipeService] Recipe linked to meal", "meal_id", mealID, "recipe_id", recipeID)
	return nil
}

func (s *recipeService) Unlink(userID, mealID, recipeID uint) error {
	if _, err := s.mealRepo.FindByIDForUser(mealID, userID); err != nil {
		return err
	}
	if _, err := s.recipeRepo.FindByIDForUser(recipeID, userID); err != nil {
		return err
	}

	// The recipe survives unlinking even with no links left; only the
	// meal-delete paths garbage-collect orphans.
	if err := s.recipeRepo.Unlink(mealID, recipeID); err != nil {
		return err
	}

	s.logger.Info("✅ [RecipeService] Recipe unlinked from meal", "meal_id", mealID, "recipe_id", recipeID)
	return nil
}

func (s *recipeService) UpdateForMeal(userID, mealID, recipeID uint, patch RecipePatch) (*models.Recipe, error) {
	if _, err := s.mealRepo.FindByIDForUser(mealID, userID); err != nil {
		return nil, err
	}

	recipe, err := s.recipeRepo.FindLinkedToMeal(recipeID, mealID)
	if err != nil {
		return nil, err
	}

	patch.apply(recipe)

	if err := s.recipeRepo.Update(recipe); err != nil {
		s.logger.Error("❌ [RecipeService] Failed to update recipe", "error", err, "recipe_id", recipeID)
		return nil, err
	}

	s.logger.Info("✅ [RecipeService] Recipe updated via meal", "recipe_id", recipeID, "meal_id", mealID)
	return recipe, nil
}

func (s *recipeService) DeleteFromMeal(userID, mealID, recipeID uint) error {
	if _, err := s.mealRepo.FindByIDForUser(mealID, userID); err != nil {
		return err
	}

	if err := s.recipeRepo.DeleteFromMeal(mealID, recipeID); err != nil {
		return err
	}

	s.logger.Info("✅ [RecipeService] Recipe removed from meal", "recipe_id", recipeID, "meal_id", mealID)
	return nil
}

func (s *recipeService) Get(userID, recipeID uint) (*models.Recipe, error) {
	return s.recipeRepo.FindByIDForUser(recipeID, userID)
}

func (s *recipeService) GetAll(userID uint) ([]models.Recipe, error) {
	return s.recipeRepo.FindAllByUser(userID)
}

func (s *recipeService) Update(userID, recipeID uint, patch RecipePatch) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.FindByIDForUser(recipeID, userID)
	if err != nil {
		return nil, err
	}

	patch.apply(recipe)

	if err := s.recipeRepo.Update(recipe); err != nil {
		s.logger.Error("❌ [RecipeService] Failed to update recipe", "error", err, "recipe_id", recipeID)
		return nil, err
	}

	s.logger.Info("✅ [RecipeService] Recipe updated", "recipe_id", recipeID, "user_id", userID)
	return recipe, nil
}

func (s *recipeService) Delete(userID, recipeID uint) error {
	if _, err := s.recipeRepo.FindByIDForUser(recipeID, userID); err != nil {
		return err
	}

	if err := s.recipeRepo.DeleteWithLinks(recipeID); err != nil {
		s.logger.Error("❌ [RecipeService] Failed to delete recipe", "error", err, "recipe_id", recipeID)
		return err
	}

	s.logger.Info("✅ [RecipeService] Recipe deleted with links", "recipe_id", recipeID, "user_id", userID)
	return nil
}
