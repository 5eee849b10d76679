package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/mealtrack/backend-go/internal/database/models"
	"github.com/mealtrack/backend-go/internal/database/repository"
)

// MealService defines the interface for meal business logic. Every
// operation is scoped to the caller's resolved user ID.
type MealService interface {
	Create(userID uint, name string, date *time.Time) (*models.Meal, error)
	Get(userID, mealID uint) (*models.Meal, error)
	GetAll(userID uint) ([]models.Meal, error)
	Update(userID, mealID uint, patch MealPatch) (*models.Meal, error)
	Delete(userID, mealID uint) error
}

// MealPatch carries the fields of a sparse update. A nil field was absent
// from the request and leaves the stored value untouched.
type MealPatch struct {
	Name *string
	Date *time.Time
}

func (p MealPatch) apply(meal *models.Meal) {
	if p.Name != nil {
		meal.Name = *p.Name
	}
	if p.Date != nil {
		meal.Date = *p.Date
	}
}

type mealService struct {
	mealRepo repository.MealRepository
	logger   *slog.Logger
}

// NewMealService creates a new meal service instance
func NewMealService(mealRepo repository.MealRepository, logger *slog.Logger) MealService {
	return &mealService{
		mealRepo: mealRepo,
		logger:   logger,
	}
}

func (s *mealService) Create(userID uint, name string, date *time.Time) (*models.Meal, error) {
	meal := &models.Meal{
		UserID: userID,
		Name:   name,
		Date:   time.Now().UTC(),
	}
	if date != nil {
		meal.Date = date.UTC()
	}

	if err := s.mealRepo.Create(meal); err != nil {
		s.logger.Error("❌ [MealService] Failed to create meal", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("✅ [MealService] Meal created", "meal_id", meal.ID, "user_id", userID)
	return meal, nil
}

func (s *mealService) Get(userID, mealID uint) (*models.Meal, error) {
	return s.mealRepo.FindByIDForUser(mealID, userID)
}

func (s *mealService) GetAll(userID uint) ([]models.Meal, error) {
	meals, err := s.mealRepo.FindAllByUser(userID)
	if err != nil {
		s.logger.Error("❌ [MealService] Failed to list meals", "error", err, "user_id", userID)
		return nil, err
	}
	if len(meals) == 0 {
		return nil, ErrNoMeals
	}
	return meals, nil
}

func (s *mealService) Update(userID, mealID uint, patch MealPatch) (*models.Meal, error) {
	meal, err := s.mealRepo.FindByIDForUser(mealID, userID)
	if err != nil {
		return nil, err
	}

	patch.apply(meal)

	if err := s.mealRepo.Update(meal); err != nil {
		s.logger.Error("❌ [MealService] Failed to update meal", "error", err, "meal_id", mealID)
		return nil, err
	}

	s.logger.Info("✅ [MealService] Meal updated", "meal_id", meal.ID, "user_id", userID)
	return meal, nil
}

func (s *mealService) Delete(userID, mealID uint) error {
	if _, err := s.mealRepo.FindByIDForUser(mealID, userID); err != nil {
		return err
	}

	if err := s.mealRepo.DeleteCascade(mealID); err != nil {
		s.logger.Error("❌ [MealService] Failed to delete meal", "error", err, "meal_id", mealID)
		return err
	}

	s.logger.Info("✅ [MealService] Meal deleted with cascade", "meal_id", mealID, "user_id", userID)
	return nil
}

// Service errors
var (
	ErrNoMeals = errors.New("no meals found")
)
