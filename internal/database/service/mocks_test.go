package service

import (
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/mealtrack/backend-go/internal/config"
	"github.com/mealtrack/backend-go/internal/database/models"
)

// MockUserRepository is a testify mock for repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockMealRepository is a testify mock for repository.MealRepository
type MockMealRepository struct {
	mock.Mock
}

func (m *MockMealRepository) Create(meal *models.Meal) error {
	args := m.Called(meal)
	return args.Error(0)
}

func (m *MockMealRepository) FindByIDForUser(id, userID uint) (*models.Meal, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meal), args.Error(1)
}

func (m *MockMealRepository) FindAllByUser(userID uint) ([]models.Meal, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Meal), args.Error(1)
}

func (m *MockMealRepository) Update(meal *models.Meal) error {
	args := m.Called(meal)
	return args.Error(0)
}

func (m *MockMealRepository) DeleteCascade(mealID uint) error {
	args := m.Called(mealID)
	return args.Error(0)
}

// MockRecipeRepository is a testify mock for repository.RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) CreateForMeal(recipe *models.Recipe, mealID uint) error {
	args := m.Called(recipe, mealID)
	return args.Error(0)
}

func (m *MockRecipeRepository) FindByIDForUser(id, userID uint) (*models.Recipe, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindAllByUser(userID uint) ([]models.Recipe, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindLinkedToMeal(recipeID, mealID uint) (*models.Recipe, error) {
	args := m.Called(recipeID, mealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) Update(recipe *models.Recipe) error {
	args := m.Called(recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) Link(mealID, recipeID uint) error {
	args := m.Called(mealID, recipeID)
	return args.Error(0)
}

func (m *MockRecipeRepository) Unlink(mealID, recipeID uint) error {
	args := m.Called(mealID, recipeID)
	return args.Error(0)
}

func (m *MockRecipeRepository) DeleteFromMeal(mealID, recipeID uint) error {
	args := m.Called(mealID, recipeID)
	return args.Error(0)
}

func (m *MockRecipeRepository) DeleteWithLinks(recipeID uint) error {
	args := m.Called(recipeID)
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:                "test-secret",
		JWTAlgorithm:             "HS256",
		AccessTokenExpireMinutes: 30,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
