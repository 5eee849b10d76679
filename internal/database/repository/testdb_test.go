package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mealtrack/backend-go/internal/database/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.SetupJoinTable(&models.Meal{}, "Recipes", &models.MealRecipeLink{}))
	require.NoError(t, db.SetupJoinTable(&models.Recipe{}, "Meals", &models.MealRecipeLink{}))
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Meal{},
		&models.Recipe{},
		&models.MealRecipeLink{},
	))

	return db
}

func countLinks(t *testing.T, db *gorm.DB, recipeID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.MealRecipeLink{}).Where("recipe_id = ?", recipeID).Count(&n).Error)
	return n
}

func recipeExists(t *testing.T, db *gorm.DB, recipeID uint) bool {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&n).Error)
	return n == 1
}
