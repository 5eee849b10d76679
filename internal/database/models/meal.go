package models

import (
	"time"
)

// Meal is owned by exactly one user; ownership never changes after creation.
type Meal struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	Date      time.Time `gorm:"not null" json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Recipes []Recipe `gorm:"many2many:meal_recipe_links;" json:"recipes,omitempty"`
}

// TableName overrides the table name
func (Meal) TableName() string {
	return "meals"
}

// MealRecipeLink is the join row between meals and recipes. The composite
// primary key guarantees a given (meal, recipe) pair exists at most once.
type MealRecipeLink struct {
	MealID   uint `gorm:"primaryKey" json:"meal_id"`
	RecipeID uint `gorm:"primaryKey" json:"recipe_id"`
}

// TableName overrides the table name
func (MealRecipeLink) TableName() string {
	return "meal_recipe_links"
}
