package models

import (
	"time"
)

// Recipe is owned by the user who created it, independent of any meal link.
type Recipe struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	Title        string    `gorm:"not null" json:"title"`
	Instructions *string   `json:"instructions,omitempty"`
	Calories     *float64  `json:"calories,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	Meals []Meal `gorm:"many2many:meal_recipe_links;" json:"-"`
}

// TableName overrides the table name
func (Recipe) TableName() string {
	return "recipes"
}

// MealIDs returns the identifiers of the meals this recipe is linked to,
// for responses that carry the link list without nesting full meals.
func (r *Recipe) MealIDs() []uint {
	ids := make([]uint, 0, len(r.Meals))
	for _, meal := range r.Meals {
		ids = append(ids, meal.ID)
	}
	return ids
}
