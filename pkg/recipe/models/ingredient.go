package models

import "time"

// Ingredient represents a per-user ingredient label attachable to recipes.
// Structurally identical to Tag, including the (user_id, name) uniqueness
// and hard-delete semantics.
type Ingredient struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_ingredient_user_name" json:"user_id"`
	Name      string    `gorm:"not null;uniqueIndex:idx_ingredient_user_name" json:"name"`

	// Relationships
	Recipes []Recipe `gorm:"many2many:recipe_ingredients;" json:"recipes,omitempty"`
}
