package models

import "time"

// Tag represents a per-user label that can be applied to recipes.
// The (user_id, name) pair is unique so get-or-create never races into
// duplicates. Tags are hard-deleted: a soft-delete row would keep the
// unique index occupied and block recreating the same name.
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_tag_user_name" json:"user_id"`
	Name      string    `gorm:"not null;uniqueIndex:idx_tag_user_name" json:"name"`

	// Relationships
	Recipes []Recipe `gorm:"many2many:recipe_tags;" json:"recipes,omitempty"`
}
