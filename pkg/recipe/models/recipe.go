package models

import (
	"time"

	"gorm.io/gorm"
)

// Recipe represents a recipe owned by a single user. The owning user is
// fixed at creation and never changes afterwards.
type Recipe struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Title       string         `gorm:"not null" json:"title"`
	TimeMinutes int            `gorm:"not null" json:"time_minutes"`
	Price       float64        `gorm:"type:decimal(5,2);not null" json:"price"`
	Link        string         `json:"link"`
	Description string         `json:"description"`
	Image       string         `json:"image"`

	// Relationships
	User        User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Tags        []Tag        `gorm:"many2many:recipe_tags;" json:"tags,omitempty"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;" json:"ingredients,omitempty"`
}
