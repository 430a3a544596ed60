package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the system. A user owns every recipe,
// tag and ingredient it creates.
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `json:"-"`
	Name         string         `gorm:"not null" json:"name"`

	// Relationships
	Recipes     []Recipe     `gorm:"foreignKey:UserID" json:"recipes,omitempty"`
	Tags        []Tag        `gorm:"foreignKey:UserID" json:"tags,omitempty"`
	Ingredients []Ingredient `gorm:"foreignKey:UserID" json:"ingredients,omitempty"`
}
