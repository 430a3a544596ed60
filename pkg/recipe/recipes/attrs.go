package recipes

import (
	"errors"

	"gorm.io/gorm"

	"github.com/bistapradip/Recipe/pkg/recipe/models"
)

// AttrSpec represents a tag or ingredient submitted on a recipe write
type AttrSpec struct {
	Name string `json:"name" binding:"required"`
}

// getOrCreate resolves each spec to an attribute owned by the user,
// creating missing ones. Losing a create race on the (user, name) unique
// index falls back to looking the winner up.
func getOrCreate[T any](db *gorm.DB, userID uint, specs []AttrSpec, build func(userID uint, name string) T) ([]T, error) {
	attrs := make([]T, 0, len(specs))
	for _, spec := range specs {
		var attr T
		err := db.Where("user_id = ? AND name = ?", userID, spec.Name).First(&attr).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			attr = build(userID, spec.Name)
			if err = db.Create(&attr).Error; err != nil {
				err = db.Where("user_id = ? AND name = ?", userID, spec.Name).First(&attr).Error
			}
		}
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

// setTags clears the recipe's tag associations and repopulates them from
// the submitted specs. An empty spec list leaves the recipe untagged.
func (h *Handler) setTags(recipe *models.Recipe, userID uint, specs []AttrSpec) error {
	tags, err := getOrCreate(h.db, userID, specs, func(userID uint, name string) models.Tag {
		return models.Tag{UserID: userID, Name: name}
	})
	if err != nil {
		return err
	}

	if err := h.db.Model(recipe).Association("Tags").Clear(); err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil
	}
	return h.db.Model(recipe).Association("Tags").Append(tags)
}

// setIngredients is setTags for the ingredient kind.
func (h *Handler) setIngredients(recipe *models.Recipe, userID uint, specs []AttrSpec) error {
	ingredients, err := getOrCreate(h.db, userID, specs, func(userID uint, name string) models.Ingredient {
		return models.Ingredient{UserID: userID, Name: name}
	})
	if err != nil {
		return err
	}

	if err := h.db.Model(recipe).Association("Ingredients").Clear(); err != nil {
		return err
	}
	if len(ingredients) == 0 {
		return nil
	}
	return h.db.Model(recipe).Association("Ingredients").Append(ingredients)
}
