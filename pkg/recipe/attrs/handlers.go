// Package attrs serves the recipe attribute endpoints. Tags and
// ingredients share the same contract, so one handler covers both,
// parameterized by a Kind descriptor.
package attrs

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bistapradip/Recipe/pkg/recipe/auth"
	"github.com/bistapradip/Recipe/pkg/recipe/models"
)

// Kind describes one attribute kind (tags or ingredients)
type Kind struct {
	Singular   string
	Table      string
	JoinTable  string
	JoinColumn string
	NewModel   func() interface{}
}

// Tags is the Kind descriptor for recipe tags
var Tags = Kind{
	Singular:   "Tag",
	Table:      "tags",
	JoinTable:  "recipe_tags",
	JoinColumn: "tag_id",
	NewModel:   func() interface{} { return &models.Tag{} },
}

// Ingredients is the Kind descriptor for recipe ingredients
var Ingredients = Kind{
	Singular:   "Ingredient",
	Table:      "ingredients",
	JoinTable:  "recipe_ingredients",
	JoinColumn: "ingredient_id",
	NewModel:   func() interface{} { return &models.Ingredient{} },
}

// Handler handles attribute requests for one Kind
type Handler struct {
	db   *gorm.DB
	kind Kind
}

// NewHandler creates an attribute handler for the given kind
func NewHandler(db *gorm.DB, kind Kind) *Handler {
	return &Handler{db: db, kind: kind}
}

// AttrResponse represents a tag or ingredient in API responses
type AttrResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// UpdateAttrRequest represents a rename request
type UpdateAttrRequest struct {
	Name string `json:"name" binding:"required"`
}

// List returns the caller's attributes, name descending, distinct
// @Summary List tags or ingredients
// @Description List the authenticated user's attributes, optionally restricted to ones assigned to a recipe
// @Tags attributes
// @Produce json
// @Param assigned_only query int false "Filter by items assigned to recipes" Enums(0, 1)
// @Success 200 {array} AttrResponse
// @Failure 400 {object} map[string]string "Invalid assigned_only value"
// @Security BearerAuth
// @Router /tags [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	assignedOnly := false
	if raw := c.Query("assigned_only"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assigned_only value"})
			return
		}
		assignedOnly = v != 0
	}

	query := h.db.Model(h.kind.NewModel()).
		Where(h.kind.Table+".user_id = ?", userID)

	if assignedOnly {
		// A recipe join can repeat an attribute used by several recipes,
		// and soft-deleted recipes must not count as an assignment.
		query = query.
			Joins("INNER JOIN " + h.kind.JoinTable + " ON " + h.kind.JoinTable + "." + h.kind.JoinColumn + " = " + h.kind.Table + ".id").
			Joins("INNER JOIN recipes ON recipes.id = " + h.kind.JoinTable + ".recipe_id AND recipes.deleted_at IS NULL").
			Distinct(h.kind.Table+".id", h.kind.Table+".name")
	}

	var attrs []AttrResponse
	if err := query.Order(h.kind.Table + ".name DESC").Find(&attrs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch " + h.kind.Table})
		return
	}

	c.JSON(http.StatusOK, attrs)
}

// Update renames an attribute owned by the caller
// @Summary Rename a tag or ingredient
// @Description Rename an attribute; not-owned attributes read as not found
// @Tags attributes
// @Accept json
// @Produce json
// @Param id path int true "Attribute ID"
// @Param request body UpdateAttrRequest true "New name"
// @Success 200 {object} AttrResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /tags/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + h.kind.Singular + " ID"})
		return
	}

	var req UpdateAttrRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Renaming onto an existing name would break the (user, name) uniqueness
	var clash AttrResponse
	if err := h.db.Model(h.kind.NewModel()).
		Where("user_id = ? AND name = ? AND id != ?", userID, req.Name, id).
		First(&clash).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.kind.Singular + " name already in use"})
		return
	}

	res := h.db.Model(h.kind.NewModel()).
		Where("id = ? AND user_id = ?", id, userID).
		Update("name", req.Name)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update " + h.kind.Singular})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": h.kind.Singular + " not found"})
		return
	}

	c.JSON(http.StatusOK, AttrResponse{ID: uint(id), Name: req.Name})
}

// Delete removes an attribute and detaches it from any recipe
// @Summary Delete a tag or ingredient
// @Description Delete an attribute owned by the caller
// @Tags attributes
// @Produce json
// @Param id path int true "Attribute ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /tags/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + h.kind.Singular + " ID"})
		return
	}

	model := h.kind.NewModel()
	if err := h.db.Where("id = ? AND user_id = ?", id, userID).First(model).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": h.kind.Singular + " not found"})
		return
	}

	// Drop the association rows first, then the attribute itself
	if err := h.db.Model(model).Association("Recipes").Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete " + h.kind.Singular})
		return
	}
	if err := h.db.Delete(model).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete " + h.kind.Singular})
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers the attribute routes for this kind
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.PATCH("/:id", h.Update)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}
