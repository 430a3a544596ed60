package recipes

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bistapradip/Recipe/pkg/recipe/auth"
	"github.com/bistapradip/Recipe/pkg/recipe/images"
	"github.com/bistapradip/Recipe/pkg/recipe/models"
)

// Handler handles recipe requests
type Handler struct {
	db    *gorm.DB
	store *images.Storage
}

// NewHandler creates a new recipes handler
func NewHandler(db *gorm.DB, store *images.Storage) *Handler {
	return &Handler{db: db, store: store}
}

// CreateRecipeRequest represents the request to create a recipe
type CreateRecipeRequest struct {
	Title       string     `json:"title" binding:"required"`
	TimeMinutes *int       `json:"time_minutes" binding:"required,gte=0"`
	Price       *float64   `json:"price" binding:"required,gte=0"`
	Link        string     `json:"link" binding:"omitempty,url"`
	Description string     `json:"description"`
	Tags        []AttrSpec `json:"tags" binding:"omitempty,dive"`
	Ingredients []AttrSpec `json:"ingredients" binding:"omitempty,dive"`
}

// UpdateRecipeRequest represents the request to update a recipe.
// Pointer fields distinguish omitted from explicitly empty; there is no
// user field, so ownership cannot be changed.
type UpdateRecipeRequest struct {
	Title       *string     `json:"title" binding:"omitempty,min=1"`
	TimeMinutes *int        `json:"time_minutes" binding:"omitempty,gte=0"`
	Price       *float64    `json:"price" binding:"omitempty,gte=0"`
	Link        *string     `json:"link" binding:"omitempty,url"`
	Description *string     `json:"description"`
	Tags        *[]AttrSpec `json:"tags" binding:"omitempty,dive"`
	Ingredients *[]AttrSpec `json:"ingredients" binding:"omitempty,dive"`
}

// AttrRef represents an associated tag or ingredient in responses
type AttrRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// RecipeResponse represents a recipe in list responses
type RecipeResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	TimeMinutes int       `json:"time_minutes"`
	Price       float64   `json:"price"`
	Link        string    `json:"link"`
	Tags        []AttrRef `json:"tags"`
	Ingredients []AttrRef `json:"ingredients"`
}

// RecipeDetailResponse represents a recipe in detail responses
type RecipeDetailResponse struct {
	RecipeResponse
	Description string `json:"description"`
	Image       string `json:"image"`
}

// RecipeImageResponse represents the upload-image response
type RecipeImageResponse struct {
	ID    uint   `json:"id"`
	Image string `json:"image"`
}

func attrRefs[T interface{ models.Tag | models.Ingredient }](attrs []T) []AttrRef {
	refs := make([]AttrRef, len(attrs))
	for i, a := range attrs {
		switch v := any(a).(type) {
		case models.Tag:
			refs[i] = AttrRef{ID: v.ID, Name: v.Name}
		case models.Ingredient:
			refs[i] = AttrRef{ID: v.ID, Name: v.Name}
		}
	}
	return refs
}

func recipeToResponse(recipe models.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Tags:        attrRefs(recipe.Tags),
		Ingredients: attrRefs(recipe.Ingredients),
	}
}

func recipeToDetailResponse(recipe models.Recipe) RecipeDetailResponse {
	return RecipeDetailResponse{
		RecipeResponse: recipeToResponse(recipe),
		Description:    recipe.Description,
		Image:          recipe.Image,
	}
}

// paramsToIDs parses a comma-separated list of integer ids
func paramsToIDs(qs string) ([]uint, error) {
	parts := strings.Split(qs, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// getOwnedRecipe loads a recipe by id restricted to the owner. Recipes of
// other users read as not found.
func (h *Handler) getOwnedRecipe(id uint64, userID uint, preload bool) (*models.Recipe, error) {
	query := h.db.Where("id = ? AND user_id = ?", id, userID)
	if preload {
		query = query.Preload("Tags").Preload("Ingredients")
	}
	var recipe models.Recipe
	if err := query.First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// List returns the caller's recipes, newest first
// @Summary List recipes
// @Description List the authenticated user's recipes, optionally filtered by tag or ingredient ids
// @Tags recipes
// @Produce json
// @Param tags query string false "Comma separated list of tag IDs to filter"
// @Param ingredients query string false "Comma separated list of ingredient IDs to filter"
// @Success 200 {array} RecipeResponse
// @Failure 400 {object} map[string]string "Invalid filter value"
// @Security BearerAuth
// @Router /recipes [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	query := h.db.Model(&models.Recipe{}).
		Preload("Tags").Preload("Ingredients").
		Where("recipes.user_id = ?", userID)

	filtered := false
	if raw := c.Query("tags"); raw != "" {
		tagIDs, err := paramsToIDs(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tags filter"})
			return
		}
		query = query.
			Joins("INNER JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", tagIDs)
		filtered = true
	}
	if raw := c.Query("ingredients"); raw != "" {
		ingredientIDs, err := paramsToIDs(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ingredients filter"})
			return
		}
		query = query.
			Joins("INNER JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", ingredientIDs)
		filtered = true
	}

	if filtered {
		// Joining a many-valued relation repeats a recipe matching
		// several requested ids
		query = query.Distinct("recipes.*")
	}

	var recipes []models.Recipe
	if err := query.Order("recipes.id DESC").Find(&recipes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	responses := make([]RecipeResponse, len(recipes))
	for i, recipe := range recipes {
		responses[i] = recipeToResponse(recipe)
	}

	c.JSON(http.StatusOK, responses)
}

// Get returns one recipe with full detail
// @Summary Get a recipe
// @Description Get a recipe owned by the caller
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} RecipeDetailResponse
// @Failure 404 {object} map[string]string "Recipe not found"
// @Security BearerAuth
// @Router /recipes/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	recipe, err := h.getOwnedRecipe(id, userID, true)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, recipeToDetailResponse(*recipe))
}

// Create creates a recipe owned by the caller
// @Summary Create a recipe
// @Description Create a recipe; submitted tags and ingredients are created per name when missing
// @Tags recipes
// @Accept json
// @Produce json
// @Param request body CreateRecipeRequest true "Recipe details"
// @Success 201 {object} RecipeDetailResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /recipes [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := models.Recipe{
		UserID:      userID,
		Title:       req.Title,
		TimeMinutes: *req.TimeMinutes,
		Price:       *req.Price,
		Link:        req.Link,
		Description: req.Description,
	}

	if err := h.db.Create(&recipe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	if err := h.setTags(&recipe, userID, req.Tags); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set tags"})
		return
	}
	if err := h.setIngredients(&recipe, userID, req.Ingredients); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set ingredients"})
		return
	}

	created, err := h.getOwnedRecipe(uint64(recipe.ID), userID, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusCreated, recipeToDetailResponse(*created))
}

// Update updates the provided fields of a recipe
// @Summary Update a recipe
// @Description Update a recipe; a submitted tag or ingredient list (even empty) replaces the existing associations, an omitted one leaves them untouched
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param request body UpdateRecipeRequest true "Fields to update"
// @Success 200 {object} RecipeDetailResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Recipe not found"
// @Security BearerAuth
// @Router /recipes/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	recipe, err := h.getOwnedRecipe(id, userID, false)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.TimeMinutes != nil {
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		recipe.Price = *req.Price
	}
	if req.Link != nil {
		recipe.Link = *req.Link
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}

	if err := h.db.Save(recipe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	if req.Tags != nil {
		if err := h.setTags(recipe, userID, *req.Tags); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set tags"})
			return
		}
	}
	if req.Ingredients != nil {
		if err := h.setIngredients(recipe, userID, *req.Ingredients); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set ingredients"})
			return
		}
	}

	updated, err := h.getOwnedRecipe(id, userID, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, recipeToDetailResponse(*updated))
}

// Delete removes a recipe; its tags and ingredients stay in place
// @Summary Delete a recipe
// @Description Delete a recipe owned by the caller
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Recipe not found"
// @Security BearerAuth
// @Router /recipes/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	recipe, err := h.getOwnedRecipe(id, userID, false)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	if err := h.db.Delete(recipe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadImage stores an image for a recipe
// @Summary Upload a recipe image
// @Description Upload an image for a recipe as multipart form data
// @Tags recipes
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Recipe ID"
// @Param image formData file true "Image file (jpeg, png, gif or webp)"
// @Success 200 {object} RecipeImageResponse
// @Failure 400 {object} map[string]string "Missing or invalid image"
// @Failure 404 {object} map[string]string "Recipe not found"
// @Security BearerAuth
// @Router /recipes/{id}/upload_image [post]
func (h *Handler) UploadImage(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	recipe, err := h.getOwnedRecipe(id, userID, false)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
		return
	}

	format, err := images.DetectFormat(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image"})
		return
	}

	name := uuid.NewString() + "." + formatExtension(format)
	if err := h.store.Save(name, data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	// Replacing an image drops the previous file
	if recipe.Image != "" {
		_ = h.store.Delete(strings.TrimPrefix(recipe.Image, "/media/recipes/"))
	}

	recipe.Image = "/media/recipes/" + name
	if err := h.db.Save(recipe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	c.JSON(http.StatusOK, RecipeImageResponse{ID: recipe.ID, Image: recipe.Image})
}

func formatExtension(format string) string {
	if format == "jpeg" {
		return "jpg"
	}
	return format
}

// RegisterRoutes registers recipe routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/upload_image", h.UploadImage)
}
