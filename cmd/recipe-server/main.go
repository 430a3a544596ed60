package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/bistapradip/Recipe/pkg/recipe/attrs"
	"github.com/bistapradip/Recipe/pkg/recipe/auth"
	"github.com/bistapradip/Recipe/pkg/recipe/database"
	"github.com/bistapradip/Recipe/pkg/recipe/images"
	"github.com/bistapradip/Recipe/pkg/recipe/models"
	"github.com/bistapradip/Recipe/pkg/recipe/recipes"
	"github.com/bistapradip/Recipe/pkg/recipe/users"

	_ "github.com/bistapradip/Recipe/api/swagger"
)

// @title Recipe API
// @version 1.0
// @description A recipe management API with per-user tags, ingredients and image upload.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Auth token. Format: "Bearer {token}"

func main() {
	// Get database path from environment or use default
	dbPath := os.Getenv("RECIPE_DB_PATH")
	if dbPath == "" {
		dbPath = "recipe.db"
	}

	// Connect to database
	if err := database.Connect(dbPath); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := models.AutoMigrate(database.GetDB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Set up image storage for recipe uploads
	mediaPath := os.Getenv("RECIPE_MEDIA_PATH")
	if mediaPath == "" {
		mediaPath = "media"
	}
	store, err := images.NewStorage(mediaPath, "recipes")
	if err != nil {
		log.Fatalf("Failed to set up image storage: %v", err)
	}

	// Set up Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Uploaded images
	r.Static("/media/recipes", store.BasePath())

	// API routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"service": "recipe-api",
			})
		})

		// User routes: signup and token are public, profile requires auth
		usersHandler := users.NewHandler(database.GetDB())
		usersGroup := api.Group("/users")
		usersHandler.RegisterRoutes(usersGroup)
		usersHandler.RegisterMeRoutes(usersGroup.Group("", auth.AuthMiddleware()))

		// Recipe routes (protected)
		recipesHandler := recipes.NewHandler(database.GetDB(), store)
		recipesHandler.RegisterRoutes(api.Group("/recipes", auth.AuthMiddleware()))

		// Tag and ingredient routes (protected)
		tagsHandler := attrs.NewHandler(database.GetDB(), attrs.Tags)
		tagsHandler.RegisterRoutes(api.Group("/tags", auth.AuthMiddleware()))

		ingredientsHandler := attrs.NewHandler(database.GetDB(), attrs.Ingredients)
		ingredientsHandler.RegisterRoutes(api.Group("/ingredients", auth.AuthMiddleware()))
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting recipe server on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
