package main

import (
	"log"
	"time"

	"taskman-be/internal/cache"
	"taskman-be/internal/config"
	"taskman-be/internal/controllers"
	"taskman-be/internal/database"
	"taskman-be/internal/jwt"
	"taskman-be/internal/middleware"
	"taskman-be/internal/repository"
	"taskman-be/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// The token secret has no fallback: a fixed default would let anyone
	// forge tokens, so a missing secret is a startup failure.
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
		cacheClient = nil
	} else {
		log.Println("Connected to Redis cache")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTL)*time.Hour,
	)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, cfg.BcryptCost)
	taskService := service.NewTaskService(taskRepo, cacheClient)

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	taskController := controllers.NewTaskController(taskService)

	// Create a Gin router
	router := gin.Default()

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	api := router.Group("/api")
	{
		// Auth routes - reachable without a token
		auth := api.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
		}

		// Task routes - require JWT authentication
		tasks := api.Group("/tasks")
		tasks.Use(middleware.AuthMiddleware(jwtService))
		{
			tasks.POST("", taskController.CreateTask)
			tasks.GET("", taskController.ListTasks)
			tasks.GET("/:id", taskController.GetTask)
			tasks.PUT("/:id", taskController.UpdateTask)
			tasks.DELETE("/:id", taskController.DeleteTask)
		}
	}

	// Start the server
	log.Printf("Server starting on http://localhost:%s", cfg.Port)
	router.Run(":" + cfg.Port)
}
