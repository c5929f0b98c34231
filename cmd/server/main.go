package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/taskmgr/taskmanager-api/internal/config"
	"github.com/taskmgr/taskmanager-api/internal/database"
	"github.com/taskmgr/taskmanager-api/internal/handlers"
	"github.com/taskmgr/taskmanager-api/internal/middleware"
	"github.com/taskmgr/taskmanager-api/internal/repository"
	"github.com/taskmgr/taskmanager-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenRepo)
	projectService := services.NewProjectService(projectRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Manager API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		requireAuth := middleware.RequireAuth(authService)

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", requireAuth, authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(requireAuth)
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", middleware.RequireProjectAccess(), projectHandler.GetProject)
			projects.PUT("/:id", middleware.RequireProjectAccess(), middleware.RequireProjectOwner(), projectHandler.UpdateProject)
			projects.DELETE("/:id", middleware.RequireProjectAccess(), middleware.RequireProjectOwner(), projectHandler.DeleteProject)
			projects.POST("/:id/add-users-to-project", middleware.RequireProjectAccess(), middleware.RequireProjectOwner(), projectHandler.AddUsers)

			// Task routes, nested under their project
			projects.GET("/:id/tasks", middleware.RequireProjectAccess(), taskHandler.ListTasks)
			projects.POST("/:id/tasks", middleware.RequireProjectAccess(), taskHandler.CreateTask)
			projects.GET("/:id/tasks/:task_id", middleware.RequireProjectAccess(), middleware.RequireTaskAccess(), taskHandler.GetTask)
			projects.PUT("/:id/tasks/:task_id", middleware.RequireProjectAccess(), middleware.RequireTaskAccess(), taskHandler.UpdateTask)
			projects.DELETE("/:id/tasks/:task_id", middleware.RequireProjectAccess(), middleware.RequireTaskAccess(), taskHandler.DeleteTask)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
