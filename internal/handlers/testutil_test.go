package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/taskmgr/taskmanager-api/internal/constants"
	"github.com/taskmgr/taskmanager-api/internal/database"
	"github.com/taskmgr/taskmanager-api/internal/middleware"
	"github.com/taskmgr/taskmanager-api/internal/models"
	"github.com/taskmgr/taskmanager-api/internal/repository"
	"github.com/taskmgr/taskmanager-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db             *gorm.DB
	router         *gin.Engine
	authService    *services.AuthService
	projectService *services.ProjectService
	taskService    *services.TaskService
}

// setupTestEnv builds an in-memory database and a router with the same
// wiring as cmd/server, including the auth and authorization middleware.
func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.Project{},
		&models.Task{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo, tokenRepo)
	projectService := services.NewProjectService(projectRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo)

	authHandler := NewAuthHandler(authService)
	projectHandler := NewProjectHandler(projectService)
	taskHandler := NewTaskHandler(taskService)

	r := gin.New()
	api := r.Group("/api")

	requireAuth := middleware.RequireAuth(authService)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", requireAuth, authHandler.Logout)
	auth.GET("/me", requireAuth, authHandler.GetCurrentUser)

	projects := api.Group("/projects")
	projects.Use(requireAuth)
	projects.POST("", projectHandler.CreateProject)
	projects.GET("", projectHandler.ListProjects)
	projects.GET("/:id", middleware.RequireProjectAccess(), projectHandler.GetProject)
	projects.PUT("/:id", middleware.RequireProjectAccess(), middleware.RequireProjectOwner(), projectHandler.UpdateProject)
	projects.DELETE("/:id", middleware.RequireProjectAccess(), middleware.RequireProjectOwner(), projectHandler.DeleteProject)
	projects.POST("/:id/add-users-to-project", middleware.RequireProjectAccess(), middleware.RequireProjectOwner(), projectHandler.AddUsers)
	projects.GET("/:id/tasks", middleware.RequireProjectAccess(), taskHandler.ListTasks)
	projects.POST("/:id/tasks", middleware.RequireProjectAccess(), taskHandler.CreateTask)
	projects.GET("/:id/tasks/:task_id", middleware.RequireProjectAccess(), middleware.RequireTaskAccess(), taskHandler.GetTask)
	projects.PUT("/:id/tasks/:task_id", middleware.RequireProjectAccess(), middleware.RequireTaskAccess(), taskHandler.UpdateTask)
	projects.DELETE("/:id/tasks/:task_id", middleware.RequireProjectAccess(), middleware.RequireTaskAccess(), taskHandler.DeleteTask)

	return testEnv{
		db:             db,
		router:         r,
		authService:    authService,
		projectService: projectService,
		taskService:    taskService,
	}
}

// registerUser registers a user through the service and returns the user and
// their token key.
func registerUser(t *testing.T, env testEnv, email string, profession models.Profession) (*models.User, string) {
	t.Helper()

	user, token, err := env.authService.Register(services.RegisterInput{
		Email:      email,
		Password:   "supersecret",
		Name:       email,
		Profession: profession,
	})
	require.NoError(t, err)
	return user, token.Key
}

// doRequest performs a request against the test router. A non-empty token is
// sent as "Authorization: Token <value>".
func doRequest(t *testing.T, env testEnv, method, path string, payload any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", constants.AuthScheme+" "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func servicesTaskInput(name string, estimation int16) services.TaskInput {
	return services.TaskInput{
		Name:       name,
		Estimation: models.Estimation(estimation),
		Status:     models.TaskStatusNotAssigned,
	}
}
