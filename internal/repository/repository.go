package repository

import (
	"github.com/taskmgr/taskmanager-api/internal/models"
	"github.com/taskmgr/taskmanager-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email, case-insensitively
	FindByEmail(email string) (*models.User, error)
}

// TokenRepository defines the interface for auth token data access
type TokenRepository interface {
	// Create creates a new token
	Create(token *models.AuthToken) error

	// FindByKey finds a token by its key with the owning user preloaded
	FindByKey(key string) (*models.AuthToken, error)

	// FindByUserID finds the live token of a user
	FindByUserID(userID uint64) (*models.AuthToken, error)

	// Delete removes a token permanently
	Delete(id uint64) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// ListVisibleToUser lists projects the user owns or is a member of,
	// deduplicated
	ListVisibleToUser(userID uint64) ([]models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete deletes a project and all of its tasks and memberships
	Delete(id uint64) error

	// AddMember adds a user to the project's member set; adding an existing
	// member is a no-op
	AddMember(projectID, userID uint64) error

	// ReplaceMembers replaces the project's member set
	ReplaceMembers(projectID uint64, userIDs []uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByProject retrieves tasks of a project with pagination
	ListByProject(projectID uint64, params utils.PaginationParams) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete deletes a task
	Delete(id uint64) error
}
