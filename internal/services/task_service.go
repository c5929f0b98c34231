package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskmgr/taskmanager-api/internal/models"
	"github.com/taskmgr/taskmanager-api/internal/repository"
	"github.com/taskmgr/taskmanager-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidEstimation = errors.New("estimation must be one of 1, 2, 3, 5, 8, 13, 21")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrAssigneeNotFound  = errors.New("assigned user not found")
)

// TaskService provides business logic for task operations.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// TaskInput represents the modifiable fields of a task.
type TaskInput struct {
	Name         string
	Estimation   models.Estimation
	Status       models.TaskStatus
	AssignedToID *uint64
}

// validate rejects out-of-enumeration values before anything touches the
// store, and resolves the optional assignee.
func (s *TaskService) validate(input TaskInput) error {
	if !input.Estimation.Valid() {
		return ErrInvalidEstimation
	}
	if !input.Status.Valid() {
		return ErrInvalidStatus
	}
	if input.AssignedToID != nil {
		if _, err := s.userRepo.FindByID(*input.AssignedToID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssigneeNotFound
			}
			return fmt.Errorf("failed to find assignee: %w", err)
		}
	}
	return nil
}

// CreateTask creates a task inside a project. CreatedByID and CreatedAt are
// server-assigned, never taken from the request.
func (s *TaskService) CreateTask(projectID, creatorID uint64, input TaskInput) (*models.Task, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	name := input.Name
	if strings.TrimSpace(name) == "" {
		name = models.DefaultName
	}

	task := &models.Task{
		ProjectID:    projectID,
		CreatedByID:  creatorID,
		AssignedToID: input.AssignedToID,
		Name:         name,
		Estimation:   input.Estimation,
		Status:       input.Status,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "CreatedBy", "AssignedTo")
}

// ListTasks returns the tasks of a project with pagination.
func (s *TaskService) ListTasks(projectID uint64, params utils.PaginationParams) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.ListByProject(projectID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// UpdateTask replaces the modifiable fields of a task. Project, creator, and
// creation time stay as they were.
func (s *TaskService) UpdateTask(taskID uint64, input TaskInput) (*models.Task, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	name := input.Name
	if strings.TrimSpace(name) == "" {
		name = models.DefaultName
	}

	task.Name = name
	task.Estimation = input.Estimation
	task.Status = input.Status
	task.AssignedToID = input.AssignedToID

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(taskID, "CreatedBy", "AssignedTo")
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(taskID uint64) error {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
