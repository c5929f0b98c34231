package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskmgr/taskmanager-api/internal/models"
	"github.com/taskmgr/taskmanager-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTaskService(t *testing.T) (*TaskService, *gorm.DB, *models.Project, *models.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.Project{},
		&models.Task{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	user := createTestUser(t, db, "creator@x.com")
	project := &models.Project{Name: "Sprint 1", OwnerID: user.ID}
	require.NoError(t, db.Create(project).Error)

	return NewTaskService(repository.NewTaskRepository(db), repository.NewUserRepository(db)), db, project, user
}

func TestTaskService_CreateTask(t *testing.T) {
	svc, _, project, creator := setupTaskService(t)

	task, err := svc.CreateTask(project.ID, creator.ID, TaskInput{
		Name:       "Fix bug",
		Estimation: 5,
		Status:     models.TaskStatusNotAssigned,
	})
	require.NoError(t, err)
	require.Equal(t, creator.ID, task.CreatedByID)
	require.False(t, task.CreatedAt.IsZero())
	require.Nil(t, task.AssignedToID)
}

func TestTaskService_CreateTaskDefaultsName(t *testing.T) {
	svc, _, project, creator := setupTaskService(t)

	task, err := svc.CreateTask(project.ID, creator.ID, TaskInput{
		Estimation: 1,
		Status:     models.TaskStatusNotAssigned,
	})
	require.NoError(t, err)
	require.Equal(t, models.DefaultName, task.Name)
}

func TestTaskService_ValidationFailsFast(t *testing.T) {
	svc, db, project, creator := setupTaskService(t)

	_, err := svc.CreateTask(project.ID, creator.ID, TaskInput{
		Name:       "Fix bug",
		Estimation: 4,
		Status:     models.TaskStatusNotAssigned,
	})
	require.ErrorIs(t, err, ErrInvalidEstimation)

	_, err = svc.CreateTask(project.ID, creator.ID, TaskInput{
		Name:       "Fix bug",
		Estimation: 5,
		Status:     "DONE",
	})
	require.ErrorIs(t, err, ErrInvalidStatus)

	ghost := uint64(9999)
	_, err = svc.CreateTask(project.ID, creator.ID, TaskInput{
		Name:         "Fix bug",
		Estimation:   5,
		Status:       models.TaskStatusNotAssigned,
		AssignedToID: &ghost,
	})
	require.ErrorIs(t, err, ErrAssigneeNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Task{}).Count(&count).Error)
	require.Zero(t, count, "rejected input must not reach the store")
}

func TestTaskService_UpdateTaskKeepsProvenance(t *testing.T) {
	svc, _, project, creator := setupTaskService(t)

	task, err := svc.CreateTask(project.ID, creator.ID, TaskInput{
		Name:       "Fix bug",
		Estimation: 5,
		Status:     models.TaskStatusNotAssigned,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTask(task.ID, TaskInput{
		Name:       "Fix bug properly",
		Estimation: 13,
		Status:     models.TaskStatusInProgress,
	})
	require.NoError(t, err)
	require.Equal(t, task.ProjectID, updated.ProjectID)
	require.Equal(t, task.CreatedByID, updated.CreatedByID)
	require.EqualValues(t, 13, updated.Estimation)
}

func TestTaskService_DeleteTask(t *testing.T) {
	svc, _, project, creator := setupTaskService(t)

	task, err := svc.CreateTask(project.ID, creator.ID, TaskInput{
		Name:       "Fix bug",
		Estimation: 2,
		Status:     models.TaskStatusClosed,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(task.ID))
	require.ErrorIs(t, svc.DeleteTask(task.ID), ErrTaskNotFound)
}
