package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskmgr/taskmanager-api/internal/dto"
	"github.com/taskmgr/taskmanager-api/internal/models"
)

// taskFixture registers an owner and an invited member and creates a project.
type taskFixture struct {
	env         testEnv
	owner       *models.User
	ownerToken  string
	member      *models.User
	memberToken string
	project     *models.Project
}

func setupTaskFixture(t *testing.T) taskFixture {
	t.Helper()

	env := setupTestEnv(t)
	owner, ownerToken := registerUser(t, env, "a@x.com", models.ProfessionBackend)
	member, memberToken := registerUser(t, env, "b@x.com", models.ProfessionFrontend)

	project, err := env.projectService.CreateProject(owner.ID, "Sprint 1")
	require.NoError(t, err)
	_, err = env.projectService.AddMembers(project.ID, []string{"b@x.com"})
	require.NoError(t, err)

	return taskFixture{
		env:         env,
		owner:       owner,
		ownerToken:  ownerToken,
		member:      member,
		memberToken: memberToken,
		project:     project,
	}
}

func (f taskFixture) tasksPath() string {
	return fmt.Sprintf("/api/projects/%d/tasks", f.project.ID)
}

func (f taskFixture) taskPath(taskID uint64) string {
	return fmt.Sprintf("/api/projects/%d/tasks/%d", f.project.ID, taskID)
}

func TestTaskHandler_CreateTask(t *testing.T) {
	f := setupTaskFixture(t)

	w := doRequest(t, f.env, http.MethodPost, f.tasksPath(), map[string]any{
		"name":       "Fix bug",
		"estimation": 5,
		"status":     "NOT_ASSIGNED",
	}, f.memberToken)

	require.Equal(t, http.StatusCreated, w.Code)

	task := decodeJSON[dto.TaskDTO](t, w)
	require.Equal(t, "Fix bug", task.Name)
	require.EqualValues(t, 5, task.Estimation)
	require.Equal(t, models.TaskStatusNotAssigned, task.Status)
	require.Equal(t, f.member.ID, task.CreatedByID, "creator is the authenticated user")
	require.False(t, task.CreatedAt.IsZero(), "created_at is server-assigned")
}

func TestTaskHandler_CreateTaskInvalidEstimation(t *testing.T) {
	f := setupTaskFixture(t)

	w := doRequest(t, f.env, http.MethodPost, f.tasksPath(), map[string]any{
		"name":       "Fix bug",
		"estimation": 4,
		"status":     "NOT_ASSIGNED",
	}, f.memberToken)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, f.env, http.MethodPost, f.tasksPath(), map[string]any{
		"name":       "Fix bug",
		"estimation": 5,
		"status":     "DONE",
	}, f.memberToken)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Fail-fast: nothing was written.
	var count int64
	require.NoError(t, f.env.db.Model(&models.Task{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestTaskHandler_CreateTaskByStranger(t *testing.T) {
	f := setupTaskFixture(t)
	_, strangerToken := registerUser(t, f.env, "c@x.com", models.ProfessionDevOps)

	w := doRequest(t, f.env, http.MethodPost, f.tasksPath(), map[string]any{
		"name":       "Sneaky",
		"estimation": 1,
		"status":     "NOT_ASSIGNED",
	}, strangerToken)
	require.Equal(t, http.StatusNotFound, w.Code)
}

// The project owner has no implicit access to tasks they did not create:
// only creators and members of the project's member set see them.
func TestTaskHandler_OwnerNotImplicitlyGranted(t *testing.T) {
	f := setupTaskFixture(t)

	task, err := f.env.taskService.CreateTask(f.project.ID, f.member.ID, servicesTaskInput("Fix bug", 5))
	require.NoError(t, err)

	w := doRequest(t, f.env, http.MethodGet, f.taskPath(task.ID), nil, f.ownerToken)
	require.Equal(t, http.StatusNotFound, w.Code)

	// Writes are denied the same way, and read back unchanged.
	w = doRequest(t, f.env, http.MethodPut, f.taskPath(task.ID), map[string]any{
		"name":       "Hijacked",
		"estimation": 8,
		"status":     "IN_PROGRESS",
	}, f.ownerToken)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, f.env, http.MethodDelete, f.taskPath(task.ID), nil, f.ownerToken)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, f.env, http.MethodGet, f.taskPath(task.ID), nil, f.memberToken)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Fix bug", decodeJSON[dto.TaskDTO](t, w).Name)
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	f := setupTaskFixture(t)

	task, err := f.env.taskService.CreateTask(f.project.ID, f.member.ID, servicesTaskInput("Fix bug", 5))
	require.NoError(t, err)

	w := doRequest(t, f.env, http.MethodPut, f.taskPath(task.ID), map[string]any{
		"name":        "Fix bug",
		"estimation":  8,
		"status":      "IN_PROGRESS",
		"assigned_to": f.member.ID,
	}, f.memberToken)

	require.Equal(t, http.StatusOK, w.Code)

	updated := decodeJSON[dto.TaskDTO](t, w)
	require.EqualValues(t, 8, updated.Estimation)
	require.Equal(t, models.TaskStatusInProgress, updated.Status)
	require.NotNil(t, updated.AssignedToID)
	require.Equal(t, f.member.ID, *updated.AssignedToID)
	require.WithinDuration(t, task.CreatedAt, updated.CreatedAt, time.Second, "created_at never changes")
}

func TestTaskHandler_ListTasks(t *testing.T) {
	f := setupTaskFixture(t)

	for i := 0; i < 3; i++ {
		_, err := f.env.taskService.CreateTask(f.project.ID, f.member.ID, servicesTaskInput(fmt.Sprintf("task-%d", i), 3))
		require.NoError(t, err)
	}

	w := doRequest(t, f.env, http.MethodGet, f.tasksPath()+"?page=1&limit=2", nil, f.memberToken)
	require.Equal(t, http.StatusOK, w.Code)

	response := decodeJSON[dto.TaskListResponse](t, w)
	require.Len(t, response.Tasks, 2)
	require.EqualValues(t, 3, response.Pagination.Total)

	// Listing requires project visibility.
	_, strangerToken := registerUser(t, f.env, "c@x.com", models.ProfessionDevOps)
	hidden := doRequest(t, f.env, http.MethodGet, f.tasksPath(), nil, strangerToken)
	require.Equal(t, http.StatusNotFound, hidden.Code)
}

func TestTaskHandler_TaskFromOtherProjectNotFound(t *testing.T) {
	f := setupTaskFixture(t)

	other, err := f.env.projectService.CreateProject(f.member.ID, "Other")
	require.NoError(t, err)
	foreign, err := f.env.taskService.CreateTask(other.ID, f.member.ID, servicesTaskInput("Elsewhere", 1))
	require.NoError(t, err)

	// A task ID addressed under a project it does not belong to is absent.
	w := doRequest(t, f.env, http.MethodGet, f.taskPath(foreign.ID), nil, f.memberToken)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	f := setupTaskFixture(t)

	task, err := f.env.taskService.CreateTask(f.project.ID, f.member.ID, servicesTaskInput("Fix bug", 5))
	require.NoError(t, err)

	w := doRequest(t, f.env, http.MethodDelete, f.taskPath(task.ID), nil, f.memberToken)
	require.Equal(t, http.StatusOK, w.Code)

	gone := doRequest(t, f.env, http.MethodGet, f.taskPath(task.ID), nil, f.memberToken)
	require.Equal(t, http.StatusNotFound, gone.Code)
}
