// Package permissions holds the membership model: a single decision function
// answering whether a user may read or write a project or task. Middleware
// and services call it instead of scattering ad hoc ownership checks.
package permissions

import (
	"github.com/taskmgr/taskmanager-api/internal/models"
)

type Action string

const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
)

// Authorize reports whether actor may perform action on target. Target must
// be a models.Project or models.Task (value or pointer) with its member
// relations preloaded; anything else is denied.
//
// Project rules: anyone in the member set (or the owner) may read; only the
// owner may write. Task rules: the creator and the project's members may both
// read and write. The project owner gets no implicit task access; this
// mirrors the historical behavior and is deliberate (see DESIGN.md).
func Authorize(actor models.User, action Action, target any) bool {
	switch t := target.(type) {
	case models.Project:
		return authorizeProject(actor, action, t)
	case *models.Project:
		return t != nil && authorizeProject(actor, action, *t)
	case models.Task:
		return authorizeTask(actor, t)
	case *models.Task:
		return t != nil && authorizeTask(actor, *t)
	}
	return false
}

func authorizeProject(actor models.User, action Action, project models.Project) bool {
	if project.OwnerID == actor.ID {
		return true
	}
	if action == ActionWrite {
		return false
	}
	return isMember(actor, project.OtherUsers)
}

// Task access is the same for read and write: creator or project member.
// Requires task.Project.OtherUsers to be preloaded.
func authorizeTask(actor models.User, task models.Task) bool {
	if task.CreatedByID == actor.ID {
		return true
	}
	return isMember(actor, task.Project.OtherUsers)
}

func isMember(actor models.User, users []models.User) bool {
	for _, u := range users {
		if u.ID == actor.ID {
			return true
		}
	}
	return false
}
