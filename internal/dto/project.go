package dto

import (
	"github.com/taskmgr/taskmanager-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID         uint64    `json:"id"`
	Name       string    `json:"name"`
	Owner      UserDTO   `json:"owner"`
	OtherUsers []UserDTO `json:"other_users"`
}

// AddUsersReport lists the outcome of a bulk invite
type AddUsersReport struct {
	Added   []UserDTO `json:"added"`
	Skipped []string  `json:"skipped"`
}

// ToProjectDTO converts a Project model to ProjectDTO. Owner and OtherUsers
// must be preloaded.
func ToProjectDTO(project models.Project) ProjectDTO {
	others := make([]UserDTO, len(project.OtherUsers))
	for i, u := range project.OtherUsers {
		others[i] = ToUserDTO(u)
	}

	return ProjectDTO{
		ID:         project.ID,
		Name:       project.Name,
		Owner:      ToUserDTO(project.Owner),
		OtherUsers: others,
	}
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p)
	}
	return dtos
}

// ToAddUsersReport converts an invite report to its response form
func ToAddUsersReport(added []models.User, skipped []string) AddUsersReport {
	addedDTOs := make([]UserDTO, len(added))
	for i, u := range added {
		addedDTOs[i] = ToUserDTO(u)
	}

	return AddUsersReport{
		Added:   addedDTOs,
		Skipped: skipped,
	}
}
