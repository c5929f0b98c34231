package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskmgr/taskmanager-api/internal/models"
	"github.com/taskmgr/taskmanager-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrMemberNotFound  = errors.New("member user not found")
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateProject creates a new project owned by the given user.
func (s *ProjectService) CreateProject(ownerID uint64, name string) (*models.Project, error) {
	if strings.TrimSpace(name) == "" {
		name = models.DefaultName
	}

	project := &models.Project{
		Name:    name,
		OwnerID: ownerID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.projectRepo.FindByID(project.ID, "Owner", "OtherUsers")
}

// ListProjectsForUser returns projects the user owns or is a member of.
func (s *ProjectService) ListProjectsForUser(userID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListVisibleToUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// UpdateProjectInput represents modifiable project fields. A nil OtherUserIDs
// leaves the member set untouched.
type UpdateProjectInput struct {
	Name         string
	OtherUserIDs *[]uint64
}

// UpdateProject renames a project and optionally replaces its member set.
func (s *ProjectService) UpdateProject(projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	// Resolve the member set up front: Association.Replace would upsert a
	// stub user row for an unknown ID, so every ID must name a registered
	// user before anything is written.
	if input.OtherUserIDs != nil {
		for _, id := range *input.OtherUserIDs {
			if _, err := s.userRepo.FindByID(id); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrMemberNotFound
				}
				return nil, fmt.Errorf("failed to look up user %d: %w", id, err)
			}
		}
	}

	name := input.Name
	if strings.TrimSpace(name) == "" {
		name = models.DefaultName
	}
	project.Name = name

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	if input.OtherUserIDs != nil {
		if err := s.projectRepo.ReplaceMembers(projectID, *input.OtherUserIDs); err != nil {
			return nil, fmt.Errorf("failed to replace members: %w", err)
		}
	}

	return s.projectRepo.FindByID(projectID, "Owner", "OtherUsers")
}

// DeleteProject removes a project together with all of its tasks.
func (s *ProjectService) DeleteProject(projectID uint64) error {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// AddMembersReport lists the outcome of a bulk invite: which users were added
// and which emails did not resolve to a registered user.
type AddMembersReport struct {
	Added   []models.User
	Skipped []string
}

// AddMembers invites users to a project by email. Emails are matched
// case-insensitively; unresolvable ones are skipped and reported instead of
// failing the call, and re-adding an existing member is a no-op.
func (s *ProjectService) AddMembers(projectID uint64, emails []string) (*AddMembersReport, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	report := &AddMembersReport{
		Added:   []models.User{},
		Skipped: []string{},
	}

	for _, email := range emails {
		user, err := s.userRepo.FindByEmail(email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				report.Skipped = append(report.Skipped, email)
				continue
			}
			return nil, fmt.Errorf("failed to look up %q: %w", email, err)
		}

		if err := s.projectRepo.AddMember(projectID, user.ID); err != nil {
			return nil, fmt.Errorf("failed to add member %q: %w", email, err)
		}

		report.Added = append(report.Added, *user)
	}

	return report, nil
}
