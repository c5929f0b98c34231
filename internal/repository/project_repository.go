package repository

import (
	"github.com/taskmgr/taskmanager-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// ListVisibleToUser lists projects the user owns or is a member of, deduplicated
func (r *GormProjectRepository) ListVisibleToUser(userID uint64) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Distinct("projects.*").
		Joins("LEFT JOIN project_users ON project_users.project_id = projects.id").
		Where("projects.owner_id = ? OR project_users.user_id = ?", userID, userID).
		Preload("Owner").
		Preload("OtherUsers").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete deletes a project and all related data in a transaction. The cascade
// must be atomic so a crash cannot leave tasks pointing at a deleted project.
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Exec("DELETE FROM project_users WHERE project_id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

// AddMember adds a user to the project's member set. The join table has a
// composite primary key, so re-adding an existing member is a no-op.
func (r *GormProjectRepository) AddMember(projectID, userID uint64) error {
	return r.db.
		Table("project_users").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(map[string]interface{}{
			"project_id": projectID,
			"user_id":    userID,
		}).Error
}

// ReplaceMembers replaces the project's member set
func (r *GormProjectRepository) ReplaceMembers(projectID uint64, userIDs []uint64) error {
	users := make([]models.User, len(userIDs))
	for i, id := range userIDs {
		users[i] = models.User{ID: id}
	}

	return r.db.
		Model(&models.Project{ID: projectID}).
		Association("OtherUsers").
		Replace(users)
}
