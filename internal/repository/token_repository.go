package repository

import (
	"github.com/taskmgr/taskmanager-api/internal/models"
	"gorm.io/gorm"
)

// GormTokenRepository is a GORM implementation of TokenRepository
type GormTokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &GormTokenRepository{db: db}
}

// Create creates a new token
func (r *GormTokenRepository) Create(token *models.AuthToken) error {
	return r.db.Create(token).Error
}

// FindByKey finds a token by its key with the owning user preloaded.
// Struct conditions keep the column quoted per dialect ("key" is reserved
// in MySQL).
func (r *GormTokenRepository) FindByKey(key string) (*models.AuthToken, error) {
	var token models.AuthToken
	if err := r.db.Preload("User").Where(&models.AuthToken{Key: key}).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// FindByUserID finds the live token of a user
func (r *GormTokenRepository) FindByUserID(userID uint64) (*models.AuthToken, error) {
	var token models.AuthToken
	if err := r.db.Where("user_id = ?", userID).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// Delete removes a token permanently. The row is hard-deleted so the old key
// can never resolve again.
func (r *GormTokenRepository) Delete(id uint64) error {
	return r.db.Delete(&models.AuthToken{}, id).Error
}
