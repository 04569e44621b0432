package repository

import (
	"errors"

	"github.com/mediantar/mediantar/internal/models"

	"gorm.io/gorm"
)

// TemplateRepository message template data access interface
type TemplateRepository interface {
	WithTx(tx *gorm.DB) TemplateRepository
	GetByUserAndType(userID uint, templateType string) (*models.MessageTemplate, error)
	ListByUser(userID uint) ([]models.MessageTemplate, error)
	Create(template *models.MessageTemplate) error
	Update(template *models.MessageTemplate) error
	Delete(userID uint, templateType string) error
}

// GormTemplateRepository GORM implementation
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a template repository
func NewTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

// WithTx binds a transaction
func (r *GormTemplateRepository) WithTx(tx *gorm.DB) TemplateRepository {
	return &GormTemplateRepository{db: tx}
}

// GetByUserAndType fetches a user's template for an audience type
func (r *GormTemplateRepository) GetByUserAndType(userID uint, templateType string) (*models.MessageTemplate, error) {
	var template models.MessageTemplate
	err := r.db.Where("user_id = ? AND template_type = ?", userID, templateType).
		First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

// ListByUser lists all templates owned by a user
func (r *GormTemplateRepository) ListByUser(userID uint) ([]models.MessageTemplate, error) {
	var templates []models.MessageTemplate
	if err := r.db.Where("user_id = ?", userID).Order("template_type ASC").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// Create inserts a template
func (r *GormTemplateRepository) Create(template *models.MessageTemplate) error {
	return r.db.Create(template).Error
}

// Update saves a template
func (r *GormTemplateRepository) Update(template *models.MessageTemplate) error {
	return r.db.Save(template).Error
}

// Delete removes a user's template for an audience type
func (r *GormTemplateRepository) Delete(userID uint, templateType string) error {
	return r.db.Where("user_id = ? AND template_type = ?", userID, templateType).
		Delete(&models.MessageTemplate{}).Error
}
