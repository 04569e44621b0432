package repository

import (
	"errors"

	"github.com/mediantar/mediantar/internal/models"

	"gorm.io/gorm"
)

// CourierRepository courier data access interface
type CourierRepository interface {
	WithTx(tx *gorm.DB) CourierRepository
	GetByID(id uint) (*models.Courier, error)
	ListByIDs(ids []uint) ([]models.Courier, error)
	Create(courier *models.Courier) error
	Update(courier *models.Courier) error
	Delete(id uint) error
	List(filter CourierListFilter) ([]models.Courier, int64, error)
}

// GormCourierRepository GORM implementation
type GormCourierRepository struct {
	db *gorm.DB
}

// NewCourierRepository creates a courier repository
func NewCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{db: db}
}

// WithTx binds a transaction
func (r *GormCourierRepository) WithTx(tx *gorm.DB) CourierRepository {
	return &GormCourierRepository{db: tx}
}

// GetByID fetches a courier by ID
func (r *GormCourierRepository) GetByID(id uint) (*models.Courier, error) {
	var courier models.Courier
	if err := r.db.First(&courier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &courier, nil
}

// ListByIDs fetches couriers in bulk
func (r *GormCourierRepository) ListByIDs(ids []uint) ([]models.Courier, error) {
	if len(ids) == 0 {
		return []models.Courier{}, nil
	}
	var couriers []models.Courier
	if err := r.db.Where("id IN ?", ids).Find(&couriers).Error; err != nil {
		return nil, err
	}
	return couriers, nil
}

// Create inserts a courier
func (r *GormCourierRepository) Create(courier *models.Courier) error {
	return r.db.Create(courier).Error
}

// Update saves a courier
func (r *GormCourierRepository) Update(courier *models.Courier) error {
	return r.db.Save(courier).Error
}

// Delete removes a courier
func (r *GormCourierRepository) Delete(id uint) error {
	return r.db.Delete(&models.Courier{}, id).Error
}

// List lists couriers
func (r *GormCourierRepository) List(filter CourierListFilter) ([]models.Courier, int64, error) {
	query := r.db.Model(&models.Courier{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		condition, argCount := buildLikeCondition(r.db, []string{"name", "phone"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}
	if filter.IsAvailable != nil {
		query = query.Where("is_available = ?", *filter.IsAvailable)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var couriers []models.Courier
	if err := query.Order("name ASC").Find(&couriers).Error; err != nil {
		return nil, 0, err
	}
	return couriers, total, nil
}
