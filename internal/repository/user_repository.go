package repository

import (
	"errors"
	"time"

	"github.com/mediantar/mediantar/internal/models"

	"gorm.io/gorm"
)

// UserRepository credential account data access interface
type UserRepository interface {
	WithTx(tx *gorm.DB) UserRepository
	GetByUsername(username string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	GetByCourierID(courierID uint) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	DeleteByCourierID(courierID uint) error
	List(filter UserListFilter) ([]models.User, int64, error)
	TouchLastLogin(id uint, at time.Time) error
}

// GormUserRepository GORM implementation
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// WithTx binds a transaction
func (r *GormUserRepository) WithTx(tx *gorm.DB) UserRepository {
	return &GormUserRepository{db: tx}
}

// GetByUsername fetches a user by login name
func (r *GormUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByID fetches a user by ID
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByCourierID fetches the credential owned by a courier
func (r *GormUserRepository) GetByCourierID(courierID uint) (*models.User, error) {
	var user models.User
	if err := r.db.Where("courier_id = ?", courierID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts a user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update saves a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// DeleteByCourierID removes the credential owned by a courier
func (r *GormUserRepository) DeleteByCourierID(courierID uint) error {
	return r.db.Where("courier_id = ?", courierID).Delete(&models.User{}).Error
}

// List lists users
func (r *GormUserRepository) List(filter UserListFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Keyword != "" {
		query = query.Where("username LIKE ?", "%"+filter.Keyword+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var users []models.User
	if err := query.Order("id DESC").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// TouchLastLogin records a successful login time
func (r *GormUserRepository) TouchLastLogin(id uint, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("last_login_at", at).Error
}
