package repository

import (
	"errors"

	"github.com/mediantar/mediantar/internal/models"

	"gorm.io/gorm"
)

// CustomerRepository customer data access interface
type CustomerRepository interface {
	WithTx(tx *gorm.DB) CustomerRepository
	GetByID(id uint) (*models.Customer, error)
	ListByIDs(ids []uint) ([]models.Customer, error)
	Create(customer *models.Customer) error
	Update(customer *models.Customer) error
	Delete(id uint) error
	List(filter CustomerListFilter) ([]models.Customer, int64, error)
}

// GormCustomerRepository GORM implementation
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a customer repository
func NewCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// WithTx binds a transaction
func (r *GormCustomerRepository) WithTx(tx *gorm.DB) CustomerRepository {
	return &GormCustomerRepository{db: tx}
}

// GetByID fetches a customer by ID
func (r *GormCustomerRepository) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// ListByIDs fetches customers in bulk
func (r *GormCustomerRepository) ListByIDs(ids []uint) ([]models.Customer, error) {
	if len(ids) == 0 {
		return []models.Customer{}, nil
	}
	var customers []models.Customer
	if err := r.db.Where("id IN ?", ids).Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// Create inserts a customer
func (r *GormCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// Update saves a customer
func (r *GormCustomerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

// Delete removes a customer
func (r *GormCustomerRepository) Delete(id uint) error {
	return r.db.Delete(&models.Customer{}, id).Error
}

// List lists customers
func (r *GormCustomerRepository) List(filter CustomerListFilter) ([]models.Customer, int64, error) {
	query := r.db.Model(&models.Customer{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		condition, argCount := buildLikeCondition(r.db, []string{"name", "phone", "address"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var customers []models.Customer
	if err := query.Order("name ASC").Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}
