package repository

import (
	"errors"

	"github.com/mediantar/mediantar/internal/constants"
	"github.com/mediantar/mediantar/internal/models"

	"gorm.io/gorm"
)

// DeliveryRepository delivery data access interface
type DeliveryRepository interface {
	WithTx(tx *gorm.DB) DeliveryRepository
	GetByID(id uint) (*models.Delivery, error)
	GetByIDWithRelations(id uint) (*models.Delivery, error)
	GetByOrderNo(orderNo string) (*models.Delivery, error)
	Create(delivery *models.Delivery) error
	Update(delivery *models.Delivery) error
	Delete(id uint) error
	List(filter DeliveryListFilter) ([]models.Delivery, int64, error)
	ListActiveByCustomer(customerID uint) ([]models.Delivery, error)
	CountActiveByCustomer(customerID uint) (int64, error)
	CountActiveByCourier(courierID uint) (int64, error)
}

// GormDeliveryRepository GORM implementation
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewDeliveryRepository creates a delivery repository
func NewDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// WithTx binds a transaction
func (r *GormDeliveryRepository) WithTx(tx *gorm.DB) DeliveryRepository {
	return &GormDeliveryRepository{db: tx}
}

// GetByID fetches a delivery by ID
func (r *GormDeliveryRepository) GetByID(id uint) (*models.Delivery, error) {
	var delivery models.Delivery
	if err := r.db.First(&delivery, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &delivery, nil
}

// GetByIDWithRelations fetches a delivery with customer and courier preloaded
func (r *GormDeliveryRepository) GetByIDWithRelations(id uint) (*models.Delivery, error) {
	var delivery models.Delivery
	if err := r.db.Preload("Customer").Preload("Courier").First(&delivery, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &delivery, nil
}

// GetByOrderNo fetches a delivery by order number
func (r *GormDeliveryRepository) GetByOrderNo(orderNo string) (*models.Delivery, error) {
	var delivery models.Delivery
	if err := r.db.Where("order_no = ?", orderNo).First(&delivery).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &delivery, nil
}

// Create inserts a delivery
func (r *GormDeliveryRepository) Create(delivery *models.Delivery) error {
	return r.db.Create(delivery).Error
}

// Update saves a delivery
func (r *GormDeliveryRepository) Update(delivery *models.Delivery) error {
	return r.db.Save(delivery).Error
}

// Delete removes a delivery
func (r *GormDeliveryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Delivery{}, id).Error
}

// List lists deliveries
func (r *GormDeliveryRepository) List(filter DeliveryListFilter) ([]models.Delivery, int64, error) {
	query := r.db.Model(&models.Delivery{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ActiveOnly {
		query = query.Where("status IN ?", constants.ActiveDeliveryStatuses())
	}
	if filter.CustomerID != 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.CourierID != 0 {
		query = query.Where("courier_id = ?", filter.CourierID)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no = ?", filter.OrderNo)
	}
	if filter.DateFrom != nil {
		query = query.Where("delivery_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("delivery_date < ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if filter.WithRelations {
		query = query.Preload("Customer").Preload("Courier")
	}

	var deliveries []models.Delivery
	if err := query.Order("id DESC").Find(&deliveries).Error; err != nil {
		return nil, 0, err
	}
	return deliveries, total, nil
}

// ListActiveByCustomer lists a customer's pending and on-delivery orders
func (r *GormDeliveryRepository) ListActiveByCustomer(customerID uint) ([]models.Delivery, error) {
	var deliveries []models.Delivery
	err := r.db.Where("customer_id = ? AND status IN ?", customerID, constants.ActiveDeliveryStatuses()).
		Order("id ASC").
		Find(&deliveries).Error
	if err != nil {
		return nil, err
	}
	return deliveries, nil
}

// CountActiveByCustomer counts a customer's active deliveries
func (r *GormDeliveryRepository) CountActiveByCustomer(customerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Delivery{}).
		Where("customer_id = ? AND status IN ?", customerID, constants.ActiveDeliveryStatuses()).
		Count(&count).Error
	return count, err
}

// CountActiveByCourier counts a courier's active deliveries
func (r *GormDeliveryRepository) CountActiveByCourier(courierID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Delivery{}).
		Where("courier_id = ? AND status IN ?", courierID, constants.ActiveDeliveryStatuses()).
		Count(&count).Error
	return count, err
}
