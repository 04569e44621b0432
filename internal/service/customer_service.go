package service

import (
	"strings"

	"github.com/mediantar/mediantar/internal/constants"
	"github.com/mediantar/mediantar/internal/models"
	"github.com/mediantar/mediantar/internal/pricing"
	"github.com/mediantar/mediantar/internal/repository"
)

// CustomerService customer directory operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	deliveryRepo repository.DeliveryRepository
	calculator   *pricing.Calculator
}

// NewCustomerService creates a customer service
func NewCustomerService(customerRepo repository.CustomerRepository, deliveryRepo repository.DeliveryRepository, calculator *pricing.Calculator) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		deliveryRepo: deliveryRepo,
		calculator:   calculator,
	}
}

// CustomerInput create/update payload
type CustomerInput struct {
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	Address     string   `json:"address"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	DistanceKm  *string  `json:"distance_km"`  // localized number accepted
	DeliveryFee *int64   `json:"delivery_fee"`
}

func (in *CustomerInput) validate() error {
	missing := make([]string, 0, 3)
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(in.Address) == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return NewValidationError(missing...)
	}
	if (in.Lat == nil) != (in.Lng == nil) {
		return NewValidationError("lat", "lng")
	}
	if in.DeliveryFee != nil && *in.DeliveryFee < 0 {
		return NewValidationError("delivery_fee")
	}
	return nil
}

// applyInput copies validated input onto a customer row
func (s *CustomerService) applyInput(customer *models.Customer, in CustomerInput) error {
	customer.Name = strings.TrimSpace(in.Name)
	customer.Phone = strings.TrimSpace(in.Phone)
	customer.Address = strings.TrimSpace(in.Address)
	customer.Lat = in.Lat
	customer.Lng = in.Lng
	if in.DeliveryFee != nil {
		customer.DeliveryFee = *in.DeliveryFee
	}
	if in.DistanceKm != nil && strings.TrimSpace(*in.DistanceKm) != "" {
		km, err := ParseLocalizedDecimal(*in.DistanceKm)
		if err != nil {
			return NewValidationError("distance_km")
		}
		if km.IsNegative() {
			return ErrInvalidDistance
		}
		customer.DistanceKm = models.NewDistanceFromDecimal(km)
	}
	return nil
}

// Create adds a customer
func (s *CustomerService) Create(in CustomerInput) (*models.Customer, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	customer := &models.Customer{}
	if err := s.applyInput(customer, in); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, wrapPersistence("customer create", err)
	}
	return customer, nil
}

// Update edits a customer in place
func (s *CustomerService) Update(id uint, in CustomerInput) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, wrapPersistence("customer lookup", err)
	}
	if customer == nil {
		return nil, ErrNotFound
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.applyInput(customer, in); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Update(customer); err != nil {
		return nil, wrapPersistence("customer update", err)
	}
	return customer, nil
}

// Get fetches a customer
func (s *CustomerService) Get(id uint) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, wrapPersistence("customer lookup", err)
	}
	if customer == nil {
		return nil, ErrNotFound
	}
	return customer, nil
}

// Delete removes a customer unless active deliveries still reference it
func (s *CustomerService) Delete(id uint) error {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return wrapPersistence("customer lookup", err)
	}
	if customer == nil {
		return ErrNotFound
	}
	active, err := s.deliveryRepo.CountActiveByCustomer(id)
	if err != nil {
		return wrapPersistence("customer active check", err)
	}
	if active > 0 {
		return ErrCustomerHasActiveDeliveries
	}
	if err := s.customerRepo.Delete(id); err != nil {
		return wrapPersistence("customer delete", err)
	}
	return nil
}

// Search lists customers by substring over name, phone and address
func (s *CustomerService) Search(filter repository.CustomerListFilter) ([]models.Customer, int64, error) {
	if filter.PageSize == 0 {
		filter.PageSize = constants.DefaultPageSize
	}
	if filter.PageSize > constants.MaxPageSize {
		filter.PageSize = constants.MaxPageSize
	}
	customers, total, err := s.customerRepo.List(filter)
	if err != nil {
		return nil, 0, wrapPersistence("customer list", err)
	}
	return customers, total, nil
}

// RecalculateFee rewrites the fee from the stored distance
func (s *CustomerService) RecalculateFee(id uint) (*models.Customer, error) {
	customer, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	fee, err := s.calculator.FeeForDistance(customer.DistanceKm.Decimal)
	if err != nil {
		return nil, err
	}
	customer.DeliveryFee = fee
	if err := s.customerRepo.Update(customer); err != nil {
		return nil, wrapPersistence("customer update", err)
	}
	return customer, nil
}

// RecalculateDistance back-derives the distance from the stored fee
func (s *CustomerService) RecalculateDistance(id uint) (*models.Customer, error) {
	customer, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	km, err := s.calculator.DistanceForFee(customer.DeliveryFee)
	if err != nil {
		return nil, err
	}
	customer.DistanceKm = models.NewDistanceFromDecimal(km)
	if err := s.customerRepo.Update(customer); err != nil {
		return nil, wrapPersistence("customer update", err)
	}
	return customer, nil
}

// CompletenessCheck verifies a customer can back a completed delivery for
// the acting role. Admins need distance and fee; couriers also need both
// coordinates.
func CompletenessCheck(customer *models.Customer, role string) error {
	missing := make([]string, 0, 4)
	if customer.DistanceKm.IsZero() || customer.DistanceKm.IsNegative() {
		missing = append(missing, "distance_km")
	}
	if customer.DeliveryFee <= 0 {
		missing = append(missing, "delivery_fee")
	}
	if role == constants.RoleCourier {
		if customer.Lat == nil {
			missing = append(missing, "lat")
		}
		if customer.Lng == nil {
			missing = append(missing, "lng")
		}
	}
	if len(missing) > 0 {
		return &IncompleteCustomerDataError{Role: role, Missing: missing}
	}
	return nil
}
