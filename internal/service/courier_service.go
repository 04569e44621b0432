package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mediantar/mediantar/internal/cache"
	"github.com/mediantar/mediantar/internal/constants"
	"github.com/mediantar/mediantar/internal/models"
	"github.com/mediantar/mediantar/internal/repository"

	"gorm.io/gorm"
)

// CourierService courier directory operations
type CourierService struct {
	db           *gorm.DB
	courierRepo  repository.CourierRepository
	userRepo     repository.UserRepository
	deliveryRepo repository.DeliveryRepository
	authService  *AuthService
	usernameMu   *keyedMutex
}

// NewCourierService creates a courier service
func NewCourierService(db *gorm.DB, courierRepo repository.CourierRepository, userRepo repository.UserRepository, deliveryRepo repository.DeliveryRepository, authService *AuthService) *CourierService {
	return &CourierService{
		db:           db,
		courierRepo:  courierRepo,
		userRepo:     userRepo,
		deliveryRepo: deliveryRepo,
		authService:  authService,
		usernameMu:   newKeyedMutex(),
	}
}

// CourierInput create payload: profile plus login credential
type CourierInput struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	IsAvailable *bool  `json:"is_available"`
	Username    string `json:"username"`
	Password    string `json:"password"`
}

// CourierUpdateInput update payload, credential is never touched here
type CourierUpdateInput struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	IsAvailable *bool  `json:"is_available"`
}

func (in *CourierInput) validate() error {
	missing := make([]string, 0, 4)
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(in.Username) == "" {
		missing = append(missing, "username")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return NewValidationError(missing...)
	}
	return nil
}

// Create adds a courier and its login credential in one transaction
func (s *CourierService) Create(in CourierInput) (*models.Courier, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.authService.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(in.Username)
	s.usernameMu.Lock(username)
	defer s.usernameMu.Unlock(username)

	existing, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, wrapPersistence("username check", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := s.authService.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	courier := &models.Courier{
		Name:        strings.TrimSpace(in.Name),
		Phone:       strings.TrimSpace(in.Phone),
		IsAvailable: true,
	}
	if in.IsAvailable != nil {
		courier.IsAvailable = *in.IsAvailable
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.courierRepo.WithTx(tx).Create(courier); err != nil {
			return wrapPersistence("courier create", err)
		}
		credential := &models.User{
			Username:     username,
			PasswordHash: hash,
			Role:         constants.RoleCourier,
			CourierID:    &courier.ID,
		}
		if err := s.userRepo.WithTx(tx).Create(credential); err != nil {
			return fmt.Errorf("%w: %v", ErrCourierCredentialFailed, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return courier, nil
}

// Update edits name, phone and availability
func (s *CourierService) Update(id uint, in CourierUpdateInput) (*models.Courier, error) {
	courier, err := s.courierRepo.GetByID(id)
	if err != nil {
		return nil, wrapPersistence("courier lookup", err)
	}
	if courier == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Phone) == "" {
		return nil, NewValidationError("name", "phone")
	}
	courier.Name = strings.TrimSpace(in.Name)
	courier.Phone = strings.TrimSpace(in.Phone)
	if in.IsAvailable != nil {
		courier.IsAvailable = *in.IsAvailable
	}
	if err := s.courierRepo.Update(courier); err != nil {
		return nil, wrapPersistence("courier update", err)
	}
	return courier, nil
}

// Get fetches a courier
func (s *CourierService) Get(id uint) (*models.Courier, error) {
	courier, err := s.courierRepo.GetByID(id)
	if err != nil {
		return nil, wrapPersistence("courier lookup", err)
	}
	if courier == nil {
		return nil, ErrNotFound
	}
	return courier, nil
}

// ToggleAvailability flips the availability flag. In-flight deliveries keep
// their assignment; availability is advisory for new assignments only.
func (s *CourierService) ToggleAvailability(id uint) (*models.Courier, error) {
	courier, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	courier.IsAvailable = !courier.IsAvailable
	if err := s.courierRepo.Update(courier); err != nil {
		return nil, wrapPersistence("courier update", err)
	}
	return courier, nil
}

// Delete removes a courier and its credential unless active deliveries
// still reference it
func (s *CourierService) Delete(id uint) error {
	courier, err := s.courierRepo.GetByID(id)
	if err != nil {
		return wrapPersistence("courier lookup", err)
	}
	if courier == nil {
		return ErrNotFound
	}
	active, err := s.deliveryRepo.CountActiveByCourier(id)
	if err != nil {
		return wrapPersistence("courier active check", err)
	}
	if active > 0 {
		return ErrCourierHasActiveDeliveries
	}
	credential, err := s.userRepo.GetByCourierID(id)
	if err != nil {
		return wrapPersistence("courier credential lookup", err)
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).DeleteByCourierID(id); err != nil {
			return err
		}
		return s.courierRepo.WithTx(tx).Delete(id)
	})
	if err != nil {
		return wrapPersistence("courier delete", err)
	}
	if credential != nil {
		_ = cache.DelAuthState(context.Background(), credential.ID)
	}
	return nil
}

// List lists couriers
func (s *CourierService) List(filter repository.CourierListFilter) ([]models.Courier, int64, error) {
	if filter.PageSize == 0 {
		filter.PageSize = constants.DefaultPageSize
	}
	if filter.PageSize > constants.MaxPageSize {
		filter.PageSize = constants.MaxPageSize
	}
	couriers, total, err := s.courierRepo.List(filter)
	if err != nil {
		return nil, 0, wrapPersistence("courier list", err)
	}
	return couriers, total, nil
}
