package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/mediantar/mediantar/internal/constants"
	"github.com/mediantar/mediantar/internal/logger"
	"github.com/mediantar/mediantar/internal/models"
	"github.com/mediantar/mediantar/internal/queue"
	"github.com/mediantar/mediantar/internal/repository"

	"gorm.io/gorm"
)

// DeliveryService delivery order lifecycle engine
type DeliveryService struct {
	db           *gorm.DB
	deliveryRepo repository.DeliveryRepository
	customerRepo repository.CustomerRepository
	courierRepo  repository.CourierRepository
	queueClient  *queue.Client
	customerMu   *keyedMutex
}

// NewDeliveryService creates a delivery service
func NewDeliveryService(db *gorm.DB, deliveryRepo repository.DeliveryRepository, customerRepo repository.CustomerRepository, courierRepo repository.CourierRepository, queueClient *queue.Client) *DeliveryService {
	return &DeliveryService{
		db:           db,
		deliveryRepo: deliveryRepo,
		customerRepo: customerRepo,
		courierRepo:  courierRepo,
		queueClient:  queueClient,
		customerMu:   newKeyedMutex(),
	}
}

// DeliveryInput create payload
type DeliveryInput struct {
	CustomerID uint   `json:"customer_id"`
	CourierID  *uint  `json:"courier_id"`
	Notes      string `json:"notes"`
}

// Create opens a new pending delivery. A customer may hold at most one
// active order; concurrent creates for the same customer are serialized by
// the per-customer arbiter and conflicts report the blocking orders.
func (s *DeliveryService) Create(principal Principal, in DeliveryInput) (*models.Delivery, error) {
	if in.CustomerID == 0 {
		return nil, NewValidationError("customer_id")
	}
	customer, err := s.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, wrapPersistence("customer lookup", err)
	}
	if customer == nil {
		return nil, ErrNotFound
	}
	if in.CourierID != nil {
		courier, err := s.courierRepo.GetByID(*in.CourierID)
		if err != nil {
			return nil, wrapPersistence("courier lookup", err)
		}
		if courier == nil {
			return nil, ErrNotFound
		}
	}

	key := customerLockKey(in.CustomerID)
	s.customerMu.Lock(key)
	defer s.customerMu.Unlock(key)

	now := time.Now()
	delivery := &models.Delivery{
		OrderNo:      generateOrderNo(),
		CustomerID:   in.CustomerID,
		CourierID:    in.CourierID,
		Status:       constants.DeliveryStatusPending,
		DeliveryDate: truncateToDay(now),
		Notes:        strings.TrimSpace(in.Notes),
	}
	if in.CourierID != nil {
		delivery.AssignedAt = &now
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.deliveryRepo.WithTx(tx)
		active, err := repo.ListActiveByCustomer(in.CustomerID)
		if err != nil {
			return wrapPersistence("active order check", err)
		}
		if len(active) > 0 {
			conflicts := make([]OrderRef, 0, len(active))
			for _, d := range active {
				conflicts = append(conflicts, OrderRef{DeliveryID: d.ID, OrderNo: d.OrderNo, Status: d.Status})
			}
			return &ActiveOrderExistsError{CustomerID: in.CustomerID, Conflicts: conflicts}
		}
		if err := repo.Create(delivery); err != nil {
			return wrapPersistence("delivery create", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyStatus(principal, delivery)
	return delivery, nil
}

// AssignCourier sets the courier on a non-terminal delivery
func (s *DeliveryService) AssignCourier(id, courierID uint) (*models.Delivery, error) {
	delivery, err := s.getExisting(id)
	if err != nil {
		return nil, err
	}
	if delivery.Status == constants.DeliveryStatusCompleted {
		return nil, ErrInvalidStatusTransition
	}
	courier, err := s.courierRepo.GetByID(courierID)
	if err != nil {
		return nil, wrapPersistence("courier lookup", err)
	}
	if courier == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	delivery.CourierID = &courierID
	delivery.AssignedAt = &now
	if err := s.deliveryRepo.Update(delivery); err != nil {
		return nil, wrapPersistence("delivery update", err)
	}
	return delivery, nil
}

// MarkOnDelivery moves pending -> on_delivery and re-stamps AssignedAt
func (s *DeliveryService) MarkOnDelivery(principal Principal, id uint) (*models.Delivery, error) {
	delivery, err := s.getExisting(id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeCourier(principal, delivery); err != nil {
		return nil, err
	}
	if delivery.Status != constants.DeliveryStatusPending {
		return nil, ErrInvalidStatusTransition
	}

	now := time.Now()
	delivery.Status = constants.DeliveryStatusOnDelivery
	delivery.AssignedAt = &now
	if err := s.deliveryRepo.Update(delivery); err != nil {
		return nil, wrapPersistence("delivery update", err)
	}

	s.notifyStatus(principal, delivery)
	return delivery, nil
}

// MarkCompleted finishes a delivery after the role-specific customer
// completeness guard passes. AssignedAt is left untouched.
func (s *DeliveryService) MarkCompleted(principal Principal, id uint) (*models.Delivery, error) {
	delivery, err := s.getExisting(id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeCourier(principal, delivery); err != nil {
		return nil, err
	}
	if !delivery.IsActive() {
		return nil, ErrInvalidStatusTransition
	}

	customer, err := s.customerRepo.GetByID(delivery.CustomerID)
	if err != nil {
		return nil, wrapPersistence("customer lookup", err)
	}
	if customer == nil {
		return nil, ErrNotFound
	}
	if err := CompletenessCheck(customer, principal.Role); err != nil {
		return nil, err
	}

	now := time.Now()
	delivery.Status = constants.DeliveryStatusCompleted
	delivery.CompletedAt = &now
	if err := s.deliveryRepo.Update(delivery); err != nil {
		return nil, wrapPersistence("delivery update", err)
	}

	s.notifyStatus(principal, delivery)
	return delivery, nil
}

// Get fetches a delivery with relations
func (s *DeliveryService) Get(principal Principal, id uint) (*models.Delivery, error) {
	delivery, err := s.deliveryRepo.GetByIDWithRelations(id)
	if err != nil {
		return nil, wrapPersistence("delivery lookup", err)
	}
	if delivery == nil {
		return nil, ErrNotFound
	}
	if err := s.authorizeCourier(principal, delivery); err != nil {
		return nil, err
	}
	return delivery, nil
}

// Delete removes a delivery at any status
func (s *DeliveryService) Delete(id uint) error {
	delivery, err := s.getExisting(id)
	if err != nil {
		return err
	}
	if err := s.deliveryRepo.Delete(delivery.ID); err != nil {
		return wrapPersistence("delivery delete", err)
	}
	return nil
}

// List lists deliveries; courier principals only see their own
func (s *DeliveryService) List(principal Principal, filter repository.DeliveryListFilter) ([]models.Delivery, int64, error) {
	if principal.IsCourier() {
		filter.CourierID = principal.CourierID
	}
	if filter.PageSize == 0 {
		filter.PageSize = constants.DefaultPageSize
	}
	if filter.PageSize > constants.MaxPageSize {
		filter.PageSize = constants.MaxPageSize
	}
	deliveries, total, err := s.deliveryRepo.List(filter)
	if err != nil {
		return nil, 0, wrapPersistence("delivery list", err)
	}
	return deliveries, total, nil
}

func (s *DeliveryService) getExisting(id uint) (*models.Delivery, error) {
	delivery, err := s.deliveryRepo.GetByID(id)
	if err != nil {
		return nil, wrapPersistence("delivery lookup", err)
	}
	if delivery == nil {
		return nil, ErrNotFound
	}
	return delivery, nil
}

// authorizeCourier rejects courier principals acting on another courier's
// delivery. Admins pass.
func (s *DeliveryService) authorizeCourier(principal Principal, delivery *models.Delivery) error {
	if !principal.IsCourier() {
		return nil
	}
	if delivery.CourierID == nil || *delivery.CourierID != principal.CourierID {
		return ErrForbidden
	}
	return nil
}

// notifyStatus enqueues the status notification task. Best effort: a queue
// failure is logged and never blocks the transition.
func (s *DeliveryService) notifyStatus(principal Principal, delivery *models.Delivery) {
	payload := queue.DeliveryStatusNotifyPayload{
		DeliveryID: delivery.ID,
		Status:     delivery.Status,
		ActorID:    principal.UserID,
	}
	if err := s.queueClient.EnqueueDeliveryStatusNotify(payload); err != nil {
		logger.Warnw("delivery_status_notify_enqueue_failed",
			"delivery_id", delivery.ID,
			"status", delivery.Status,
			"error", err,
		)
	}
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func customerLockKey(customerID uint) string {
	return "customer:" + strconv.FormatUint(uint64(customerID), 10)
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("MA%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
