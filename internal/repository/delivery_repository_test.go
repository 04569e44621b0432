package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mediantar/mediantar/internal/constants"
	"github.com/mediantar/mediantar/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupDeliveryRepositoryTest(t *testing.T) (*GormDeliveryRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.Courier{}, &models.Delivery{}); err != nil {
		t.Fatalf("migrate delivery models failed: %v", err)
	}
	return NewDeliveryRepository(db), db
}

func createDeliveryTestCustomer(t *testing.T, db *gorm.DB, name string) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		Name:    name,
		Phone:   "0812000000",
		Address: "Jl. Test 1",
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	return customer
}

func createTestDelivery(t *testing.T, db *gorm.DB, customerID uint, orderNo, status string) *models.Delivery {
	t.Helper()
	delivery := &models.Delivery{
		OrderNo:      orderNo,
		CustomerID:   customerID,
		Status:       status,
		DeliveryDate: time.Now(),
	}
	if err := db.Create(delivery).Error; err != nil {
		t.Fatalf("create delivery failed: %v", err)
	}
	return delivery
}

func TestCountActiveByCustomerIgnoresCompleted(t *testing.T) {
	repo, db := setupDeliveryRepositoryTest(t)
	customer := createDeliveryTestCustomer(t, db, "Budi")

	createTestDelivery(t, db, customer.ID, "DO-001", constants.DeliveryStatusPending)
	createTestDelivery(t, db, customer.ID, "DO-002", constants.DeliveryStatusOnDelivery)
	createTestDelivery(t, db, customer.ID, "DO-003", constants.DeliveryStatusCompleted)

	count, err := repo.CountActiveByCustomer(customer.ID)
	if err != nil {
		t.Fatalf("count active failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 active deliveries, got %d", count)
	}
}

func TestListActiveByCustomerOrdersByID(t *testing.T) {
	repo, db := setupDeliveryRepositoryTest(t)
	customer := createDeliveryTestCustomer(t, db, "Sari")
	other := createDeliveryTestCustomer(t, db, "Andi")

	first := createTestDelivery(t, db, customer.ID, "DO-101", constants.DeliveryStatusPending)
	second := createTestDelivery(t, db, customer.ID, "DO-102", constants.DeliveryStatusOnDelivery)
	createTestDelivery(t, db, other.ID, "DO-103", constants.DeliveryStatusPending)

	active, err := repo.ListActiveByCustomer(customer.ID)
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active deliveries, got %d", len(active))
	}
	if active[0].ID != first.ID || active[1].ID != second.ID {
		t.Fatalf("expected deliveries in creation order, got %d then %d", active[0].ID, active[1].ID)
	}
}

func TestListFiltersByStatusAndCourier(t *testing.T) {
	repo, db := setupDeliveryRepositoryTest(t)
	customer := createDeliveryTestCustomer(t, db, "Dewi")
	courier := &models.Courier{Name: "Joko", Phone: "0813", IsAvailable: true}
	if err := db.Create(courier).Error; err != nil {
		t.Fatalf("create courier failed: %v", err)
	}

	assigned := createTestDelivery(t, db, customer.ID, "DO-201", constants.DeliveryStatusOnDelivery)
	assigned.CourierID = &courier.ID
	if err := db.Save(assigned).Error; err != nil {
		t.Fatalf("assign courier failed: %v", err)
	}
	createTestDelivery(t, db, customer.ID, "DO-202", constants.DeliveryStatusCompleted)

	deliveries, total, err := repo.List(DeliveryListFilter{
		Status:    constants.DeliveryStatusOnDelivery,
		CourierID: courier.ID,
		PageSize:  constants.PageSizeAll,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(deliveries) != 1 {
		t.Fatalf("expected 1 delivery, got total=%d len=%d", total, len(deliveries))
	}
	if deliveries[0].OrderNo != "DO-201" {
		t.Fatalf("expected DO-201, got %s", deliveries[0].OrderNo)
	}
}

func TestListDateRangeIsHalfOpen(t *testing.T) {
	repo, db := setupDeliveryRepositoryTest(t)
	customer := createDeliveryTestCustomer(t, db, "Rina")

	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	inside := &models.Delivery{OrderNo: "DO-301", CustomerID: customer.ID, Status: constants.DeliveryStatusPending, DeliveryDate: day}
	outside := &models.Delivery{OrderNo: "DO-302", CustomerID: customer.ID, Status: constants.DeliveryStatusPending, DeliveryDate: day.AddDate(0, 0, 1)}
	for _, d := range []*models.Delivery{inside, outside} {
		if err := db.Create(d).Error; err != nil {
			t.Fatalf("create delivery failed: %v", err)
		}
	}

	from := day
	to := day.AddDate(0, 0, 1)
	deliveries, total, err := repo.List(DeliveryListFilter{DateFrom: &from, DateTo: &to, PageSize: constants.PageSizeAll})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(deliveries) != 1 || deliveries[0].OrderNo != "DO-301" {
		t.Fatalf("expected only DO-301 inside the range, got total=%d", total)
	}
}

func TestGetByOrderNoReturnsNilWhenMissing(t *testing.T) {
	repo, _ := setupDeliveryRepositoryTest(t)
	delivery, err := repo.GetByOrderNo("DO-NOPE")
	if err != nil {
		t.Fatalf("get by order no failed: %v", err)
	}
	if delivery != nil {
		t.Fatalf("expected nil for missing order, got %+v", delivery)
	}
}
