package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mediantar/mediantar/internal/config"
	"github.com/mediantar/mediantar/internal/constants"
	"github.com/mediantar/mediantar/internal/models"
	"github.com/mediantar/mediantar/internal/pricing"
	"github.com/mediantar/mediantar/internal/queue"
	"github.com/mediantar/mediantar/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db          *gorm.DB
	customers   *CustomerService
	couriers    *CourierService
	deliveries  *DeliveryService
	reports     *ReportService
	templates   *TemplateService
	importer    *ImportService
	auth        *AuthService
	userRepo    repository.UserRepository
	courierRepo repository.CourierRepository
}

func testConfig() *config.Config {
	return &config.Config{
		JWT:    config.JWTConfig{SecretKey: "test-secret", ExpireHours: 1},
		Report: config.ReportConfig{CacheTTLSeconds: 0},
	}
}

func setupServiceTest(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Customer{}, &models.Courier{}, &models.Delivery{}, &models.MessageTemplate{})
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	cfg := testConfig()
	customerRepo := repository.NewCustomerRepository(db)
	courierRepo := repository.NewCourierRepository(db)
	userRepo := repository.NewUserRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	calculator := pricing.NewCalculator(pricing.DefaultTariff())
	queueClient, _ := queue.NewClient(nil)

	auth := NewAuthService(cfg, userRepo)
	customers := NewCustomerService(customerRepo, deliveryRepo, calculator)

	return &testEnv{
		db:          db,
		customers:   customers,
		couriers:    NewCourierService(db, courierRepo, userRepo, deliveryRepo, auth),
		deliveries:  NewDeliveryService(db, deliveryRepo, customerRepo, courierRepo, queueClient),
		reports:     NewReportService(cfg, deliveryRepo, courierRepo),
		templates:   NewTemplateService(templateRepo),
		importer:    NewImportService(customers, calculator),
		auth:        auth,
		userRepo:    userRepo,
		courierRepo: courierRepo,
	}
}

func adminPrincipal() Principal {
	return Principal{UserID: 1, Username: "admin", Role: "admin"}
}

func courierPrincipal(courierID uint) Principal {
	return Principal{UserID: 100 + courierID, Username: fmt.Sprintf("courier%d", courierID), Role: "courier", CourierID: courierID}
}

func createCompleteCustomer(t *testing.T, env *testEnv, name string) *models.Customer {
	t.Helper()
	lat, lng := -6.2, 106.8
	km := "2.00"
	fee := int64(6000)
	customer, err := env.customers.Create(CustomerInput{
		Name:        name,
		Phone:       "0812345678",
		Address:     "Jl. Mawar 1",
		Lat:         &lat,
		Lng:         &lng,
		DistanceKm:  &km,
		DeliveryFee: &fee,
	})
	if err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	return customer
}

func createTestCourier(t *testing.T, env *testEnv, name, username string) *models.Courier {
	t.Helper()
	courier, err := env.couriers.Create(CourierInput{
		Name:     name,
		Phone:    "0898765432",
		Username: username,
		Password: "rahasia123",
	})
	if err != nil {
		t.Fatalf("create courier failed: %v", err)
	}
	return courier
}

func deliveryListAll() repository.DeliveryListFilter {
	return repository.DeliveryListFilter{PageSize: constants.PageSizeAll}
}
