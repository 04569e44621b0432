package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mediantar/mediantar/internal/config"
	"github.com/mediantar/mediantar/internal/constants"
	"github.com/mediantar/mediantar/internal/models"
	"github.com/mediantar/mediantar/internal/provider"
	"github.com/mediantar/mediantar/internal/queue"
	"github.com/mediantar/mediantar/internal/repository"
	"github.com/mediantar/mediantar/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Customer{}, &models.Courier{}, &models.Delivery{}, &models.MessageTemplate{})
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	cfg := &config.Config{JWT: config.JWTConfig{SecretKey: "handler-secret", ExpireHours: 1}}
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	courierRepo := repository.NewCourierRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	queueClient, _ := queue.NewClient(nil)
	auth := service.NewAuthService(cfg, userRepo)

	container := &provider.Container{
		Config:          cfg,
		QueueClient:     queueClient,
		UserRepo:        userRepo,
		CustomerRepo:    customerRepo,
		CourierRepo:     courierRepo,
		DeliveryRepo:    deliveryRepo,
		AuthService:     auth,
		CourierService:  service.NewCourierService(db, courierRepo, userRepo, deliveryRepo, auth),
		DeliveryService: service.NewDeliveryService(db, deliveryRepo, customerRepo, courierRepo, queueClient),
	}
	return New(container), db
}

func serveWithPrincipal(handler gin.HandlerFunc, principal service.Principal, req *http.Request) *httptest.ResponseRecorder {
	engine := gin.New()
	engine.Any("/*path", func(c *gin.Context) {
		c.Set(ContextPrincipalKey, principal)
		handler(c)
	})
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func adminPrincipal() service.Principal {
	return service.Principal{UserID: 1, Username: "admin", Role: constants.RoleAdmin}
}

func TestListDeliveriesFiltersByCourierQuery(t *testing.T) {
	handler, db := setupHandlerTest(t)

	customer := &models.Customer{Name: "Ibu Sari", Phone: "0812", Address: "Jl. Melati 1"}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	andi := &models.Courier{Name: "Andi", Phone: "0813", IsAvailable: true}
	budi := &models.Courier{Name: "Budi", Phone: "0814", IsAvailable: true}
	if err := db.Create(andi).Error; err != nil {
		t.Fatalf("create courier failed: %v", err)
	}
	if err := db.Create(budi).Error; err != nil {
		t.Fatalf("create courier failed: %v", err)
	}
	for _, d := range []*models.Delivery{
		{OrderNo: "MA-001", CustomerID: customer.ID, CourierID: &andi.ID, Status: constants.DeliveryStatusOnDelivery, DeliveryDate: time.Now()},
		{OrderNo: "MA-002", CustomerID: customer.ID, CourierID: &budi.ID, Status: constants.DeliveryStatusOnDelivery, DeliveryDate: time.Now()},
		{OrderNo: "MA-003", CustomerID: customer.ID, Status: constants.DeliveryStatusPending, DeliveryDate: time.Now()},
	} {
		if err := db.Create(d).Error; err != nil {
			t.Fatalf("create delivery failed: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/deliveries?courier_id=%d", andi.ID), nil)
	recorder := serveWithPrincipal(handler.ListDeliveries, adminPrincipal(), req)

	var body struct {
		StatusCode int               `json:"status_code"`
		Data       []models.Delivery `json:"data"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if body.StatusCode != 0 {
		t.Fatalf("expected success envelope, got %d", body.StatusCode)
	}
	if len(body.Data) != 1 {
		t.Fatalf("expected 1 delivery for courier %d, got %d", andi.ID, len(body.Data))
	}
	if body.Data[0].OrderNo != "MA-001" {
		t.Fatalf("expected MA-001, got %s", body.Data[0].OrderNo)
	}
	if body.Data[0].CourierID == nil || *body.Data[0].CourierID != andi.ID {
		t.Fatalf("expected delivery assigned to courier %d", andi.ID)
	}
}
