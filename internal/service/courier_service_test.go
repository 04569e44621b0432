package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/mediantar/mediantar/internal/constants"
	"github.com/mediantar/mediantar/internal/models"
	"github.com/mediantar/mediantar/internal/repository"

	"gorm.io/gorm"
)

func TestCreateCourierCreatesCredentialInSameTransaction(t *testing.T) {
	env := setupServiceTest(t)

	courier := createTestCourier(t, env, "Joko", "joko")
	if !courier.IsAvailable {
		t.Fatalf("expected new courier available by default")
	}

	credential, err := env.userRepo.GetByUsername("joko")
	if err != nil {
		t.Fatalf("credential lookup failed: %v", err)
	}
	if credential == nil {
		t.Fatalf("expected credential row")
	}
	if credential.Role != constants.RoleCourier {
		t.Fatalf("expected courier role, got %s", credential.Role)
	}
	if credential.CourierID == nil || *credential.CourierID != courier.ID {
		t.Fatalf("expected credential bound to courier %d", courier.ID)
	}
	if credential.PasswordHash == "rahasia123" {
		t.Fatalf("expected hashed password, got plaintext")
	}
}

func TestCreateCourierRejectsDuplicateUsername(t *testing.T) {
	env := setupServiceTest(t)
	createTestCourier(t, env, "Joko", "joko")

	_, err := env.couriers.Create(CourierInput{
		Name:     "Joko Dua",
		Phone:    "0812",
		Username: "joko",
		Password: "rahasia123",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	_, total, err := env.couriers.List(repository.CourierListFilter{PageSize: constants.PageSizeAll})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected single courier after rejection, got %d", total)
	}
}

type failingUserRepo struct {
	repository.UserRepository
}

func (r *failingUserRepo) WithTx(tx *gorm.DB) repository.UserRepository {
	return r
}

func (r *failingUserRepo) Create(user *models.User) error {
	return errors.New("simulated credential failure")
}

func TestCreateCourierRollsBackOnCredentialFailure(t *testing.T) {
	env := setupServiceTest(t)
	courierRepo := env.courierRepo
	deliveryRepo := repository.NewDeliveryRepository(env.db)
	failing := &failingUserRepo{UserRepository: repository.NewUserRepository(env.db)}
	svc := NewCourierService(env.db, courierRepo, failing, deliveryRepo, env.auth)

	_, err := svc.Create(CourierInput{
		Name:     "Joko",
		Phone:    "0812",
		Username: "joko",
		Password: "rahasia123",
	})
	if !errors.Is(err, ErrCourierCredentialFailed) {
		t.Fatalf("expected ErrCourierCredentialFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "simulated credential failure") {
		t.Fatalf("expected underlying cause in error, got %v", err)
	}

	_, total, err := courierRepo.List(repository.CourierListFilter{PageSize: constants.PageSizeAll})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected courier insert rolled back, found %d rows", total)
	}
}

func TestUpdateCourierNeverTouchesCredential(t *testing.T) {
	env := setupServiceTest(t)
	courier := createTestCourier(t, env, "Joko", "joko")
	before, _ := env.userRepo.GetByUsername("joko")

	off := false
	updated, err := env.couriers.Update(courier.ID, CourierUpdateInput{Name: "Joko Susilo", Phone: "0899", IsAvailable: &off})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Joko Susilo" || updated.IsAvailable {
		t.Fatalf("expected profile updated, got %+v", updated)
	}

	after, _ := env.userRepo.GetByUsername("joko")
	if after == nil || after.PasswordHash != before.PasswordHash || after.Username != before.Username {
		t.Fatalf("expected credential untouched by profile update")
	}
}

func TestToggleAvailabilityKeepsAssignments(t *testing.T) {
	env := setupServiceTest(t)
	customer := createCompleteCustomer(t, env, "Ibu Siti")
	courier := createTestCourier(t, env, "Joko", "joko")

	delivery, err := env.deliveries.Create(adminPrincipal(), DeliveryInput{CustomerID: customer.ID, CourierID: &courier.ID})
	if err != nil {
		t.Fatalf("create delivery failed: %v", err)
	}

	toggled, err := env.couriers.ToggleAvailability(courier.ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if toggled.IsAvailable {
		t.Fatalf("expected availability off")
	}

	loaded, err := env.deliveries.Get(adminPrincipal(), delivery.ID)
	if err != nil {
		t.Fatalf("get delivery failed: %v", err)
	}
	if loaded.CourierID == nil || *loaded.CourierID != courier.ID {
		t.Fatalf("expected assignment untouched by toggle")
	}
}

func TestDeleteCourierGuardedAndRemovesCredential(t *testing.T) {
	env := setupServiceTest(t)
	customer := createCompleteCustomer(t, env, "Ibu Siti")
	courier := createTestCourier(t, env, "Joko", "joko")

	delivery, err := env.deliveries.Create(adminPrincipal(), DeliveryInput{CustomerID: customer.ID, CourierID: &courier.ID})
	if err != nil {
		t.Fatalf("create delivery failed: %v", err)
	}

	if err := env.couriers.Delete(courier.ID); !errors.Is(err, ErrCourierHasActiveDeliveries) {
		t.Fatalf("expected ErrCourierHasActiveDeliveries, got %v", err)
	}

	if _, err := env.deliveries.MarkCompleted(adminPrincipal(), delivery.ID); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if err := env.couriers.Delete(courier.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	credential, err := env.userRepo.GetByUsername("joko")
	if err != nil {
		t.Fatalf("credential lookup failed: %v", err)
	}
	if credential != nil {
		t.Fatalf("expected credential removed with courier")
	}
}
