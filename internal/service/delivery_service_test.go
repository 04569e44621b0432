package service

import (
	"errors"
	"testing"

	"github.com/mediantar/mediantar/internal/constants"
)

func TestCreateDeliveryRejectsSecondActiveOrder(t *testing.T) {
	env := setupServiceTest(t)
	customer := createCompleteCustomer(t, env, "Ibu Siti")

	first, err := env.deliveries.Create(adminPrincipal(), DeliveryInput{CustomerID: customer.ID})
	if err != nil {
		t.Fatalf("first delivery failed: %v", err)
	}

	_, err = env.deliveries.Create(adminPrincipal(), DeliveryInput{CustomerID: customer.ID})
	var conflict *ActiveOrderExistsError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ActiveOrderExistsError, got %v", err)
	}
	if len(conflict.Conflicts) != 1 || conflict.Conflicts[0].DeliveryID != first.ID {
		t.Fatalf("expected conflict with delivery %d, got %+v", first.ID, conflict.Conflicts)
	}
	if conflict.Conflicts[0].OrderNo != first.OrderNo {
		t.Fatalf("expected conflict order no %s, got %s", first.OrderNo, conflict.Conflicts[0].OrderNo)
	}
}

func TestCreateDeliveryAllowedAfterCompletion(t *testing.T) {
	env := setupServiceTest(t)
	customer := createCompleteCustomer(t, env, "Ibu Siti")

	first, err := env.deliveries.Create(adminPrincipal(), DeliveryInput{CustomerID: customer.ID})
	if err != nil {
		t.Fatalf("first delivery failed: %v", err)
	}
	if _, err := env.deliveries.MarkCompleted(adminPrincipal(), first.ID); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	if _, err := env.deliveries.Create(adminPrincipal(), DeliveryInput{CustomerID: customer.ID}); err != nil {
		t.Fatalf("expected new delivery after completion, got %v", err)
	}
}

func TestCreateDeliveryWithCourierStampsAssignedAt(t *testing.T) {
	env := setupServiceTest(t)
	customer := createCompleteCustomer(t, env, "Pak Budi")
	courier := createTestCourier(t, env, "Joko", "joko")

	delivery, err := env.deliveries.Create(adminPrincipal(), DeliveryInput{CustomerID: customer.ID, CourierID: &courier.ID})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if delivery.Status != constants.DeliveryStatusPending {
		t.Fatalf("expected pending, got %s", delivery.Status)
	}
	if delivery.AssignedAt == nil {
		t.Fatalf("expected AssignedAt to be set on initial assignment")
	}
	if delivery.OrderNo == "" {
		t.Fatalf("expected generated order number")
	}
}

func TestMarkOnDeliveryRestampsAssignedAt(t *testing.T) {
	env := setupServiceTest(t)
	customer := createCompleteCustomer(t, env, "Pak Budi")
	courier := createTestCourier(t, env, "Joko", "joko")

	delivery, err := env.deliveries.Create(adminPrincipal(), DeliveryInput{CustomerID: customer.ID, CourierID: &courier.ID})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	firstAssigned := *delivery.AssignedAt

	updated, err := env.deliveries.MarkOnDelivery(adminPrincipal(), delivery.ID)
	if err != nil {
		t.Fatalf("mark on delivery failed: %v", err)
	}
	if updated.Status != constants.DeliveryStatusOnDelivery {
		t.Fatalf("expected on_delivery, got %s", updated.Status)
	}
	if updated.AssignedAt == nil || updated.AssignedAt.Before(firstAssigned) {
		t.Fatalf("expected AssignedAt re-stamped")
	}
}

func TestMarkCompletedLeavesAssignedAtUntouched(t *testing.T) {
	env := setupServiceTest(t)
	customer := createCompleteCustomer(t, env, "Pak Budi")
	courier := createTestCourier(t, env, "Joko", "joko")

	delivery, err := env.deliveries.Create(adminPrincipal(), DeliveryInput{CustomerID: customer.ID, CourierID: &courier.ID})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	delivery, err = env.deliveries.MarkOnDelivery(adminPrincipal(), delivery.ID)
	if err != nil {
		t.Fatalf("mark on delivery failed: %v", err)
	}
	assignedAt := *delivery.AssignedAt

	completed, err := env.deliveries.MarkCompleted(adminPrincipal(), delivery.ID)
	if err != nil {
		t.Fatalf("mark completed failed: %v", err)
	}
	if completed.CompletedAt == nil {
		t.Fatalf("expected CompletedAt to be set")
	}
	if completed.AssignedAt == nil || !completed.AssignedAt.Equal(assignedAt) {
		t.Fatalf("expected AssignedAt untouched by completion")
	}
}

func TestInvalidStatusTransitions(t *testing.T) {
	env := setupServiceTest(t)
	customer := createCompleteCustomer(t, env, "Pak Budi")

	delivery, err := env.deliveries.Create(adminPrincipal(), DeliveryInput{CustomerID: customer.ID})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := env.deliveries.MarkCompleted(adminPrincipal(), delivery.ID); err != nil {
		t.Fatalf("complete from pending failed: %v", err)
	}

	if _, err := env.deliveries.MarkOnDelivery(adminPrincipal(), delivery.ID); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("expected ErrInvalidStatusTransition from completed, got %v", err)
	}
	if _, err := env.deliveries.MarkCompleted(adminPrincipal(), delivery.ID); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("expected ErrInvalidStatusTransition on double completion, got %v", err)
	}
}

func TestCompletionGuardPerRole(t *testing.T) {
	env := setupServiceTest(t)
	courier := createTestCourier(t, env, "Joko", "joko")

	// Distance and fee set, coordinates missing: enough for admin, not for
	// courier.
	km := "2.00"
	fee := int64(6000)
	customer, err := env.customers.Create(CustomerInput{
		Name:        "Ibu Ratna",
		Phone:       "0811",
		Address:     "Jl. Kenanga 3",
		DistanceKm:  &km,
		DeliveryFee: &fee,
	})
	if err != nil {
		t.Fatalf("create customer failed: %v", err)
	}

	delivery, err := env.deliveries.Create(adminPrincipal(), DeliveryInput{CustomerID: customer.ID, CourierID: &courier.ID})
	if err != nil {
		t.Fatalf("create delivery failed: %v", err)
	}

	_, err = env.deliveries.MarkCompleted(courierPrincipal(courier.ID), delivery.ID)
	var incomplete *IncompleteCustomerDataError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteCustomerDataError for courier, got %v", err)
	}
	if len(incomplete.Missing) != 2 {
		t.Fatalf("expected missing lat and lng, got %v", incomplete.Missing)
	}

	if _, err := env.deliveries.MarkCompleted(adminPrincipal(), delivery.ID); err != nil {
		t.Fatalf("expected admin completion to pass, got %v", err)
	}
}

func TestCourierCannotTouchForeignDelivery(t *testing.T) {
	env := setupServiceTest(t)
	customer := createCompleteCustomer(t, env, "Pak Budi")
	owner := createTestCourier(t, env, "Joko", "joko")
	other := createTestCourier(t, env, "Andi", "andi")

	delivery, err := env.deliveries.Create(adminPrincipal(), DeliveryInput{CustomerID: customer.ID, CourierID: &owner.ID})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := env.deliveries.MarkOnDelivery(courierPrincipal(other.ID), delivery.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestDeleteDeliveryAllowedAtAnyStatus(t *testing.T) {
	env := setupServiceTest(t)
	customer := createCompleteCustomer(t, env, "Pak Budi")

	delivery, err := env.deliveries.Create(adminPrincipal(), DeliveryInput{CustomerID: customer.ID})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := env.deliveries.MarkCompleted(adminPrincipal(), delivery.ID); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if err := env.deliveries.Delete(delivery.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := env.deliveries.Delete(delivery.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCourierListIsScopedToOwnDeliveries(t *testing.T) {
	env := setupServiceTest(t)
	customerA := createCompleteCustomer(t, env, "Ibu Siti")
	customerB := createCompleteCustomer(t, env, "Pak Budi")
	owner := createTestCourier(t, env, "Joko", "joko")
	other := createTestCourier(t, env, "Andi", "andi")

	if _, err := env.deliveries.Create(adminPrincipal(), DeliveryInput{CustomerID: customerA.ID, CourierID: &owner.ID}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := env.deliveries.Create(adminPrincipal(), DeliveryInput{CustomerID: customerB.ID, CourierID: &other.ID}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	deliveries, total, err := env.deliveries.List(courierPrincipal(owner.ID), deliveryListAll())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(deliveries) != 1 {
		t.Fatalf("expected only own delivery, got total=%d", total)
	}
	if deliveries[0].CourierID == nil || *deliveries[0].CourierID != owner.ID {
		t.Fatalf("expected owner's delivery, got %+v", deliveries[0])
	}
}
