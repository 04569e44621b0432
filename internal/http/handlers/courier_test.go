package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mediantar/mediantar/internal/constants"
	"github.com/mediantar/mediantar/internal/http/response"
	"github.com/mediantar/mediantar/internal/models"
	"github.com/mediantar/mediantar/internal/service"
)

func TestToggleOwnAvailabilityRequiresCourierProfile(t *testing.T) {
	handler, _ := setupHandlerTest(t)

	req := httptest.NewRequest(http.MethodPost, "/availability/toggle", nil)
	recorder := serveWithPrincipal(handler.ToggleOwnAvailability, adminPrincipal(), req)

	var body response.Response
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if body.StatusCode != response.CodeForbidden {
		t.Fatalf("expected forbidden for principal without courier profile, got %d", body.StatusCode)
	}
}

func TestToggleOwnAvailabilityFlipsBoundCourier(t *testing.T) {
	handler, db := setupHandlerTest(t)

	courier := &models.Courier{Name: "Andi", Phone: "0813", IsAvailable: true}
	if err := db.Create(courier).Error; err != nil {
		t.Fatalf("create courier failed: %v", err)
	}
	principal := service.Principal{
		UserID:    7,
		Username:  "andi",
		Role:      constants.RoleCourier,
		CourierID: courier.ID,
	}

	req := httptest.NewRequest(http.MethodPost, "/availability/toggle", nil)
	recorder := serveWithPrincipal(handler.ToggleOwnAvailability, principal, req)

	var body struct {
		StatusCode int            `json:"status_code"`
		Data       models.Courier `json:"data"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if body.StatusCode != 0 {
		t.Fatalf("expected success envelope, got %d", body.StatusCode)
	}
	if body.Data.IsAvailable {
		t.Fatalf("expected availability flipped off")
	}

	var stored models.Courier
	if err := db.First(&stored, courier.ID).Error; err != nil {
		t.Fatalf("reload courier failed: %v", err)
	}
	if stored.IsAvailable {
		t.Fatalf("expected availability persisted as off")
	}
}
