package service

import (
	"errors"
	"testing"

	"github.com/mediantar/mediantar/internal/constants"
)

func TestTemplateUpsertReplacesExistingBody(t *testing.T) {
	env := setupServiceTest(t)
	principal := adminPrincipal()

	created, err := env.templates.Upsert(principal, constants.TemplateAdminToCustomer, "Halo {name}, pesanan {order_no} diproses.")
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	updated, err := env.templates.Upsert(principal, constants.TemplateAdminToCustomer, "Halo {name}, kurir menuju alamat Anda.")
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("expected upsert to reuse row %d, got %d", created.ID, updated.ID)
	}

	templates, err := env.templates.List(principal)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(templates) != 1 {
		t.Fatalf("expected one template per (owner,type), got %d", len(templates))
	}
	if templates[0].Body != "Halo {name}, kurir menuju alamat Anda." {
		t.Fatalf("expected replaced body, got %q", templates[0].Body)
	}
}

func TestTemplateRoleGating(t *testing.T) {
	env := setupServiceTest(t)

	_, err := env.templates.Upsert(courierPrincipal(1), constants.TemplateAdminToCustomer, "tidak boleh")
	if !errors.Is(err, ErrTemplateTypeNotAllowed) {
		t.Fatalf("expected ErrTemplateTypeNotAllowed for courier, got %v", err)
	}

	_, err = env.templates.Upsert(adminPrincipal(), constants.TemplateCourierToCustomer, "tidak boleh")
	if !errors.Is(err, ErrTemplateTypeNotAllowed) {
		t.Fatalf("expected ErrTemplateTypeNotAllowed for admin, got %v", err)
	}

	if _, err := env.templates.Upsert(courierPrincipal(1), constants.TemplateCourierToCustomer, "Paket untuk {name} sedang diantar."); err != nil {
		t.Fatalf("expected courier type allowed, got %v", err)
	}
}

func TestTemplatesAreScopedPerOwner(t *testing.T) {
	env := setupServiceTest(t)
	courierA := courierPrincipal(1)
	courierB := courierPrincipal(2)

	if _, err := env.templates.Upsert(courierA, constants.TemplateCourierToCustomer, "dari kurir satu"); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if _, err := env.templates.Upsert(courierB, constants.TemplateCourierToCustomer, "dari kurir dua"); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	own, err := env.templates.List(courierA)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(own) != 1 || own[0].Body != "dari kurir satu" {
		t.Fatalf("expected only courier A's template, got %+v", own)
	}
}

func TestResolvePlaceholders(t *testing.T) {
	body := "Halo {name}, pesanan {order_no} status {status}. Salam, {name_unknown}"
	out := ResolvePlaceholders(body, map[string]string{
		"name":     "Ibu Siti",
		"order_no": "MA20260801120000123456",
		"status":   "on_delivery",
	})
	expected := "Halo Ibu Siti, pesanan MA20260801120000123456 status on_delivery. Salam, {name_unknown}"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}
}

func TestAllowedTemplateTypes(t *testing.T) {
	adminTypes := AllowedTemplateTypes(adminPrincipal())
	if len(adminTypes) != 2 {
		t.Fatalf("expected two admin types, got %v", adminTypes)
	}
	courierTypes := AllowedTemplateTypes(courierPrincipal(1))
	if len(courierTypes) != 1 || courierTypes[0] != constants.TemplateCourierToCustomer {
		t.Fatalf("expected courier-to-customer only, got %v", courierTypes)
	}
}
