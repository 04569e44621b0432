package handlers

import (
	"strconv"
	"strings"

	"github.com/mediantar/mediantar/internal/http/response"
	"github.com/mediantar/mediantar/internal/repository"
	"github.com/mediantar/mediantar/internal/service"

	"github.com/gin-gonic/gin"
)

// ListCouriers lists couriers, optionally filtered by availability.
func (h *Handler) ListCouriers(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filter := repository.CourierListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	}
	if raw := strings.TrimSpace(c.Query("is_available")); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid is_available filter", nil)
			return
		}
		filter.IsAvailable = &available
	}

	couriers, total, err := h.CourierService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "courier list failed", err)
		return
	}
	response.SuccessWithPage(c, couriers, buildPagination(page, pageSize, total))
}

// GetCourier returns one courier.
func (h *Handler) GetCourier(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	courier, err := h.CourierService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, courierErrorRules, "courier fetch failed")
		return
	}
	response.Success(c, courier)
}

// CreateCourier creates a courier profile together with its login credential.
func (h *Handler) CreateCourier(c *gin.Context) {
	var in service.CourierInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	courier, err := h.CourierService.Create(in)
	if err != nil {
		respondWithMappedError(c, err, courierErrorRules, "courier create failed")
		return
	}
	RequestLog(c).Infow("courier_created", "courier_id", courier.ID, "username", in.Username)
	response.Success(c, courier)
}

// UpdateCourier updates profile fields. Credentials are not touched here.
func (h *Handler) UpdateCourier(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var in service.CourierUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	courier, err := h.CourierService.Update(id, in)
	if err != nil {
		respondWithMappedError(c, err, courierErrorRules, "courier update failed")
		return
	}
	response.Success(c, courier)
}

// ToggleCourierAvailability flips the availability flag.
func (h *Handler) ToggleCourierAvailability(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	courier, err := h.CourierService.ToggleAvailability(id)
	if err != nil {
		respondWithMappedError(c, err, courierErrorRules, "courier toggle failed")
		return
	}
	RequestLog(c).Infow("courier_availability_toggled", "courier_id", id, "is_available", courier.IsAvailable)
	response.Success(c, courier)
}

// ToggleOwnAvailability lets a courier flip their own availability flag.
func (h *Handler) ToggleOwnAvailability(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return
	}
	if principal.CourierID == 0 {
		respondError(c, response.CodeForbidden, "no courier profile bound to this account", nil)
		return
	}
	courier, err := h.CourierService.ToggleAvailability(principal.CourierID)
	if err != nil {
		respondWithMappedError(c, err, courierErrorRules, "courier toggle failed")
		return
	}
	response.Success(c, courier)
}

// DeleteCourier removes a courier without active deliveries, credential included.
func (h *Handler) DeleteCourier(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CourierService.Delete(id); err != nil {
		respondWithMappedError(c, err, deliveryErrorRules, "courier delete failed")
		return
	}
	RequestLog(c).Infow("courier_deleted", "courier_id", id)
	response.Success(c, nil)
}
