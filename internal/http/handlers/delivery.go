package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/mediantar/mediantar/internal/constants"
	"github.com/mediantar/mediantar/internal/http/response"
	"github.com/mediantar/mediantar/internal/repository"
	"github.com/mediantar/mediantar/internal/service"

	"github.com/gin-gonic/gin"
)

// AssignCourierRequest assign payload
type AssignCourierRequest struct {
	CourierID uint `json:"courier_id" binding:"required"`
}

// ListDeliveries lists deliveries with filters. Courier principals only see
// their own assignments.
func (h *Handler) ListDeliveries(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	status := strings.TrimSpace(c.Query("status"))
	if status != "" && !constants.IsValidDeliveryStatus(status) {
		respondError(c, response.CodeBadRequest, "unknown status filter", nil)
		return
	}
	dateFrom, err := parseDateNullable(strings.TrimSpace(c.Query("date_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid date_from", err)
		return
	}
	dateTo, err := parseDateNullable(strings.TrimSpace(c.Query("date_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid date_to", err)
		return
	}
	if dateTo != nil {
		// repository treats the upper bound as exclusive
		end := dateTo.AddDate(0, 0, 1)
		dateTo = &end
	}

	filter := repository.DeliveryListFilter{
		Page:          page,
		PageSize:      pageSize,
		Status:        status,
		OrderNo:       strings.TrimSpace(c.Query("order_no")),
		DateFrom:      dateFrom,
		DateTo:        dateTo,
		WithRelations: true,
	}
	if raw := strings.TrimSpace(c.Query("customer_id")); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.CustomerID = uint(parsed)
		}
	}
	if raw := strings.TrimSpace(c.Query("courier_id")); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.CourierID = uint(parsed)
		}
	}
	if raw := strings.TrimSpace(c.Query("active_only")); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			filter.ActiveOnly = active
		}
	}

	deliveries, total, err := h.DeliveryService.List(principal, filter)
	if err != nil {
		respondError(c, response.CodeInternal, "delivery list failed", err)
		return
	}
	response.SuccessWithPage(c, deliveries, buildPagination(page, pageSize, total))
}

// GetDelivery returns one delivery with customer and courier attached.
func (h *Handler) GetDelivery(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	delivery, err := h.DeliveryService.Get(principal, id)
	if err != nil {
		respondWithMappedError(c, err, deliveryErrorRules, "delivery fetch failed")
		return
	}
	response.Success(c, delivery)
}

// CreateDelivery opens a pending delivery for a customer.
func (h *Handler) CreateDelivery(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return
	}
	var in service.DeliveryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	delivery, err := h.DeliveryService.Create(principal, in)
	if err != nil {
		respondWithMappedError(c, err, deliveryErrorRules, "delivery create failed")
		return
	}
	RequestLog(c).Infow("delivery_created",
		"delivery_id", delivery.ID,
		"order_no", delivery.OrderNo,
		"customer_id", delivery.CustomerID,
	)
	response.Success(c, delivery)
}

// AssignDeliveryCourier assigns or reassigns a courier on a non-terminal delivery.
func (h *Handler) AssignDeliveryCourier(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req AssignCourierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	delivery, err := h.DeliveryService.AssignCourier(id, req.CourierID)
	if err != nil {
		respondWithMappedError(c, err, deliveryErrorRules, "courier assignment failed")
		return
	}
	RequestLog(c).Infow("delivery_assigned", "delivery_id", id, "courier_id", req.CourierID)
	response.Success(c, delivery)
}

// MarkDeliveryOnDelivery moves a pending delivery to on_delivery.
func (h *Handler) MarkDeliveryOnDelivery(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	delivery, err := h.DeliveryService.MarkOnDelivery(principal, id)
	if err != nil {
		respondWithMappedError(c, err, deliveryErrorRules, "status change failed")
		return
	}
	RequestLog(c).Infow("delivery_on_delivery", "delivery_id", id)
	response.Success(c, delivery)
}

// MarkDeliveryCompleted completes an active delivery after the customer
// record passes the role-specific completeness check.
func (h *Handler) MarkDeliveryCompleted(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	delivery, err := h.DeliveryService.MarkCompleted(principal, id)
	if err != nil {
		respondWithMappedError(c, err, deliveryErrorRules, "status change failed")
		return
	}
	RequestLog(c).Infow("delivery_completed", "delivery_id", id)
	response.Success(c, delivery)
}

// DeleteDelivery removes a delivery record regardless of status.
func (h *Handler) DeleteDelivery(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.DeliveryService.Delete(id); err != nil {
		respondWithMappedError(c, err, deliveryErrorRules, "delivery delete failed")
		return
	}
	RequestLog(c).Infow("delivery_deleted", "delivery_id", id)
	response.Success(c, nil)
}

// parseDateNullable accepts YYYY-MM-DD or RFC3339 timestamps.
func parseDateNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.Local)
		return &parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
