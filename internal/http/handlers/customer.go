package handlers

import (
	"strings"

	"github.com/mediantar/mediantar/internal/http/response"
	"github.com/mediantar/mediantar/internal/repository"
	"github.com/mediantar/mediantar/internal/service"

	"github.com/gin-gonic/gin"
)

// ListCustomers lists customers with optional name/phone/address search.
func (h *Handler) ListCustomers(c *gin.Context) {
	page, pageSize := parsePagination(c)
	search := strings.TrimSpace(c.Query("search"))

	customers, total, err := h.CustomerService.Search(repository.CustomerListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   search,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "customer list failed", err)
		return
	}
	response.SuccessWithPage(c, customers, buildPagination(page, pageSize, total))
}

// GetCustomer returns one customer.
func (h *Handler) GetCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	customer, err := h.CustomerService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, nil, "customer fetch failed")
		return
	}
	response.Success(c, customer)
}

// CreateCustomer creates a customer.
func (h *Handler) CreateCustomer(c *gin.Context) {
	var in service.CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	customer, err := h.CustomerService.Create(in)
	if err != nil {
		respondWithMappedError(c, err, nil, "customer create failed")
		return
	}
	RequestLog(c).Infow("customer_created", "customer_id", customer.ID)
	response.Success(c, customer)
}

// UpdateCustomer updates a customer.
func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var in service.CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	customer, err := h.CustomerService.Update(id, in)
	if err != nil {
		respondWithMappedError(c, err, nil, "customer update failed")
		return
	}
	response.Success(c, customer)
}

// DeleteCustomer deletes a customer without active deliveries.
func (h *Handler) DeleteCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CustomerService.Delete(id); err != nil {
		respondWithMappedError(c, err, deliveryErrorRules, "customer delete failed")
		return
	}
	RequestLog(c).Infow("customer_deleted", "customer_id", id)
	response.Success(c, nil)
}

// RecalculateCustomerFee rederives the delivery fee from the stored distance.
func (h *Handler) RecalculateCustomerFee(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	customer, err := h.CustomerService.RecalculateFee(id)
	if err != nil {
		respondWithMappedError(c, err, deliveryErrorRules, "fee recalculation failed")
		return
	}
	response.Success(c, customer)
}

// RecalculateCustomerDistance rederives the distance from the stored fee.
func (h *Handler) RecalculateCustomerDistance(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	customer, err := h.CustomerService.RecalculateDistance(id)
	if err != nil {
		respondWithMappedError(c, err, deliveryErrorRules, "distance recalculation failed")
		return
	}
	response.Success(c, customer)
}

// ImportCustomers bulk-creates customers from an uploaded CSV file.
func (h *Handler) ImportCustomers(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "missing csv file", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, response.CodeBadRequest, "unreadable csv file", err)
		return
	}
	defer file.Close()

	result, err := h.ImportService.ImportCustomers(file)
	if err != nil {
		respondWithMappedError(c, err, nil, "customer import failed")
		return
	}
	RequestLog(c).Infow("customers_imported",
		"imported", result.Imported,
		"failed", result.Failed,
	)
	response.Success(c, result)
}
