package handlers

import (
	"errors"

	"github.com/mediantar/mediantar/internal/http/response"
	"github.com/mediantar/mediantar/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a business error to an API error response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

var commonErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "resource not found"},
	{target: service.ErrForbidden, code: response.CodeForbidden, msg: "forbidden"},
	{target: service.ErrValidation, code: response.CodeBadRequest, msg: "validation failed"},
}

var deliveryErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidStatusTransition, code: response.CodeBadRequest, msg: "invalid status transition"},
	{target: service.ErrCustomerHasActiveDeliveries, code: response.CodeConflict, msg: "customer has active deliveries"},
	{target: service.ErrCourierHasActiveDeliveries, code: response.CodeConflict, msg: "courier has active deliveries"},
	{target: service.ErrInvalidDistance, code: response.CodeBadRequest, msg: "invalid distance"},
}

var authErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, msg: "invalid username or password"},
	{target: service.ErrInvalidPassword, code: response.CodeBadRequest, msg: "current password is incorrect"},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest, msg: "password does not meet the policy"},
}

var courierErrorRules = []mappedHandlerError{
	{target: service.ErrUsernameTaken, code: response.CodeConflict, msg: "username already taken"},
	{target: service.ErrCourierCredentialFailed, code: response.CodeInternal, msg: "courier credential creation failed"},
}

var templateErrorRules = []mappedHandlerError{
	{target: service.ErrTemplateTypeNotAllowed, code: response.CodeForbidden, msg: "template type not allowed for this role"},
}

// respondWithMappedError resolves err against the rule tables. Structured
// errors carry their detail in the response data so clients can act on it.
func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackMsg string) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		response.ErrorWithData(c, response.CodeBadRequest, "validation failed", gin.H{
			"fields": validationErr.Fields,
		})
		return
	}
	var conflictErr *service.ActiveOrderExistsError
	if errors.As(err, &conflictErr) {
		response.ErrorWithData(c, response.CodeConflict, "customer already has an active delivery", gin.H{
			"customer_id": conflictErr.CustomerID,
			"conflicts":   conflictErr.Conflicts,
		})
		return
	}
	var incompleteErr *service.IncompleteCustomerDataError
	if errors.As(err, &incompleteErr) {
		response.ErrorWithData(c, response.CodeBadRequest, "customer record is incomplete", gin.H{
			"missing": incompleteErr.Missing,
		})
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	for _, rule := range commonErrorRules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, response.CodeInternal, fallbackMsg, err)
}
