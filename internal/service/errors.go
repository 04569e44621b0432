package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound                    = errors.New("record not found")
	ErrInvalidCredentials          = errors.New("invalid username or password")
	ErrInvalidPassword             = errors.New("current password is incorrect")
	ErrWeakPassword                = errors.New("password does not meet the policy")
	ErrUsernameTaken               = errors.New("username is already taken")
	ErrCourierCredentialFailed     = errors.New("courier credential could not be created")
	ErrInvalidStatusTransition     = errors.New("invalid delivery status transition")
	ErrCustomerHasActiveDeliveries = errors.New("customer has active deliveries")
	ErrCourierHasActiveDeliveries  = errors.New("courier has active deliveries")
	ErrTemplateTypeNotAllowed      = errors.New("template type is not allowed for this role")
	ErrInvalidDistance             = errors.New("distance is invalid")
	ErrForbidden                   = errors.New("operation not permitted for this account")
)

// ErrValidation marks input validation failures. Use NewValidationError to
// attach the failing fields.
var ErrValidation = errors.New("validation failed")

// ValidationError input validation failure with field details
type ValidationError struct {
	Fields []string
}

// NewValidationError builds a validation error for the given fields
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// OrderRef identifies a delivery in conflict reports
type OrderRef struct {
	DeliveryID uint   `json:"delivery_id"`
	OrderNo    string `json:"order_no"`
	Status     string `json:"status"`
}

// ActiveOrderExistsError rejection of a second active delivery for a customer
type ActiveOrderExistsError struct {
	CustomerID uint       `json:"customer_id"`
	Conflicts  []OrderRef `json:"conflicts"`
}

func (e *ActiveOrderExistsError) Error() string {
	return fmt.Sprintf("customer %d already has %d active delivery order(s)", e.CustomerID, len(e.Conflicts))
}

// IncompleteCustomerDataError completion guard failure with the missing fields
type IncompleteCustomerDataError struct {
	Role    string   `json:"role"`
	Missing []string `json:"missing"`
}

func (e *IncompleteCustomerDataError) Error() string {
	return fmt.Sprintf("customer data incomplete for %s completion: missing %s", e.Role, strings.Join(e.Missing, ", "))
}

// PersistenceError wraps a storage failure, preserving the driver message
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// wrapPersistence tags a non-nil storage error with its operation
func wrapPersistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
