package error

import "errors"

// Subscription domain errors.
var (
	// ErrSubscriptionNotFound is returned when a subscription is not found in the system.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrUnauthorizedSubscriptionAccess is returned when a user touches another user's subscription.
	ErrUnauthorizedSubscriptionAccess = errors.New("unauthorized access to subscription")

	// ErrInvalidSubscriptionAmount is returned when the amount is negative.
	ErrInvalidSubscriptionAmount = errors.New("invalid subscription amount")

	// ErrSubscriptionNameRequired is returned when the name is blank.
	ErrSubscriptionNameRequired = errors.New("subscription name is required")

	// ErrSubscriptionNameTooLong is returned when the name exceeds the maximum length.
	ErrSubscriptionNameTooLong = errors.New("subscription name too long")

	// ErrRenewalPeriodRequired is returned when the renewal period is blank.
	ErrRenewalPeriodRequired = errors.New("renewal period is required")

	// ErrNoFieldsToUpdate is returned when an update carries no changes.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

// SubscriptionErrorCode defines error codes for subscription errors.
// Format: SUB-XXYYYY where XX is category and YYYY is specific error.
type SubscriptionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeSubscriptionNotFound       SubscriptionErrorCode = "SUB-010001"
	ErrCodeUnauthorizedSubscription   SubscriptionErrorCode = "SUB-010002"
	ErrCodeInvalidSubscriptionAmount  SubscriptionErrorCode = "SUB-010003"
	ErrCodeSubscriptionNameRequired   SubscriptionErrorCode = "SUB-010004"
	ErrCodeSubscriptionNameTooLong    SubscriptionErrorCode = "SUB-010005"
	ErrCodeRenewalPeriodRequired      SubscriptionErrorCode = "SUB-010006"
	ErrCodeInvalidSubscriptionDate    SubscriptionErrorCode = "SUB-010007"
	ErrCodeMissingSubscriptionFields  SubscriptionErrorCode = "SUB-010008"
	ErrCodeNoSubscriptionFieldsToSave SubscriptionErrorCode = "SUB-010009"
)

// SubscriptionError represents a subscription error with code and message.
type SubscriptionError struct {
	Code    SubscriptionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SubscriptionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SubscriptionError) Unwrap() error {
	return e.Err
}

// NewSubscriptionError creates a new SubscriptionError with the given code and message.
func NewSubscriptionError(code SubscriptionErrorCode, message string, err error) *SubscriptionError {
	return &SubscriptionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
