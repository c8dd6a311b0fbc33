// Package error defines domain-specific errors for the Subscription Tracker application.
package error

import (
	"errors"
	"fmt"
)

// Billing domain errors.
var (
	// ErrInvalidDate is returned when a date string cannot be parsed as a calendar date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidFrequency is returned when a target frequency is not one of the canonical periods.
	ErrInvalidFrequency = errors.New("invalid frequency")
)

// InvalidDateError reports the raw input that failed date parsing.
type InvalidDateError struct {
	Input string
	Err   error
}

// Error implements the error interface.
func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q", e.Input)
}

// Unwrap returns the underlying parse error.
func (e *InvalidDateError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrInvalidDate) hold for every InvalidDateError.
func (e *InvalidDateError) Is(target error) bool {
	return target == ErrInvalidDate
}

// NewInvalidDateError creates a new InvalidDateError for the given input.
func NewInvalidDateError(input string, err error) *InvalidDateError {
	return &InvalidDateError{
		Input: input,
		Err:   err,
	}
}

// BillingErrorCode defines error codes for billing errors.
// Format: BIL-XXYYYY where XX is category and YYYY is specific error.
type BillingErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidDate         BillingErrorCode = "BIL-010001"
	ErrCodeInvalidFrequency    BillingErrorCode = "BIL-010002"
	ErrCodeMissingBillingField BillingErrorCode = "BIL-010003"
	ErrCodeInvalidCount        BillingErrorCode = "BIL-010004"
)

// BillingError represents a billing error with code and message.
type BillingError struct {
	Code    BillingErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BillingError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BillingError) Unwrap() error {
	return e.Err
}

// NewBillingError creates a new BillingError with the given code and message.
func NewBillingError(code BillingErrorCode, message string, err error) *BillingError {
	return &BillingError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
