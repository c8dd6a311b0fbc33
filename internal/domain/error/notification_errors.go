package error

import "errors"

// Notification and settings domain errors.
var (
	// ErrNotificationNotFound is returned when a notification is not found.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrUnauthorizedNotificationAccess is returned when a user touches another user's notification.
	ErrUnauthorizedNotificationAccess = errors.New("unauthorized access to notification")

	// ErrSettingsNotFound is returned when a user has no settings row yet.
	ErrSettingsNotFound = errors.New("user settings not found")

	// ErrInvalidReminderDays is returned when the reminder lead time is out of range.
	ErrInvalidReminderDays = errors.New("invalid reminder days")

	// ErrUnsupportedCurrency is returned when the currency code is not supported.
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrInvalidTheme is returned when the theme is neither light nor dark.
	ErrInvalidTheme = errors.New("invalid theme")
)

// NotificationErrorCode defines error codes for notification and settings errors.
// Format: NOT-XXYYYY / SET-XXYYYY where XX is category and YYYY is specific error.
type NotificationErrorCode string

const (
	// Notification errors (01XXXX)
	ErrCodeNotificationNotFound     NotificationErrorCode = "NOT-010001"
	ErrCodeUnauthorizedNotification NotificationErrorCode = "NOT-010002"

	// Settings errors (01XXXX)
	ErrCodeInvalidReminderDays   NotificationErrorCode = "SET-010001"
	ErrCodeUnsupportedCurrency   NotificationErrorCode = "SET-010002"
	ErrCodeInvalidTheme          NotificationErrorCode = "SET-010003"
	ErrCodeMissingSettingsFields NotificationErrorCode = "SET-010004"
)

// NotificationError represents a notification or settings error with code and message.
type NotificationError struct {
	Code    NotificationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *NotificationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *NotificationError) Unwrap() error {
	return e.Err
}

// NewNotificationError creates a new NotificationError with the given code and message.
func NewNotificationError(code NotificationErrorCode, message string, err error) *NotificationError {
	return &NotificationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
