package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a custom category is not found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryNameExists is returned when the name clashes with a default or custom category.
	ErrCategoryNameExists = errors.New("category name already exists")

	// ErrCategoryNameRequired is returned when the category name is blank.
	ErrCategoryNameRequired = errors.New("category name is required")

	// ErrCategoryNameTooLong is returned when the category name exceeds the maximum length.
	ErrCategoryNameTooLong = errors.New("category name too long")

	// ErrDefaultCategoryProtected is returned when deleting one of the built-in categories.
	ErrDefaultCategoryProtected = errors.New("default categories cannot be deleted")

	// ErrNotAuthorizedToModifyCategory is returned when user is not authorized to modify a category.
	ErrNotAuthorizedToModifyCategory = errors.New("not authorized to modify category")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCategoryNameTooLong      CategoryErrorCode = "CAT-010001"
	ErrCodeCategoryNameRequired     CategoryErrorCode = "CAT-010002"
	ErrCodeDefaultCategoryProtected CategoryErrorCode = "CAT-010003"
	ErrCodeCategoryNotFound         CategoryErrorCode = "CAT-010004"
	ErrCodeCategoryNameExists       CategoryErrorCode = "CAT-010005"
	ErrCodeNotAuthorizedCategory    CategoryErrorCode = "CAT-010006"
	ErrCodeMissingCategoryFields    CategoryErrorCode = "CAT-010008"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
