package apperrors

import "errors"

// Catalog errors
var (
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrCourseNotFound     = errors.New("course not found")
)

// Planner validation errors
var (
	ErrValidationFailed       = errors.New("validation failed")
	ErrDuplicateSelection     = errors.New("course is already planned")
	ErrVariableCreditRequired = errors.New("variable-credit course requires a credit amount")
	ErrNotVariableCredit      = errors.New("course does not take a credit amount")
	ErrInvalidCreditAmount    = errors.New("credit amount must be a positive integer")
	ErrCapacityExceeded       = errors.New("course credit capacity exceeded")
)

// Storage errors
var (
	ErrStorageRead  = errors.New("stored plan could not be read")
	ErrStorageWrite = errors.New("plan could not be persisted")
)

// Backup and export errors
var (
	ErrInvalidBackup       = errors.New("invalid backup file")
	ErrUnknownExportFormat = errors.New("unknown export format")
)

// Generic request errors
var (
	ErrBadRequest = errors.New("bad request")
)

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewCapacityError creates a capacity-exceeded error reporting the remaining headroom
func NewCapacityError(message string, remaining float64) error {
	return &CustomError{
		Err:     ErrCapacityExceeded,
		Message: message,
		Details: map[string]interface{}{"remaining_ects": remaining},
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
