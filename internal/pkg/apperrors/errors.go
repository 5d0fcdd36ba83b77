package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Lecturer Errors
var (
	ErrLecturerNotFound   = fmt.Errorf("lecturer %w", ErrResourceNotFound)
	ErrEmailAlreadyExists = fmt.Errorf("email %w", ErrResourceAlreadyExists)
)

// Course Errors
var (
	ErrCourseNotFound = fmt.Errorf("course %w", ErrResourceNotFound)
)

// NewLecturerNotFoundError reports a missing lecturer by id
func NewLecturerNotFoundError(id string) error {
	return NewCustomError(ErrLecturerNotFound, "Lecturer not found with id: "+id).
		WithDetails(map[string]interface{}{"lecturerId": id})
}

// NewCourseNotFoundError reports a missing course by id
func NewCourseNotFoundError(id string) error {
	return NewCustomError(ErrCourseNotFound, "Course not found with id: "+id).
		WithDetails(map[string]interface{}{"courseId": id})
}

// NewDuplicateEmailError reports an email already held by another lecturer
func NewDuplicateEmailError(email string) error {
	return NewCustomError(ErrEmailAlreadyExists, "Email already exists: "+email).
		WithDetails(map[string]interface{}{"email": email})
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
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

// AsCustomError extracts the first CustomError in the chain, if any
func AsCustomError(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
