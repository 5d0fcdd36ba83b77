package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/courseportal/internal/pkg/apperrors"
)

// Shared validator; models carry `validate` tags
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("cents", validateCents); err != nil {
		panic(err)
	}
	return v
}

// validateCents accepts amounts with at most two decimal places, matching
// the NUMERIC(6, 2) price column
func validateCents(fl validator.FieldLevel) bool {
	f := fl.Field()
	if !f.CanFloat() {
		return false
	}
	scaled := f.Float() * 100
	return math.Abs(scaled-math.Round(scaled)) < 1e-6
}

// FieldError is a single failed rule on one field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned by Struct when one or more rules fail
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets callers match apperrors.ErrValidationFailed
func (e *Error) Unwrap() error {
	return apperrors.ErrValidationFailed
}

// Struct validates obj against its `validate` tags
func Struct(obj interface{}) error {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}

	return &Error{Fields: FieldErrors(verrs)}
}

// FieldErrors converts validator errors into field/message pairs
func FieldErrors(verrs validator.ValidationErrors) []FieldError {
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   lowerFirst(fe.Field()),
			Message: Message(fe),
		})
	}
	return fields
}

// Message creates a human-readable validation error message
func Message(e validator.FieldError) string {
	field := lowerFirst(e.Field())
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + e.Param() + " characters"
	case "max":
		return field + " must not exceed " + e.Param() + " characters"
	case "email":
		return field + " should be valid"
	case "gt":
		return field + " must be greater than " + e.Param()
	case "lte":
		return field + " must not exceed " + e.Param()
	case "cents":
		return field + " must have at most two decimal places"
	case "oneof":
		return field + " must be one of: " + e.Param()
	default:
		return field + " validation failed: " + e.Tag()
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
