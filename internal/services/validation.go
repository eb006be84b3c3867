package services

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cashpoint/atm-client/internal/apperrors"
)

// ValidationHelper provides shared validation functionality
type ValidationHelper struct {
	validator *validator.Validate
}

// NewValidationHelper creates a new validation helper
func NewValidationHelper() *ValidationHelper {
	return &ValidationHelper{
		validator: validator.New(),
	}
}

// ValidateStruct validates a struct and returns validation errors
func (vh *ValidationHelper) ValidateStruct(s any) error {
	return vh.validator.Struct(s)
}

// AsValidationError converts validator failures into the core's typed
// ValidationError, flattening field details into the message.
func AsValidationError(validationErr error) *apperrors.ValidationError {
	fieldErrs, ok := validationErr.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError(validationErr.Error())
	}

	details := make([]string, 0, len(fieldErrs))
	for _, err := range fieldErrs {
		details = append(details, fmt.Sprintf("Field Validation Failed on '%s' tag for %s", err.Tag(), err.Field()))
	}
	return apperrors.NewValidationError(strings.Join(details, "; "))
}
