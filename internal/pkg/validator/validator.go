// Package validator wraps go-playground/validator for declarative struct
// validation with standardized error formatting. Fields are validated via
// tags (e.g. `validate:"required"`); failures are reported as a multi-error
// chain rooted in ErrValidationFailed.
package validator

import (
	"errors"
	"fmt"

	gvalidator "github.com/go-playground/validator/v10"
)

// ErrValidationFailed is the first error in the chain returned when
// validation fails, so callers can detect validation failures with errors.Is
// even when several fields are invalid.
var ErrValidationFailed = errors.New("struct validation failed")

// validator is the singleton go-playground instance, created on package load.
var validator *gvalidator.Validate

// errStringFormat describes a single field failure, e.g.
// "'AccountID': value '' does not meet the requirements for the 'required' validation".
const errStringFormat = "'%s': value '%v' does not meet the requirements for the '%s' validation"

func init() {
	validator = gvalidator.New(gvalidator.WithRequiredStructEnabled())
}

// formatError turns raw validator output into the ErrValidationFailed chain.
// Non-validation errors pass through unchanged.
func formatError(err error) error {
	var validationErrors gvalidator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := []error{ErrValidationFailed}
	for _, validationErr := range validationErrors {
		err := fmt.Errorf(errStringFormat,
			validationErr.Field(),
			validationErr.Value(),
			validationErr.Tag(),
		)

		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Validate checks the given struct against its validation tags. It returns
// nil when every field passes, otherwise a combined error including
// ErrValidationFailed and one message per failing field.
func Validate(v any) error {
	if err := validator.Struct(v); err != nil {
		return formatError(err)
	}

	return nil
}
