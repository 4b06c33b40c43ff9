package validator

import (
	"errors"
	"testing"

	gvalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorInitialization(t *testing.T) {
	t.Run("should initialize validator instance", func(t *testing.T) {
		assert.NotNil(t, validator)
	})

	t.Run("should work correctly after initialization", func(t *testing.T) {
		type SimpleStruct struct {
			Name string `validate:"required"`
		}

		err := validator.Struct(SimpleStruct{Name: "test"})
		assert.NoError(t, err)
	})
}

func TestFormatError(t *testing.T) {
	t.Run("should transform validation errors to formatted errors", func(t *testing.T) {
		testValidator := gvalidator.New()

		type TestStruct struct {
			Name string `validate:"required"`
		}

		err := testValidator.Struct(TestStruct{Name: ""})
		require.Error(t, err)

		formattedErr := formatError(err)

		assert.ErrorIs(t, formattedErr, ErrValidationFailed)
		assert.Contains(t, formattedErr.Error(), "'Name': value '' does not meet the requirements for the 'required' validation")
	})

	t.Run("should return original error when not validation error", func(t *testing.T) {
		originalErr := errors.New("database connection failed")

		assert.Equal(t, originalErr, formatError(originalErr))
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		testValidator := gvalidator.New()

		type MultiFieldStruct struct {
			Name  string `validate:"required"`
			Email string `validate:"required,email"`
		}

		err := testValidator.Struct(MultiFieldStruct{Name: "", Email: "invalid"})
		require.Error(t, err)

		formattedErr := formatError(err)

		assert.ErrorIs(t, formattedErr, ErrValidationFailed)
		errStr := formattedErr.Error()
		assert.Contains(t, errStr, "'Name': value '' does not meet the requirements for the 'required' validation")
		assert.Contains(t, errStr, "'Email': value 'invalid' does not meet the requirements for the 'email' validation")
	})
}

func TestValidate(t *testing.T) {
	t.Run("should pass when all required fields are present", func(t *testing.T) {
		type Registration struct {
			AccountID    string `validate:"required"`
			SubscriberID string `validate:"required"`
			Token        string `validate:"required"`
		}

		registration := Registration{
			AccountID:    "alice.near",
			SubscriberID: "subscriber-1",
			Token:        "token-1",
		}

		assert.NoError(t, Validate(registration))
	})

	t.Run("should pass when validating empty struct", func(t *testing.T) {
		type EmptyStruct struct{}

		assert.NoError(t, Validate(EmptyStruct{}))
	})

	t.Run("should fail when required field is empty", func(t *testing.T) {
		type Registration struct {
			AccountID string `validate:"required"`
			Token     string `validate:"required"`
		}

		err := Validate(Registration{AccountID: "alice.near"})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, err.Error(), "'Token': value '' does not meet the requirements for the 'required' validation")
	})

	t.Run("should fail with multiple validation errors", func(t *testing.T) {
		type Registration struct {
			AccountID string `validate:"required"`
			Token     string `validate:"required"`
		}

		err := Validate(Registration{})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, err.Error(), "'AccountID'")
		assert.Contains(t, err.Error(), "'Token'")
	})

	t.Run("should fail when input is not struct", func(t *testing.T) {
		for _, input := range []any{"test string", 42, nil, []string{"test"}} {
			assert.Error(t, Validate(input))
		}
	})
}
