package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string `json:"name" validate:"required"`
	Number string `json:"number" validate:"max=5"`
	Note   string `json:"-" validate:"omitempty,min=2"`
}

func TestValidate(t *testing.T) {
	t.Run("valid struct", func(t *testing.T) {
		assert.NoError(t, Validate(sample{Name: "Ada", Number: "111"}))
	})

	t.Run("missing required field uses json name", func(t *testing.T) {
		err := Validate(sample{})
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
		assert.Equal(t, "name missing", err.Error())
	})

	t.Run("collects every failure", func(t *testing.T) {
		err := Validate(sample{Number: "1234567"})
		var errs ValidationErrors
		require.True(t, errors.As(err, &errs))
		require.Len(t, errs, 2)
		assert.Equal(t, ValidationError{Field: "name", Message: "missing"}, errs[0])
		assert.Equal(t, ValidationError{Field: "number", Message: "must be at most 5 characters"}, errs[1])
		assert.Equal(t, "name missing; number must be at most 5 characters", err.Error())
	})

	t.Run("non struct input is not a validation error", func(t *testing.T) {
		err := Validate(42)
		require.Error(t, err)
		assert.False(t, IsValidationError(err))
	})
}
