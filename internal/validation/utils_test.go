package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Title  string `validate:"required,min=5"`
	Status string `validate:"omitempty,oneof=draft published archived"`
	Email  string `validate:"omitempty,email"`
}

func TestExtractValidationErrorTags(t *testing.T) {
	v := validator.New()

	err := v.Struct(samplePayload{Title: "abc", Status: "bogus", Email: "nope"})
	require.Error(t, err)

	msg, fieldErrors := ExtractValidationError(err)
	assert.Equal(t, "Validation failed", msg)
	require.Len(t, fieldErrors, 3)

	byField := map[string]string{}
	for _, fe := range fieldErrors {
		byField[fe.Field] = fe.Error
	}

	assert.Equal(t, "must be at least 5 characters", byField["title"])
	assert.Equal(t, "must be one of: draft published archived", byField["status"])
	assert.Equal(t, "must be a valid email address", byField["email"])
}

func TestExtractValidationErrorRequired(t *testing.T) {
	v := validator.New()

	err := v.Struct(samplePayload{})
	require.Error(t, err)

	_, fieldErrors := ExtractValidationError(err)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "title", fieldErrors[0].Field)
	assert.Equal(t, "is required", fieldErrors[0].Error)
}

func TestExtractValidationErrorCustom(t *testing.T) {
	err := CustomValidationErrors{{
		Field:   "summary",
		Message: "is required when status is published",
	}}

	msg, fieldErrors := ExtractValidationError(err)
	assert.Equal(t, "Validation failed", msg)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "summary", fieldErrors[0].Field)
	assert.Equal(t, "is required when status is published", fieldErrors[0].Error)
}

func TestExtractValidationErrorUnknownType(t *testing.T) {
	msg, fieldErrors := ExtractValidationError(assert.AnError)
	assert.Equal(t, assert.AnError.Error(), msg)
	assert.Empty(t, fieldErrors)
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("8b5c1e0e-95a1-4f63-bb5a-6f1d6e9f2d53"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}
