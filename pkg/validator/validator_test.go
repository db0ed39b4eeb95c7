package validator

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

func TestValidate_Valid(t *testing.T) {
	err := Validate(credentials{Email: "user@example.com", Password: "password123"})
	assert.NoError(t, err)
}

func TestValidate_MissingFields(t *testing.T) {
	err := Validate(credentials{})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))

	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["Email"])
	assert.Equal(t, "is required", fields["Password"])
}

func TestValidate_BadEmail(t *testing.T) {
	err := Validate(credentials{Email: "not-an-email", Password: "password123"})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "must be a valid email address", valErr.Fields()["Email"])
}

func TestValidate_MinLength(t *testing.T) {
	err := Validate(credentials{Email: "user@example.com", Password: "short"})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "must be at least 8 characters", valErr.Fields()["Password"])
}

func TestValidate_UUIDTag(t *testing.T) {
	type booking struct {
		SlotID string `validate:"required,uuid"`
	}
	err := Validate(booking{SlotID: "not-a-uuid"})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "must be a valid UUID", valErr.Fields()["SlotID"])
}

func TestValidationError_ErrorMessage(t *testing.T) {
	err := Validate(credentials{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'Email' is required")
	assert.Contains(t, err.Error(), "field 'Password' is required")
}

func TestDecodeAndValidate_Valid(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(
		`{"Email":"user@example.com","Password":"password123"}`))

	var c credentials
	require.NoError(t, DecodeAndValidate(r, &c))
	assert.Equal(t, "user@example.com", c.Email)
}

func TestDecodeAndValidate_BadJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{`))

	var c credentials
	err := DecodeAndValidate(r, &c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}

func TestDecodeAndValidate_FailsValidation(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"Email":"bad"}`))

	var c credentials
	err := DecodeAndValidate(r, &c)

	var valErr *ValidationError
	assert.True(t, errors.As(err, &valErr))
}
