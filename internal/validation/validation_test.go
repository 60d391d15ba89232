package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type loginRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

func TestStructValid(t *testing.T) {
	err := Struct(loginRequest{Email: "a@example.com", Password: "secret123"})
	assert.NoError(t, err)
}

func TestStructMissingFields(t *testing.T) {
	err := Struct(loginRequest{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Email is required")
	assert.Contains(t, err.Error(), "Password is required")
}

func TestStructBadEmail(t *testing.T) {
	err := Struct(loginRequest{Email: "nope", Password: "secret123"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "valid email")
}

func TestStructTooShort(t *testing.T) {
	err := Struct(loginRequest{Email: "a@example.com", Password: "short"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least 8")
}
