package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront-api/internal/validation"
)

func TestUpdateUserInputPasswordRules(t *testing.T) {
	str := func(s string) *string { return &s }

	// Omitting the password leaves it unchanged.
	assert.NoError(t, validation.Struct(UpdateUserInput{Email: str("a@example.com")}))

	assert.NoError(t, validation.Struct(UpdateUserInput{Password: str("longenough")}))

	err := validation.Struct(UpdateUserInput{Password: str("short")})
	assert.EqualError(t, err, "Password must be at least 8")
}
