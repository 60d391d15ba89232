package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/models"
)

func newTestAuthService() *AuthService {
	return NewAuthService(nil, "admin-secret", time.Hour, "customer-secret", time.Hour)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestAuthService()

	token, err := svc.GenerateToken("user-1", models.UserTypeCustomer)
	require.NoError(t, err)

	userID, err := svc.ValidateToken(token, models.UserTypeCustomer)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestTokenAudienceSeparation(t *testing.T) {
	svc := newTestAuthService()

	customerToken, err := svc.GenerateToken("user-1", models.UserTypeCustomer)
	require.NoError(t, err)

	// a customer token must never validate as an admin token
	_, err = svc.ValidateToken(customerToken, models.UserTypeAdmin)
	assert.Error(t, err)

	adminToken, err := svc.GenerateToken("admin-1", models.UserTypeAdmin)
	require.NoError(t, err)

	_, err = svc.ValidateToken(adminToken, models.UserTypeCustomer)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.ValidateToken("not-a-token", models.UserTypeAdmin)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewAuthService(nil, "admin-secret", -time.Minute, "customer-secret", -time.Minute)

	token, err := svc.GenerateToken("user-1", models.UserTypeCustomer)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token, models.UserTypeCustomer)
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	svc := newTestAuthService()

	hash, err := svc.HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.NotEmpty(t, hash)
}
