package service

import (
	"testing"

	"github.com/fungigrow/storeapi/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T, password string) *AuthService {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return NewAuthService(string(hash), "test-jwt-secret")
}

func TestAuthLogin(t *testing.T) {
	svc := newTestAuthService(t, "hunter2")

	token, err := svc.Login("hunter2")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NoError(t, svc.VerifyToken(token))
}

func TestAuthLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(t, "hunter2")

	_, err := svc.Login("wrong")

	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestAuthVerifyToken(t *testing.T) {
	svc := newTestAuthService(t, "hunter2")

	assert.Error(t, svc.VerifyToken(""))
	assert.Error(t, svc.VerifyToken("not-a-jwt"))

	otherSvc := NewAuthService("", "other-secret")
	token, err := svc.Login("hunter2")
	require.NoError(t, err)
	assert.ErrorIs(t, otherSvc.VerifyToken(token), models.ErrInvalidCredentials)
}
