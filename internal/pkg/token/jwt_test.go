package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewService("segredo-de-teste", time.Hour)

	tokenString, expiresAt, err := svc.GenerateToken("1", "ADMIN", "Carlos Administrador")
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "Carlos Administrador", claims.Name)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, Issuer, claims.Issuer)
}

func TestGenerateToken_UniqueIDs(t *testing.T) {
	svc := NewService("segredo-de-teste", time.Hour)

	first, _, err := svc.GenerateToken("1", "ADMIN", "A")
	require.NoError(t, err)
	second, _, err := svc.GenerateToken("1", "ADMIN", "A")
	require.NoError(t, err)

	c1, err := svc.ValidateToken(first)
	require.NoError(t, err)
	c2, err := svc.ValidateToken(second)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewService("segredo-a", time.Hour)
	validator := NewService("segredo-b", time.Hour)

	tokenString, _, err := issuer.GenerateToken("1", "ADMIN", "A")
	require.NoError(t, err)

	_, err = validator.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewService("segredo", time.Minute)
	issuedAt := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issuedAt }

	tokenString, _, err := svc.GenerateToken("1", "ADMIN", "A")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(tokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "token inválido")
}
