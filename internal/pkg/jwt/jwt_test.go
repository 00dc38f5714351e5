package jwt

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "1h")
	employeeID := "0190a0c0-0000-7000-8000-000000000001"

	token, expiresAt, err := svc.GenerateAccessToken("user-1", &employeeID, auth.RoleEmployee)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, int64(0))

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	id, err := auth.IdentityFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.UserID)
	assert.Equal(t, employeeID, *id.EmployeeID)
	assert.Equal(t, auth.RoleEmployee, id.Role)
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateAccessToken_Errors(t *testing.T) {
	_, _, err := NewJWTService("secret", "1h").GenerateAccessToken("user-1", nil, auth.Role("owner"))
	assert.ErrorIs(t, err, auth.ErrInvalidRole)

	_, _, err = NewJWTService("secret", "soon").GenerateAccessToken("user-1", nil, auth.RoleAdmin)
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService("secret", "1h")
	assert.False(t, svc.IsTokenRevoked("abc"))
	svc.RevokeToken("abc")
	assert.True(t, svc.IsTokenRevoked("abc"))
}
