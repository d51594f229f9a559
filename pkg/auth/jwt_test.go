package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthdost/kiosk-api/internal/model"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "kiosk-api", time.Hour)

	claims := &model.TokenClaims{
		UserID: uuid.New(),
		Role:   model.RolePatient,
		Name:   "Sita Devi",
	}

	token, err := svc.GenerateAccessToken(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, parsed.UserID)
	assert.Equal(t, model.RolePatient, parsed.Role)
	assert.Equal(t, "Sita Devi", parsed.Name)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := NewJWTService("secret-one", "kiosk-api", time.Hour)
	other := NewJWTService("secret-two", "kiosk-api", time.Hour)

	token, err := svc.GenerateAccessToken(&model.TokenClaims{UserID: uuid.New(), Role: model.RoleAgent})
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewJWTService("test-secret", "kiosk-api", -time.Minute)

	token, err := svc.GenerateAccessToken(&model.TokenClaims{UserID: uuid.New(), Role: model.RoleDoctor})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", "kiosk-api", time.Hour)
	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
