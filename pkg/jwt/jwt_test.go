package jwt

import (
	"testing"
	"time"

	"nutritrack-backend/config"
	"nutritrack-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
}

func TestGenerateAndValidate(t *testing.T) {
	s := newTestService()
	userID := uuid.New()

	token, tokenID, err := s.GenerateAccessToken(userID, "joao@example.com", entity.RoleIDPatient)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "joao@example.com", claims.Email)
	assert.Equal(t, entity.RoleIDPatient, claims.RoleID)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestTokenTypes(t *testing.T) {
	s := newTestService()

	access, _, err := s.GenerateAccessToken(uuid.New(), "a@example.com", entity.RoleIDNutritionist)
	require.NoError(t, err)
	refresh, _, err := s.GenerateRefreshToken(uuid.New(), "a@example.com", entity.RoleIDNutritionist)
	require.NoError(t, err)

	accessClaims, err := s.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, AccessToken, accessClaims.TokenType)

	refreshClaims, err := s.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, refreshClaims.TokenType)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, _, err := newTestService().GenerateAccessToken(uuid.New(), "a@example.com", entity.RoleIDPatient)
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:        "different-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	expired := NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  -time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})

	token, _, err := expired.GenerateAccessToken(uuid.New(), "a@example.com", entity.RoleIDPatient)
	require.NoError(t, err)

	_, err = newTestService().ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := newTestService().ValidateToken("not.a.token")
	assert.Error(t, err)
}
