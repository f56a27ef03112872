package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhmdevan/workload-radar/pkg/config"
)

func newTestService(secret string) *JWTService {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = secret
	cfg.Auth.JWTExpiryHours = 1
	cfg.Auth.JWTIssuer = "workload-radar-test"
	return NewJWTService(cfg)
}

func TestTokenRoundtrip(t *testing.T) {
	svc := newTestService("test-secret")

	token, err := svc.GenerateToken(42, "dana@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "dana@example.com", claims.Email)
	assert.Equal(t, "workload-radar-test", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestService("test-secret")

	token, err := svc.GenerateToken(42, "dana@example.com")
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", "test-secret")
	assert.Error(t, err)
}
