package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthenticator(iss string) *JWTAuthenticator {
	return NewJWTAuthenticator("access-secret", "refresh-secret", iss, iss, time.Hour, 24*time.Hour)
}

func TestGenerateAndValidateTokens(t *testing.T) {
	a := newTestAuthenticator("DiscoverDhaka")

	access, refresh, err := a.GenerateTokens(42, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	accessToken, err := a.ValidateAccessToken(access)
	require.NoError(t, err)

	claims, ok := accessToken.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.EqualValues(t, 42, claims["sub"])
	assert.Equal(t, "admin", claims["role"])

	_, err = a.ValidateRefreshToken(refresh)
	require.NoError(t, err)
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	issuer := newTestAuthenticator("DiscoverDhaka")
	imposter := NewJWTAuthenticator("access-secret", "refresh-secret", "DiscoverDhaka", "SomeOtherApp", time.Hour, 24*time.Hour)

	access, refresh, err := imposter.GenerateTokens(7, "user")
	require.NoError(t, err)

	_, err = issuer.ValidateAccessToken(access)
	assert.Error(t, err)

	_, err = issuer.ValidateRefreshToken(refresh)
	assert.Error(t, err)
}

func TestValidateRejectsWrongAudience(t *testing.T) {
	a := NewJWTAuthenticator("access-secret", "refresh-secret", "MobileApp", "DiscoverDhaka", time.Hour, 24*time.Hour)
	other := NewJWTAuthenticator("access-secret", "refresh-secret", "WebApp", "DiscoverDhaka", time.Hour, 24*time.Hour)

	access, _, err := other.GenerateTokens(7, "user")
	require.NoError(t, err)

	_, err = a.ValidateAccessToken(access)
	assert.Error(t, err)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	a := newTestAuthenticator("DiscoverDhaka")

	access, refresh, err := a.GenerateTokens(7, "user")
	require.NoError(t, err)

	// signed with different secrets, each side rejects the other
	_, err = a.ValidateAccessToken(refresh)
	assert.Error(t, err)

	_, err = a.ValidateRefreshToken(access)
	assert.Error(t, err)
}
