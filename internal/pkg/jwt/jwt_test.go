package jwt_test

import (
	"testing"

	"investhub/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

const (
	testSecret        = "test-secret"
	testRefreshSecret = "test-refresh-secret"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := jwt.GenerateAccessToken("user-1", "admin@investhub.in", "admin", testSecret, 15)
	require.NoError(t, err)

	claims, err := jwt.ValidateAccessToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "admin@investhub.in", claims.Email)
	require.Equal(t, "admin", claims.Role)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := jwt.GenerateAccessToken("user-1", "a@b.c", "admin", testSecret, 15)
	require.NoError(t, err)

	_, err = jwt.ValidateAccessToken(token, "other-secret")
	require.ErrorIs(t, err, jwt.ErrTokenInvalid)
}

func TestExpiredAccessToken(t *testing.T) {
	token, err := jwt.GenerateAccessToken("user-1", "a@b.c", "admin", testSecret, -1)
	require.NoError(t, err)

	_, err = jwt.ValidateAccessToken(token, testSecret)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := jwt.GenerateRefreshToken("user-1", "token-id-1", testRefreshSecret, 7)
	require.NoError(t, err)

	claims, err := jwt.ValidateRefreshToken(token, testRefreshSecret)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "token-id-1", claims.TokenID)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	access, err := jwt.GenerateAccessToken("user-1", "a@b.c", "admin", testSecret, 15)
	require.NoError(t, err)

	// An access token validated against the refresh secret must fail
	_, err = jwt.ValidateRefreshToken(access, testRefreshSecret)
	require.Error(t, err)
}
