package password_test

import (
	"testing"

	"investhub/internal/pkg/password"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("s3cret-password")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-password", hash)

	require.True(t, password.Verify("s3cret-password", hash))
	require.False(t, password.Verify("wrong-password", hash))
}

func TestHashIsSalted(t *testing.T) {
	h1, err := password.Hash("same-input")
	require.NoError(t, err)
	h2, err := password.Hash("same-input")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}

func TestHashTokenIsDeterministic(t *testing.T) {
	h1 := password.HashToken("refresh-token-value")
	h2 := password.HashToken("refresh-token-value")
	require.Equal(t, h1, h2)
	require.NotEqual(t, h1, password.HashToken("other-token"))
	require.Len(t, h1, 64) // hex encoded sha256
}
