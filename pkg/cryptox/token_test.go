package cryptox

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateHexToken(t *testing.T) {
	t.Parallel()

	t.Run("produces hex of twice the byte length", func(t *testing.T) {
		token, err := GenerateHexToken(TokenSizeCredential)
		require.NoError(t, err)
		require.Len(t, token, 2*TokenSizeCredential)
	})

	t.Run("rejects non-positive sizes", func(t *testing.T) {
		_, err := GenerateHexToken(0)
		require.Error(t, err)
		_, err = GenerateHexToken(-4)
		require.Error(t, err)
	})

	t.Run("successive tokens differ", func(t *testing.T) {
		a, err := GenerateHexToken(TokenSizeCSRF)
		require.NoError(t, err)
		b, err := GenerateHexToken(TokenSizeCSRF)
		require.NoError(t, err)
		require.NotEqual(t, a, b)
	})
}

func TestGenerateNumericCode(t *testing.T) {
	t.Parallel()

	for range 50 {
		code, err := GenerateNumericCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}

func TestConstantTimeEquals(t *testing.T) {
	t.Parallel()

	require.True(t, ConstantTimeEquals("abc123", "abc123"))
	require.False(t, ConstantTimeEquals("abc123", "abc124"))
	require.False(t, ConstantTimeEquals("abc123", "abc12"))
	require.True(t, ConstantTimeEquals("", ""))
}

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	require.NoError(t, VerifyPassword("s3cret-pass", hash))
	require.Error(t, VerifyPassword("wrong-pass", hash))
}
