package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_NotPlaintext(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", hash)
	require.True(t, strings.HasPrefix(hash, "$argon2id$"))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("same-password")
	require.NoError(t, err)
	second, err := HashPassword("same-password")
	require.NoError(t, err)
	require.NotEqual(t, first, second, "each hash should carry a fresh salt")
}

func TestVerifyPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	ok, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyPassword_InvalidFormat(t *testing.T) {
	for _, bad := range []string{
		"",
		"plaintext",
		"$bcrypt$something$else",
		"$argon2id$v=19$m=65536,t=3,p=2$only-one-part",
	} {
		_, err := VerifyPassword("anything", bad)
		require.Error(t, err, "hash %q should be rejected", bad)
	}
}
