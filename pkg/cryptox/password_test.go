package cryptox_test

import (
	"strings"
	"testing"

	"github.com/msgmaciel/adc-2024-2025/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := cryptox.HashPassword("Sup3r.Secret")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, cryptox.VerifyPassword("Sup3r.Secret", hash))
	require.Error(t, cryptox.VerifyPassword("Wrong.Secret", hash))
}

func TestHashPasswordSaltsAreUnique(t *testing.T) {
	first, err := cryptox.HashPassword("Sup3r.Secret")
	require.NoError(t, err)
	second, err := cryptox.HashPassword("Sup3r.Secret")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestVerifyPasswordRejectsMalformedHashes(t *testing.T) {
	cases := []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=2$not-base64!$aGFzaA",
	}
	for _, encoded := range cases {
		require.Error(t, cryptox.VerifyPassword("Sup3r.Secret", encoded), encoded)
	}
}
