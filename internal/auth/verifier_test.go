package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHMACVerifierRoundTrip(t *testing.T) {
	ver, err := NewHMACVerifier("test-secret-0123456789")
	require.NoError(t, err)

	raw, err := GenerateToken("test-secret-0123456789", "user-1", time.Minute)
	require.NoError(t, err)

	tok, err := ver.Verify(context.Background(), raw)
	require.NoError(t, err)

	var claims map[string]interface{}
	require.NoError(t, tok.Claims(&claims))
	require.Equal(t, "user-1", claims["sub"])
}

func TestHMACVerifierRejectsWrongSecret(t *testing.T) {
	ver, err := NewHMACVerifier("right-secret")
	require.NoError(t, err)

	raw, err := GenerateToken("wrong-secret", "user-1", time.Minute)
	require.NoError(t, err)

	_, err = ver.Verify(context.Background(), raw)
	require.Error(t, err)
}

func TestHMACVerifierRejectsExpiredToken(t *testing.T) {
	ver, err := NewHMACVerifier("secret")
	require.NoError(t, err)

	raw, err := GenerateToken("secret", "user-1", -time.Minute)
	require.NoError(t, err)

	_, err = ver.Verify(context.Background(), raw)
	require.Error(t, err)
}

func TestNewHMACVerifierRequiresSecret(t *testing.T) {
	_, err := NewHMACVerifier("")
	require.Error(t, err)
}
