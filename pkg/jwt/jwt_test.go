package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")

	tok, err := Issue("user-1", "a@b.com", "user", secret, 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := Verify(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")

	tok, err := Issue("user-1", "a@b.com", "user", secret, -time.Hour)
	require.NoError(t, err)

	_, err = Verify(tok, secret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := Issue("user-1", "a@b.com", "user", []byte("right"), time.Hour)
	require.NoError(t, err)

	_, err = Verify(tok, []byte("wrong"))
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	_, err := Verify("not.a.jwt", []byte("secret"))
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_ExpiryWindow(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")

	// A 24h token is still valid well before expiry and rejected after it.
	tok, err := Issue("user-1", "a@b.com", "user", secret, 23*time.Hour)
	require.NoError(t, err)
	_, err = Verify(tok, secret)
	require.NoError(t, err)

	tok, err = Issue("user-1", "a@b.com", "user", secret, -time.Hour)
	require.NoError(t, err)
	_, err = Verify(tok, secret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestDecode_NoSignatureCheck(t *testing.T) {
	t.Parallel()

	tok, err := Issue("user-1", "a@b.com", "admin", []byte("server-only-secret"), time.Hour)
	require.NoError(t, err)

	claims, err := Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	_, err = Decode("garbage")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
