package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	tokens, err := NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)
	return tokens
}

func TestNewTokenServiceRejectsWeakSecret(t *testing.T) {
	_, err := NewTokenService("short", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService(testSecret, 0)
	assert.Error(t, err)
}

func TestTokenIssueVerify(t *testing.T) {
	tokens := newTestTokenService(t)

	signed, err := tokens.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	subject, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}

func TestTokenVerifyExpired(t *testing.T) {
	tokens := newTestTokenService(t)

	issuedAt := time.Now()
	tokens.now = func() time.Time { return issuedAt }
	signed, err := tokens.Issue("user-123")
	require.NoError(t, err)

	// Jump past the ttl
	tokens.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	_, err = tokens.Verify(signed)
	assert.True(t, errors.Is(err, ErrTokenExpired), "got %v", err)
}

func TestTokenVerifyWrongKey(t *testing.T) {
	tokens := newTestTokenService(t)
	signed, err := tokens.Issue("user-123")
	require.NoError(t, err)

	other, err := NewTokenService("ffffffffffffffffffffffffffffffff", time.Hour)
	require.NoError(t, err)

	_, err = other.Verify(signed)
	assert.True(t, errors.Is(err, ErrTokenInvalid), "got %v", err)
}

func TestTokenVerifyTampered(t *testing.T) {
	tokens := newTestTokenService(t)
	signed, err := tokens.Issue("user-123")
	require.NoError(t, err)

	tampered := signed[:len(signed)-2] + "xx"
	_, err = tokens.Verify(tampered)
	assert.Error(t, err)
}

func TestTokenVerifyMalformed(t *testing.T) {
	tokens := newTestTokenService(t)

	_, err := tokens.Verify("not.a.token")
	assert.True(t, errors.Is(err, ErrTokenMalformed), "got %v", err)

	_, err = tokens.Verify("")
	assert.Error(t, err)
}
