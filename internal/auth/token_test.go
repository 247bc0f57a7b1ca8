package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdefghijklmnopqrstuv"

func TestTokensRoundTrip(t *testing.T) {
	tokens, err := NewTokens(testSecret, time.Hour)
	require.NoError(t, err)

	raw, err := tokens.Issue(42, 3)
	require.NoError(t, err)

	claims, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, 3, claims.Version)
	assert.Equal(t, "42", claims.Subject)
}

func TestTokensRejects(t *testing.T) {
	tokens, err := NewTokens(testSecret, time.Hour)
	require.NoError(t, err)
	raw, err := tokens.Issue(1, 0)
	require.NoError(t, err)

	other, err := NewTokens("another-secret-another-secret-xx", time.Hour)
	require.NoError(t, err)
	_, err = other.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong secret")

	_, err = tokens.Parse(raw + "x")
	assert.ErrorIs(t, err, ErrInvalidToken, "tampered signature")

	_, err = tokens.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokensExpire(t *testing.T) {
	tokens, err := NewTokens(testSecret, time.Minute)
	require.NoError(t, err)

	start := time.Now()
	tokens.now = func() time.Time { return start }
	raw, err := tokens.Issue(1, 0)
	require.NoError(t, err)

	tokens.now = func() time.Time { return start.Add(2 * time.Minute) }
	_, err = tokens.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokensEmptySecret(t *testing.T) {
	_, err := NewTokens("", time.Hour)
	assert.Error(t, err)
}
