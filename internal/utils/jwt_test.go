package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solpay/internal/models"
)

func TestWatcherToken(t *testing.T) {
	token, err := GenerateWatcherToken("s3cret", "watcher-1", time.Hour)
	require.NoError(t, err)

	claims, err := ParseWatcherToken("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, "watcher-1", claims.Subject)
	assert.True(t, claims.HasScope(models.ScopeMarkPaid))

	_, err = ParseWatcherToken("other", token)
	assert.Error(t, err)

	_, err = ParseWatcherToken("", token)
	assert.ErrorIs(t, err, ErrSecretNotConfigured)

	_, err = GenerateWatcherToken("", "watcher-1", time.Hour)
	assert.ErrorIs(t, err, ErrSecretNotConfigured)
}

func TestWatcherTokenRejectsExpiredAndForeign(t *testing.T) {
	expired, err := GenerateWatcherToken("s3cret", "watcher-1", -time.Minute)
	require.NoError(t, err)
	_, err = ParseWatcherToken("s3cret", expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	// Signed with the right key but not issued by us.
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = ParseWatcherToken("s3cret", foreign)
	assert.Error(t, err)
}

func TestNewLinkID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		id, err := NewLinkID()
		require.NoError(t, err)
		assert.Len(t, id, LinkIDLength)
		for _, r := range id {
			assert.Contains(t, slugAlphabet, string(r))
		}
		seen[id] = true
	}
	assert.Len(t, seen, 200)
}
