package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"solpay/internal/models"
)

const watcherIssuer = "solpay"

var ErrSecretNotConfigured = errors.New("watcher secret not configured")

// GenerateWatcherToken signs an HS256 token granting subject the given
// scopes until ttl elapses. With no scopes the token may only mark links paid.
func GenerateWatcherToken(secret, subject string, ttl time.Duration, scopes ...string) (string, error) {
	if secret == "" {
		return "", ErrSecretNotConfigured
	}
	if len(scopes) == 0 {
		scopes = []string{models.ScopeMarkPaid}
	}

	now := time.Now()
	claims := models.WatcherClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    watcherIssuer,
			Subject:   subject,
		},
		Scopes: scopes,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseWatcherToken parses and validates a watcher token.
func ParseWatcherToken(secret, tokenStr string) (*models.WatcherClaims, error) {
	if secret == "" {
		return nil, ErrSecretNotConfigured
	}

	token, err := jwt.ParseWithClaims(tokenStr, &models.WatcherClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(watcherIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.WatcherClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
