package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solpay/internal/logger"
	"solpay/internal/models"
	"solpay/internal/utils"
)

func TestWatcherAuth(t *testing.T) {
	app := fiber.New()
	app.Post("/paid", WatcherAuth("s3cret", logger.Nop()), func(c *fiber.Ctx) error {
		claims, err := utils.GetWatcherClaims(c)
		if err != nil {
			return err
		}
		return c.SendString(claims.Subject)
	})

	valid, err := utils.GenerateWatcherToken("s3cret", "watcher-1", time.Hour)
	require.NoError(t, err)

	noScope, err := jwt.NewWithClaims(jwt.SigningMethodHS256, models.WatcherClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "solpay",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"missing scope", "Bearer " + noScope, http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/paid", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestRequireScope(t *testing.T) {
	app := fiber.New()
	app.Delete("/history", RequireScope("s3cret", models.ScopeHistoryAdmin, logger.Nop()), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusNoContent)
	})

	watcher, err := utils.GenerateWatcherToken("s3cret", "watcher-1", time.Hour)
	require.NoError(t, err)
	admin, err := utils.GenerateWatcherToken("s3cret", "ops", time.Hour, models.ScopeHistoryAdmin)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"watcher scope only", "Bearer " + watcher, http.StatusUnauthorized},
		{"history admin", "Bearer " + admin, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/history", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestWatcherAuthWithoutSecret(t *testing.T) {
	app := fiber.New()
	app.Post("/paid", WatcherAuth("", logger.Nop()), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Issuer: "solpay"}).SignedString([]byte(""))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/paid", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRateLimit(t *testing.T) {
	app := fiber.New()
	app.Get("/", RateLimit(1, time.Minute), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
}
