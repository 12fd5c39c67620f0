// Package middleware provides the fiber middleware of the API: bearer
// token scopes, request metrics and rate limiting.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"solpay/internal/models"
	"solpay/internal/utils"
	"solpay/internal/utils/response"
)

// WatcherAuth admits chain watchers allowed to confirm payments.
func WatcherAuth(secret string, log zerolog.Logger) fiber.Handler {
	return RequireScope(secret, models.ScopeMarkPaid, log)
}

// RequireScope validates an HS256 bearer token carrying scope and stores its
// claims in the request context. With an empty secret every request is
// refused.
func RequireScope(secret, scope string, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c)
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return response.Unauthorized(c)
		}

		claims, err := utils.ParseWatcherToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			log.Debug().Err(err).Str("ip", c.IP()).Msg("token rejected")
			return response.Unauthorized(c)
		}
		if !claims.HasScope(scope) {
			log.Debug().Str("subject", claims.Subject).Str("scope", scope).Msg("token lacks scope")
			return response.Unauthorized(c)
		}

		c.Locals(utils.LocalsWatcher, claims)
		return c.Next()
	}
}
