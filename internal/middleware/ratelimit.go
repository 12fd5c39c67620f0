package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	apperrors "solpay/internal/errors"
	"solpay/internal/utils/response"
)

// RateLimit allows max requests per window and client IP. Rejected requests
// get a 429 with a Retry-After hint.
func RateLimit(max int, window time.Duration) fiber.Handler {
	retryAfter := strconv.Itoa(int(window.Seconds()))
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			if len(c.Response().Header.Peek(fiber.HeaderRetryAfter)) == 0 {
				c.Set(fiber.HeaderRetryAfter, retryAfter)
			}
			return response.Error(c, apperrors.ErrRateLimited)
		},
	})
}
