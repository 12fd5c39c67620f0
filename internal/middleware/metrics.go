package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"solpay/internal/metrics"
)

// Metrics records the count and latency of each request by route pattern.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		metrics.ObserveHTTP(c.Method(), c.Route().Path, status, time.Since(start).Seconds())
		return err
	}
}
