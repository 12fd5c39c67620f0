package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"solpay/internal/models"
)

// LocalsWatcher is the fiber locals key holding *models.WatcherClaims.
const LocalsWatcher = "watcher"

// GetWatcherClaims extracts the watcher claims from the Fiber context.
func GetWatcherClaims(c *fiber.Ctx) (*models.WatcherClaims, error) {
	v := c.Locals(LocalsWatcher)
	if v == nil {
		return nil, errors.New("claims not found in context")
	}

	claims, ok := v.(*models.WatcherClaims)
	if !ok {
		return nil, errors.New("invalid claims type")
	}
	return claims, nil
}
