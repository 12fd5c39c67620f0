package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	apperrors "solpay/internal/errors"
	"solpay/internal/models"
	"solpay/internal/repositories"
	"solpay/internal/services/generator"
	"solpay/internal/services/history"
	"solpay/internal/services/onchain"
	"solpay/internal/services/paylink"
	"solpay/internal/services/qr"
	"solpay/internal/services/simulator"
	"solpay/internal/utils/response"
)

// handleError maps service errors to API errors. Anything unrecognized is
// logged and answered with a 500.
func handleError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	if de, ok := apperrors.As(err); ok {
		return response.Error(c, de)
	}

	var linkErr *paylink.ValidationError
	if errors.As(err, &linkErr) {
		return response.ValidationError(c, linkErr.Issues)
	}
	var genErr *generator.ValidationError
	if errors.As(err, &genErr) {
		return response.ValidationError(c, genErr.Issues)
	}
	var simErr *simulator.ValidationError
	if errors.As(err, &simErr) {
		return response.ValidationError(c, simErr.Issues)
	}

	switch {
	case errors.Is(err, paylink.ErrLinkNotFound):
		return response.NotFound(c, apperrors.ErrLinkNotFound)
	case errors.Is(err, paylink.ErrLinkNotPending):
		return response.Error(c, apperrors.ErrLinkNotPending)
	case errors.Is(err, repositories.ErrHistoryNotFound):
		return response.NotFound(c, apperrors.ErrHistoryNotFound)
	case errors.Is(err, history.ErrInvalidImport):
		return response.Error(c, apperrors.ErrInvalidImport)
	case errors.Is(err, models.ErrUnknownQRType):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, onchain.ErrUnsupportedNetwork):
		return response.Error(c, apperrors.ErrUnsupportedNetwork)
	case errors.Is(err, simulator.ErrUnknownScenario):
		return response.Error(c, apperrors.ErrUnknownScenario)
	case errors.Is(err, qr.ErrContentTooLarge):
		return response.Error(c, apperrors.ErrQRContentTooLarge)
	}

	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	return response.ServerError(c)
}
