package response

import (
	"github.com/gofiber/fiber/v2"

	apperrors "solpay/internal/errors"
)

func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// Error writes a DomainError as {"error", "code", "details"}.
func Error(c *fiber.Ctx, err *apperrors.DomainError) error {
	return c.Status(err.HTTPStatus()).JSON(err)
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, apperrors.ErrInvalidRequest.WithMessage(message))
}

func ValidationError(c *fiber.Ctx, details interface{}) error {
	return Error(c, apperrors.ErrValidation.WithDetails(details))
}

func NotFound(c *fiber.Ctx, err *apperrors.DomainError) error {
	return Error(c, err)
}

func ServerError(c *fiber.Ctx) error {
	return Error(c, apperrors.ErrInternal)
}

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, apperrors.ErrUnauthorized)
}
