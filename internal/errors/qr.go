package errors

import "github.com/gofiber/fiber/v2"

var (
	ErrQRContentTooLarge = &DomainError{
		Status:  fiber.StatusBadRequest,
		Code:    "QR_CONTENT_TOO_LARGE",
		Message: "content is too large for a QR code",
	}
	ErrQRRender = &DomainError{
		Status:  fiber.StatusInternalServerError,
		Code:    "QR_RENDER_FAILED",
		Message: "failed to render QR code",
	}
)
