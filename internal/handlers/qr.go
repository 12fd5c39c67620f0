package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	apperrors "solpay/internal/errors"
	"solpay/internal/services/qr"
	"solpay/internal/utils/response"
)

type QRHandler struct {
	qrService qr.Service
	log       zerolog.Logger
}

func NewQRHandler(qrService qr.Service, log zerolog.Logger) *QRHandler {
	return &QRHandler{
		qrService: qrService,
		log:       log.With().Str("handler", "qr").Logger(),
	}
}

// SendPNG writes content as a PNG QR code.
func (h *QRHandler) SendPNG(c *fiber.Ctx, content string) error {
	png, err := h.qrService.PNG(content)
	if err != nil {
		if errors.Is(err, qr.ErrContentTooLarge) {
			return response.Error(c, apperrors.ErrQRContentTooLarge)
		}
		h.log.Error().Err(err).Msg("failed to render QR code")
		return response.Error(c, apperrors.ErrQRRender)
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Type("png")
	return c.Send(png)
}
