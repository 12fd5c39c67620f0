package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"solpay/internal/services/generator"
	"solpay/internal/utils/response"
)

type GenerateHandler struct {
	generator generator.Service
	log       zerolog.Logger
}

func NewGenerateHandler(svc generator.Service, log zerolog.Logger) *GenerateHandler {
	return &GenerateHandler{
		generator: svc,
		log:       log.With().Str("handler", "generate").Logger(),
	}
}

func (h *GenerateHandler) Transfer(c *fiber.Ctx) error {
	var req generator.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	res, err := h.generator.Transfer(c.UserContext(), req)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return response.Success(c, res)
}

func (h *GenerateHandler) TransactionRequest(c *fiber.Ctx) error {
	var req generator.TransactionRequestInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	res, err := h.generator.TransactionRequest(c.UserContext(), req)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return response.Success(c, res)
}

func (h *GenerateHandler) Message(c *fiber.Ctx) error {
	var req generator.MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	res, err := h.generator.Message(c.UserContext(), req)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return response.Success(c, res)
}
