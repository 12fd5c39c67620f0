package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"solpay/internal/services/simulator"
	"solpay/internal/utils/response"
)

type SimulateHandler struct {
	simulator simulator.Service
	timeout   time.Duration
	log       zerolog.Logger
}

func NewSimulateHandler(svc simulator.Service, timeout time.Duration, log zerolog.Logger) *SimulateHandler {
	return &SimulateHandler{
		simulator: svc,
		timeout:   timeout,
		log:       log.With().Str("handler", "simulate").Logger(),
	}
}

func (h *SimulateHandler) Simulate(c *fiber.Ctx) error {
	var req simulator.Request
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	ctx := c.UserContext()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	res, err := h.simulator.Simulate(ctx, req)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return response.Success(c, res)
}

func (h *SimulateHandler) Scenarios(c *fiber.Ctx) error {
	return response.Success(c, h.simulator.Scenarios())
}
