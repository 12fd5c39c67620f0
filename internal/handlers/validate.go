package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"solpay/internal/metrics"
	"solpay/internal/services/onchain"
	"solpay/internal/services/syntax"
	"solpay/internal/utils/response"
)

type ValidateHandler struct {
	onchain        onchain.Service
	defaultNetwork onchain.Network
	timeout        time.Duration
	log            zerolog.Logger
}

func NewValidateHandler(svc onchain.Service, defaultNetwork onchain.Network, timeout time.Duration, log zerolog.Logger) *ValidateHandler {
	return &ValidateHandler{
		onchain:        svc,
		defaultNetwork: defaultNetwork,
		timeout:        timeout,
		log:            log.With().Str("handler", "validate").Logger(),
	}
}

type onChainRequest struct {
	Recipient string `json:"recipient"`
	Network   string `json:"network"`
	TokenMint string `json:"tokenMint"`
}

type syntaxRequest struct {
	URL string `json:"url"`
}

// ValidateOnChain checks a recipient against live chain state.
func (h *ValidateHandler) ValidateOnChain(c *fiber.Ctx) error {
	var req onChainRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	recipient := strings.TrimSpace(req.Recipient)
	if recipient == "" {
		return response.BadRequest(c, "recipient is required")
	}

	network := h.defaultNetwork
	if req.Network != "" {
		var err error
		if network, err = onchain.ParseNetwork(req.Network); err != nil {
			return handleError(c, h.log, err)
		}
	}

	ctx := c.UserContext()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	res := h.onchain.ValidateOnChain(ctx, recipient, network, strings.TrimSpace(req.TokenMint))
	return response.Success(c, res)
}

// ValidateSyntax checks a Solana Pay URL offline.
func (h *ValidateHandler) ValidateSyntax(c *fiber.Ctx) error {
	var req syntaxRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if strings.TrimSpace(req.URL) == "" {
		return response.BadRequest(c, "url is required")
	}

	out := syntax.ValidateSyntax(strings.TrimSpace(req.URL))
	metrics.RecordSyntaxValidation(out.Valid)
	return response.Success(c, out)
}
