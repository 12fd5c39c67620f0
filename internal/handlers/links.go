package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"solpay/internal/services/paylink"
	"solpay/internal/utils"
	"solpay/internal/utils/response"
)

type LinkHandler struct {
	links paylink.Service
	qr    *QRHandler
	log   zerolog.Logger
}

func NewLinkHandler(links paylink.Service, qr *QRHandler, log zerolog.Logger) *LinkHandler {
	return &LinkHandler{
		links: links,
		qr:    qr,
		log:   log.With().Str("handler", "links").Logger(),
	}
}

type markPaidRequest struct {
	Signature string `json:"signature"`
}

// CreateLink stores a new pending payment link.
func (h *LinkHandler) CreateLink(c *fiber.Ctx) error {
	var req paylink.CreateLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	res, err := h.links.CreateLink(c.UserContext(), req)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return response.Created(c, res)
}

// GetLink returns the public view of a link.
func (h *LinkHandler) GetLink(c *fiber.Ctx) error {
	link, err := h.links.GetLink(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return response.Success(c, link)
}

func (h *LinkHandler) GetStatus(c *fiber.Ctx) error {
	status, err := h.links.GetStatus(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return response.Success(c, status)
}

// MarkPaid is called by the chain watcher once the payment transaction is
// confirmed.
func (h *LinkHandler) MarkPaid(c *fiber.Ctx) error {
	var req markPaidRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	id := c.Params("id")
	status, err := h.links.MarkPaid(c.UserContext(), id, req.Signature)
	if err != nil {
		return handleError(c, h.log, err)
	}

	if claims, err := utils.GetWatcherClaims(c); err == nil {
		h.log.Info().Str("id", id).Str("watcher", claims.Subject).Msg("payment link marked paid")
	}
	return response.Success(c, status)
}

// GetQR renders the link's Solana Pay URL as a PNG.
func (h *LinkHandler) GetQR(c *fiber.Ctx) error {
	payURL, err := h.links.PaymentURL(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return h.qr.SendPNG(c, payURL)
}

// ShareLink serves the shareable /pay/:id URL: the public view, or the QR
// image when ?qr=1 is set.
func (h *LinkHandler) ShareLink(c *fiber.Ctx) error {
	if c.QueryBool("qr") {
		return h.GetQR(c)
	}
	return h.GetLink(c)
}
