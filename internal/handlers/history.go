package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"solpay/internal/models"
	"solpay/internal/services/history"
	"solpay/internal/utils/response"
)

type HistoryHandler struct {
	history history.Service
	log     zerolog.Logger
}

func NewHistoryHandler(svc history.Service, log zerolog.Logger) *HistoryHandler {
	return &HistoryHandler{
		history: svc,
		log:     log.With().Str("handler", "history").Logger(),
	}
}

// List supports ?type=&search=&from=&to=&limit=, timestamps in unix ms.
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	filter := models.HistoryFilter{
		Type:   models.QRType(c.Query("type")),
		Search: strings.TrimSpace(c.Query("search")),
		From:   int64(c.QueryInt("from", 0)),
		To:     int64(c.QueryInt("to", 0)),
		Limit:  c.QueryInt("limit", 0),
	}

	items, err := h.history.List(c.UserContext(), filter)
	if err != nil {
		return handleError(c, h.log, err)
	}
	if items == nil {
		items = []models.HistoryItem{}
	}
	return response.Success(c, items)
}

func (h *HistoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.history.Delete(c.UserContext(), c.Params("id")); err != nil {
		return handleError(c, h.log, err)
	}
	return response.NoContent(c)
}

func (h *HistoryHandler) Clear(c *fiber.Ctx) error {
	if _, err := h.history.Clear(c.UserContext()); err != nil {
		return handleError(c, h.log, err)
	}
	return response.NoContent(c)
}

// Export downloads every item as a JSON array.
func (h *HistoryHandler) Export(c *fiber.Ctx) error {
	data, err := h.history.Export(c.UserContext())
	if err != nil {
		return handleError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="solana-pay-history.json"`)
	c.Type("json")
	return c.Send(data)
}

// Import accepts the array produced by Export and reports how many records
// were stored and skipped.
func (h *HistoryHandler) Import(c *fiber.Ctx) error {
	res, err := h.history.Import(c.UserContext(), c.Body())
	if err != nil {
		return handleError(c, h.log, err)
	}
	return response.Success(c, res)
}
