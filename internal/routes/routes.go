// Package routes defines the API routing configuration.
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"solpay/internal/handlers"
	"solpay/internal/middleware"
	"solpay/internal/models"
	"solpay/internal/services/generator"
	"solpay/internal/services/history"
	"solpay/internal/services/onchain"
	"solpay/internal/services/paylink"
	"solpay/internal/services/qr"
	"solpay/internal/services/simulator"
)

// Dependencies are the services the routes dispatch to.
type Dependencies struct {
	Links     paylink.Service
	OnChain   onchain.Service
	Generator generator.Service
	Simulator simulator.Service
	History   history.Service
	QR        qr.Service

	DefaultNetwork    onchain.Network
	OnChainTimeout    time.Duration
	ValidateRateLimit int
	WatcherJWTSecret  string
	HealthChecks      map[string]handlers.HealthCheck

	Log zerolog.Logger
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	app.Use(middleware.Metrics())

	qrHandler := handlers.NewQRHandler(deps.QR, deps.Log)
	linkHandler := handlers.NewLinkHandler(deps.Links, qrHandler, deps.Log)
	validateHandler := handlers.NewValidateHandler(deps.OnChain, deps.DefaultNetwork, deps.OnChainTimeout, deps.Log)
	generateHandler := handlers.NewGenerateHandler(deps.Generator, deps.Log)
	simulateHandler := handlers.NewSimulateHandler(deps.Simulator, deps.OnChainTimeout, deps.Log)
	historyHandler := handlers.NewHistoryHandler(deps.History, deps.Log)
	healthHandler := handlers.NewHealthHandler(deps.HealthChecks)

	app.Get("/health", healthHandler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/pay/:id", linkHandler.ShareLink)

	api := app.Group("/api")

	links := api.Group("/links")
	links.Post("/", linkHandler.CreateLink)
	links.Get("/:id", linkHandler.GetLink)
	links.Get("/:id/status", linkHandler.GetStatus)
	links.Get("/:id/qr", linkHandler.GetQR)
	links.Post("/:id/paid", middleware.WatcherAuth(deps.WatcherJWTSecret, deps.Log), linkHandler.MarkPaid)

	limit := deps.ValidateRateLimit
	if limit <= 0 {
		limit = 60
	}
	api.Post("/validate", middleware.RateLimit(limit, time.Minute), validateHandler.ValidateOnChain)
	api.Post("/validate/syntax", validateHandler.ValidateSyntax)

	generate := api.Group("/generate")
	generate.Post("/transfer", generateHandler.Transfer)
	generate.Post("/transaction-request", generateHandler.TransactionRequest)
	generate.Post("/message", generateHandler.Message)

	api.Post("/simulate", simulateHandler.Simulate)
	api.Get("/simulate/scenarios", simulateHandler.Scenarios)

	historyAdmin := middleware.RequireScope(deps.WatcherJWTSecret, models.ScopeHistoryAdmin, deps.Log)
	hist := api.Group("/history")
	hist.Get("/", historyHandler.List)
	hist.Get("/export", historyHandler.Export)
	hist.Post("/import", historyAdmin, historyHandler.Import)
	hist.Delete("/", historyAdmin, historyHandler.Clear)
	hist.Delete("/:id", historyAdmin, historyHandler.Delete)
}
