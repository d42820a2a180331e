// Package webapi maps the exchange service onto HTTP. Routing, request
// binding and the error envelope live here; all business logic sits below.
package webapi

import (
	"log/slog"

	"github.com/amirasaad/exchange/pkg/currency"
	exchangesvc "github.com/amirasaad/exchange/pkg/service/exchange"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewApp assembles the Fiber app with all middleware and routes.
func NewApp(
	svc *exchangesvc.Service,
	catalog *currency.Catalog,
	registry *prometheus.Registry,
	logger *slog.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "exchange",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.NewString() },
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("exchange service is up")
	})
	app.Get("/metrics", adaptor.HTTPHandler(
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	))

	validate := NewValidator(catalog)
	ExchangeRoutes(app, svc, validate, logger)
	CurrencyRoutes(app, catalog)

	return app
}
