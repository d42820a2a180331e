package webapi

import (
	"github.com/amirasaad/exchange/pkg/currency"
	"github.com/gofiber/fiber/v2"
)

// CurrencyRoutes registers the supported-currency endpoint.
func CurrencyRoutes(app *fiber.App, catalog *currency.Catalog) {
	app.Get("/api/v1/currencies", ListCurrencies(catalog))
}

// ListCurrencies returns the catalog snapshot.
// @Summary List supported currencies
// @Description Get all currencies the service accepts for conversion
// @Tags currencies
// @Produce json
// @Success 200 {object} Response
// @Router /api/v1/currencies [get]
func ListCurrencies(catalog *currency.Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return SuccessResponseJSON(
			c,
			fiber.StatusOK,
			"Currencies fetched successfully",
			toCurrencyResponses(catalog.Currencies()),
		)
	}
}
