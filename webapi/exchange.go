package webapi

import (
	"log/slog"

	exchangesvc "github.com/amirasaad/exchange/pkg/service/exchange"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ExchangeRoutes registers rate and conversion endpoints.
func ExchangeRoutes(app *fiber.App, svc *exchangesvc.Service, validate *validator.Validate, logger *slog.Logger) {
	rates := app.Group("/api/v1/exchange/rates")
	rates.Get("/single", GetExchangeRate(svc, validate, logger))
	rates.Get("/all", GetAllRates(svc, validate, logger))

	convert := app.Group("/api/v1/exchange/convert")
	convert.Get("/single", ConvertAmount(svc, validate, logger))
	convert.Post("/multiple", ConvertToMultipleCurrencies(svc, validate, logger))
}

// GetExchangeRate returns the current rate for one currency pair.
// @Summary Get exchange rate between two currencies
// @Description Retrieves the current exchange rate from source currency to target currency
// @Tags exchange
// @Produce json
// @Param source query string true "Source currency code" example(USD)
// @Param target query string true "Target currency code" example(EUR)
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /api/v1/exchange/rates/single [get]
func GetExchangeRate(svc *exchangesvc.Service, validate *validator.Validate, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := BindQueryAndValidate[SingleRateRequest](c, validate)
		if req == nil {
			return err
		}

		rate, err := svc.GetRate(c.Context(), req.Source, req.Target)
		if err != nil {
			logger.Error("failed to get exchange rate", "source", req.Source, "target", req.Target, "error", err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to get exchange rate", err.Error())
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Exchange rate fetched successfully", toPairRateResponse(rate))
	}
}

// GetAllRates returns every rate quoted for a base currency.
// @Summary Get all exchange rates for a specific currency
// @Description Retrieves current exchange rates from the base currency to all available currencies
// @Tags exchange
// @Produce json
// @Param currency query string true "Base currency code" example(USD)
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /api/v1/exchange/rates/all [get]
func GetAllRates(svc *exchangesvc.Service, validate *validator.Validate, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := BindQueryAndValidate[AllRatesRequest](c, validate)
		if req == nil {
			return err
		}

		rates, err := svc.GetAllRates(c.Context(), req.Currency)
		if err != nil {
			logger.Error("failed to get all rates", "currency", req.Currency, "error", err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to get exchange rates", err.Error())
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Exchange rates fetched successfully", toAllRatesResponse(rates))
	}
}

// ConvertAmount converts an amount from one currency to another.
// @Summary Convert amount from one currency to another
// @Description Converts a specified amount from source currency to target currency using current exchange rates
// @Tags exchange
// @Produce json
// @Param source query string true "Source currency code" example(USD)
// @Param target query string true "Target currency code" example(EUR)
// @Param amount query string true "Amount to convert" example(100.00)
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 422 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /api/v1/exchange/convert/single [get]
func ConvertAmount(svc *exchangesvc.Service, validate *validator.Validate, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := BindQueryAndValidate[ConvertRequest](c, validate)
		if req == nil {
			return err
		}

		amount, err := decimal.NewFromString(req.Amount)
		if err != nil || !amount.IsPositive() {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", "amount must be a positive decimal number")
		}

		result, err := svc.Convert(c.Context(), req.Source, req.Target, amount)
		if err != nil {
			logger.Error("failed to convert amount", "source", req.Source, "target", req.Target, "error", err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to convert amount", err.Error())
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Amount converted successfully", toConversionResponse(result))
	}
}

// ConvertToMultipleCurrencies converts one amount into several currencies.
// @Summary Convert amount from one currency to multiple currencies
// @Description Converts a specified amount from source currency to multiple target currencies simultaneously
// @Tags exchange
// @Accept json
// @Produce json
// @Param request body MultiConvertRequest true "Multi-currency conversion request"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 422 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /api/v1/exchange/convert/multiple [post]
func ConvertToMultipleCurrencies(svc *exchangesvc.Service, validate *validator.Validate, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := BindBodyAndValidate[MultiConvertRequest](c, validate)
		if req == nil {
			return err
		}
		if !req.Amount.IsPositive() {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", "amount must be a positive decimal number")
		}

		result, err := svc.ConvertMulti(c.Context(), req.SourceCurrency, req.TargetCurrencies, req.Amount)
		if err != nil {
			logger.Error("failed to convert to multiple currencies", "source", req.SourceCurrency, "targets", req.TargetCurrencies, "error", err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to convert amount", err.Error())
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Amount converted successfully", toMultiConversionResponse(result))
	}
}
