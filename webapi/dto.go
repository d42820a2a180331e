package webapi

import (
	"time"

	"github.com/amirasaad/exchange/pkg/exchange/core"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// SingleRateRequest asks for the rate of one currency pair.
type SingleRateRequest struct {
	Source string `query:"source" validate:"required,len=3,uppercase,supported"`
	Target string `query:"target" validate:"required,len=3,uppercase,supported"`
}

// AllRatesRequest asks for every rate quoted for a base currency.
type AllRatesRequest struct {
	Currency string `query:"currency" validate:"required,len=3,uppercase,supported"`
}

// ConvertRequest asks to convert an amount between two currencies. The
// amount arrives as a query string and is parsed as an exact decimal.
type ConvertRequest struct {
	Source string `query:"source" validate:"required,len=3,uppercase,supported"`
	Target string `query:"target" validate:"required,len=3,uppercase,supported"`
	Amount string `query:"amount" validate:"required"`
}

// MultiConvertRequest asks to convert one amount into several currencies.
type MultiConvertRequest struct {
	SourceCurrency   string          `json:"source_currency" validate:"required,len=3,uppercase,supported"`
	TargetCurrencies []string        `json:"target_currencies" validate:"required,min=1,dive,len=3,uppercase,supported"`
	Amount           decimal.Decimal `json:"amount"`
}

// PairRateResponse is the payload for a single-pair rate.
type PairRateResponse struct {
	SourceCurrency string    `json:"source_currency"`
	TargetCurrency string    `json:"target_currency"`
	ExchangeRate   string    `json:"exchange_rate"`
	Timestamp      time.Time `json:"timestamp"`
}

// AllRatesResponse is the payload for a whole rate table.
type AllRatesResponse struct {
	SourceCurrency string            `json:"source_currency"`
	Rates          map[string]string `json:"rates"`
	Timestamp      time.Time         `json:"timestamp"`
}

// ConversionResponse is the payload for a single conversion. Amounts carry
// exactly core.ConversionScale fractional digits.
type ConversionResponse struct {
	SourceCurrency  string    `json:"source_currency"`
	TargetCurrency  string    `json:"target_currency"`
	SourceAmount    string    `json:"source_amount"`
	ConvertedAmount string    `json:"converted_amount"`
	ExchangeRate    string    `json:"exchange_rate"`
	Timestamp       time.Time `json:"timestamp"`
}

// MultiConversionResponse is the payload for a multi-currency conversion.
type MultiConversionResponse struct {
	SourceCurrency string            `json:"source_currency"`
	SourceAmount   string            `json:"source_amount"`
	Conversions    map[string]string `json:"conversions"`
	Timestamp      time.Time         `json:"timestamp"`
}

// CurrencyResponse is one supported currency.
type CurrencyResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func toPairRateResponse(rate *core.PairRate) *PairRateResponse {
	return &PairRateResponse{
		SourceCurrency: rate.Source,
		TargetCurrency: rate.Target,
		ExchangeRate:   rate.Rate.String(),
		Timestamp:      rate.Timestamp,
	}
}

func toAllRatesResponse(rates *core.AllRates) *AllRatesResponse {
	return &AllRatesResponse{
		SourceCurrency: rates.Source,
		Rates: lo.MapValues(rates.Quotes, func(rate decimal.Decimal, _ string) string {
			return rate.String()
		}),
		Timestamp: rates.Timestamp,
	}
}

func toConversionResponse(result *core.ConversionResult) *ConversionResponse {
	return &ConversionResponse{
		SourceCurrency:  result.Source,
		TargetCurrency:  result.Target,
		SourceAmount:    result.SourceAmount.StringFixed(core.ConversionScale),
		ConvertedAmount: result.ConvertedAmount.StringFixed(core.ConversionScale),
		ExchangeRate:    result.Rate.String(),
		Timestamp:       result.Timestamp,
	}
}

func toMultiConversionResponse(result *core.MultiConversionResult) *MultiConversionResponse {
	return &MultiConversionResponse{
		SourceCurrency: result.Source,
		SourceAmount:   result.SourceAmount.StringFixed(core.ConversionScale),
		Conversions: lo.MapValues(result.Conversions, func(amount decimal.Decimal, _ string) string {
			return amount.StringFixed(core.ConversionScale)
		}),
		Timestamp: result.Timestamp,
	}
}

func toCurrencyResponses(currencies []core.Currency) []CurrencyResponse {
	return lo.Map(currencies, func(cur core.Currency, _ int) CurrencyResponse {
		return CurrencyResponse{Code: cur.Code, Name: cur.Name}
	})
}
