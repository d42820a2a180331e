package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionScale is the number of fractional digits every converted
// amount is rounded to (half-up).
const ConversionScale = 6

// RateTable maps the provider's composite pair key (for example "USDEUR")
// to an exchange rate. The key shape is the provider's concatenation
// convention and is looked up verbatim, never parsed.
type RateTable map[string]decimal.Decimal

// PairRate is the exchange rate for a single currency pair.
type PairRate struct {
	Source    string          `json:"source_currency"`
	Target    string          `json:"target_currency"`
	Rate      decimal.Decimal `json:"exchange_rate"`
	Timestamp time.Time       `json:"timestamp"`
}

// AllRates holds every rate the provider quotes for a base currency.
type AllRates struct {
	Source    string    `json:"source_currency"`
	Quotes    RateTable `json:"rates"`
	Timestamp time.Time `json:"timestamp"`
}

// Lookup returns the rate for the given target currency using the
// provider's composite key convention.
func (a *AllRates) Lookup(target string) (decimal.Decimal, bool) {
	rate, ok := a.Quotes[a.Source+target]
	return rate, ok
}

// ConversionResult is the outcome of converting an amount between two
// currencies. ConvertedAmount is always SourceAmount * Rate rounded
// half-up to ConversionScale digits.
type ConversionResult struct {
	Source          string          `json:"source_currency"`
	Target          string          `json:"target_currency"`
	SourceAmount    decimal.Decimal `json:"source_amount"`
	ConvertedAmount decimal.Decimal `json:"converted_amount"`
	Rate            decimal.Decimal `json:"exchange_rate"`
	Timestamp       time.Time       `json:"timestamp"`
}

// MultiConversionResult is the outcome of converting one amount into
// several target currencies at once. Either every requested target is
// present in Conversions or the whole conversion failed; there are no
// partial results.
type MultiConversionResult struct {
	Source       string                     `json:"source_currency"`
	SourceAmount decimal.Decimal            `json:"source_amount"`
	Conversions  map[string]decimal.Decimal `json:"conversions"`
	Timestamp    time.Time                  `json:"timestamp"`
}

// Currency is one entry of the supported-currency catalog.
type Currency struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
