package exchange

import (
	"time"

	"github.com/amirasaad/exchange/pkg/exchange/core"
	"github.com/shopspring/decimal"
)

// Converter performs the conversion arithmetic. It never looks up rates
// itself; callers supply a rate obtained from the cache.
type Converter struct{}

// NewConverter creates a Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// ConvertSingle multiplies amount by the pair rate and rounds half-up to
// core.ConversionScale fractional digits. A zero amount goes through the
// same arithmetic and rounding as any other.
func (c *Converter) ConvertSingle(rate *core.PairRate, amount decimal.Decimal) *core.ConversionResult {
	return &core.ConversionResult{
		Source:          rate.Source,
		Target:          rate.Target,
		SourceAmount:    amount,
		ConvertedAmount: roundHalfUp(amount.Mul(rate.Rate)),
		Rate:            rate.Rate,
		Timestamp:       time.Now(),
	}
}

// ConvertMulti converts amount into every requested target currency using
// the all-rates table. A target with no rate in the table fails the whole
// conversion with a RateNotFoundError; no partial result is produced.
// Duplicate targets collapse to a single entry.
func (c *Converter) ConvertMulti(rates *core.AllRates, targets []string, amount decimal.Decimal) (*core.MultiConversionResult, error) {
	conversions := make(map[string]decimal.Decimal, len(targets))
	for _, target := range targets {
		rate, ok := rates.Lookup(target)
		if !ok {
			return nil, &core.RateNotFoundError{Source: rates.Source, Target: target}
		}
		conversions[target] = roundHalfUp(amount.Mul(rate))
	}

	return &core.MultiConversionResult{
		Source:       rates.Source,
		SourceAmount: amount,
		Conversions:  conversions,
		Timestamp:    time.Now(),
	}, nil
}

// roundHalfUp rounds to the conversion scale. decimal.Round rounds half
// away from zero, which matches half-up for the non-negative amounts this
// service deals in.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Round(core.ConversionScale)
}
