package core

import (
	"errors"
	"fmt"
)

// Common errors for exchange operations
var (
	// ErrProviderUnavailable indicates that the rate provider is not available
	ErrProviderUnavailable = errors.New("rate provider unavailable")

	// ErrRateNotFound indicates that the requested rate was not found
	ErrRateNotFound = errors.New("exchange rate not found")

	// ErrInvalidAmount indicates that an invalid amount was provided
	ErrInvalidAmount = errors.New("invalid amount")
)

// ProviderError represents a failed call to the external rate provider:
// unreachable, timed out, non-2xx, or a success=false payload. Provider
// errors are never cached.
type ProviderError struct {
	Op       string // operation being performed, e.g. "live" or "list"
	Upstream string // message reported by the provider, if any
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Upstream != "" {
		return fmt.Sprintf("provider %s: %s: %v", e.Op, e.Upstream, e.Err)
	}
	return fmt.Sprintf("provider %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsProviderError checks if an error is a ProviderError
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

// RateNotFoundError indicates a specific currency pair was absent from an
// otherwise successful rate response. Unlike ProviderError this is a
// client-correctable condition.
type RateNotFoundError struct {
	Source string
	Target string
}

func (e *RateNotFoundError) Error() string {
	return fmt.Sprintf("exchange rate not found for pair %s-%s", e.Source, e.Target)
}

func (e *RateNotFoundError) Unwrap() error {
	return ErrRateNotFound
}
