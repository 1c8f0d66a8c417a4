package providers

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateProvider fetches current exchange rates from an external authoritative
// source, normalized against the given base currency: the returned map holds
// "1 unit of base equals rate units of code" for each requested code.
// Codes missing from the response are simply absent from the map; the caller
// treats them as per-currency failures, not a batch failure.
type RateProvider interface {
	// Name is the provenance tag written to rates fetched from this provider.
	Name() string

	// FetchRates retrieves rates for the given codes against base. Transport
	// failures and timeouts map to apperrors.ErrProviderUnavailable.
	FetchRates(ctx context.Context, base string, codes []string) (map[string]decimal.Decimal, error)
}
