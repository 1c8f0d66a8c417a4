package repositories

import (
	"context"

	"github.com/dmaulidia/fx_rates_app/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindExchangeRate retrieves the record for the exact ordered pair.
	// It never inverts or composes; a missing direct record is ErrNotFound.
	FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves all stored rates ordered by to_currency_code.
	ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// UpsertExchangeRate creates or overwrites the single record for the
	// ordered pair in one atomic write, so concurrent writers never observe
	// a record with a new rate but an old source or timestamp.
	UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
// This is a facade for clients that need access to all operations
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
