package services

import (
	"context"

	"github.com/dmaulidia/fx_rates_app/internal/core/domain"
	"github.com/dmaulidia/fx_rates_app/internal/dto"
)

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetExchangeRate retrieves the stored rate for the exact ordered pair.
	GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves the full rate table, ordered by target code.
	ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)

	// IsFresh reports whether the rate's value is within the configured max age.
	// Staleness is advisory; callers decide whether to proceed with stale data.
	IsFresh(rate domain.ExchangeRate) bool
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// UpsertExchangeRate creates or overwrites the rate for the ordered pair.
	// Privileged operation for admin/maintenance tooling.
	UpsertExchangeRate(ctx context.Context, req dto.UpsertExchangeRateRequest, updaterUserID string) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}

// ConversionSvc converts amounts between currencies against the current rate
// snapshot. It performs no writes and triggers no refresh; staleness is the
// caller's concern via ExchangeRateReaderSvc.IsFresh.
type ConversionSvc interface {
	Convert(ctx context.Context, req dto.ConvertRequest) (*dto.ConvertResponse, error)
}

// RateRefreshSvc populates the rate store from seed data and from the live
// provider. Both paths share one postcondition: every active non-base
// currency has both directions populated.
type RateRefreshSvc interface {
	// SeedRates writes forward and inverse rates for configured seed pairs not
	// already present, tagged as seed data. Re-runnable; existing pairs are
	// skipped regardless of source.
	SeedRates(ctx context.Context) ([]dto.SeedRateResult, error)

	// RefreshRates fetches live rates for all active non-base currencies and
	// upserts both directions per currency. Per-currency failures are reported
	// in the result list without rolling back the rest of the batch.
	RefreshRates(ctx context.Context) (*dto.RefreshReport, error)
}
