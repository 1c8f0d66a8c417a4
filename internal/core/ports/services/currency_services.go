package services

import (
	"context"

	"github.com/dmaulidia/fx_rates_app/internal/core/domain"
	"github.com/dmaulidia/fx_rates_app/internal/dto"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// GetBaseCurrency retrieves the single active base currency.
	GetBaseCurrency(ctx context.Context) (*domain.Currency, error)

	// ListCurrencies retrieves currencies, optionally only active ones.
	ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	// SetCurrencyActive toggles a currency's active flag. Deactivating the
	// base currency is rejected.
	SetCurrencyActive(ctx context.Context, currencyCode string, active bool, updaterUserID string) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
