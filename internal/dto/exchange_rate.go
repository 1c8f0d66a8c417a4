package dto

import (
	"time"

	"github.com/dmaulidia/fx_rates_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertExchangeRateRequest defines the structure for a manual rate upsert.
// The pair itself comes from the URL; only the value travels in the body.
type UpsertExchangeRateRequest struct {
	FromCurrencyCode string          `json:"-"`
	ToCurrencyCode   string          `json:"-"`
	Rate             decimal.Decimal `json:"rate" binding:"required"`
}

// ExchangeRateResponse defines the structure for API responses containing
// exchange rate details, including the advisory freshness flag.
type ExchangeRateResponse struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	Source           string          `json:"source"`
	LastUpdated      time.Time       `json:"lastUpdated"`
	Fresh            bool            `json:"fresh"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate, fresh bool) ExchangeRateResponse {
	return ExchangeRateResponse{
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		Rate:             rate.Rate,
		Source:           string(rate.Source),
		LastUpdated:      rate.LastUpdated,
		Fresh:            fresh,
	}
}

// RateTableResponse is the full current rate table with per-pair freshness.
type RateTableResponse struct {
	BaseCurrencyCode string                 `json:"baseCurrencyCode"`
	Rates            []ExchangeRateResponse `json:"rates"`
	AsOf             time.Time              `json:"asOf"`
}

// FreshnessResponse answers "is the system's rate data currently fresh?"
// for health/monitoring use.
type FreshnessResponse struct {
	Fresh      bool      `json:"fresh"`
	TotalPairs int       `json:"totalPairs"`
	StalePairs int       `json:"stalePairs"`
	CheckedAt  time.Time `json:"checkedAt"`
}
