package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeedRateResult reports the outcome of seeding one configured currency.
type SeedRateResult struct {
	CurrencyCode string          `json:"currencyCode"`
	RateToBase   decimal.Decimal `json:"rateToBase"`
	// Seeded is false when both directions already existed and the seed
	// left them untouched.
	Seeded bool   `json:"seeded"`
	Error  string `json:"error,omitempty"`
}

// CurrencyRefreshResult reports the outcome of refreshing one currency's
// forward and inverse rates against the base.
type CurrencyRefreshResult struct {
	CurrencyCode string `json:"currencyCode"`
	Updated      bool   `json:"updated"`
	Error        string `json:"error,omitempty"`
}

// RefreshReport is the per-currency result list of a live refresh batch.
// The batch as a whole completes for the currencies that succeeded.
type RefreshReport struct {
	Provider    string                  `json:"provider"`
	RefreshedAt time.Time               `json:"refreshedAt"`
	Results     []CurrencyRefreshResult `json:"results"`
	Succeeded   int                     `json:"succeeded"`
	Failed      int                     `json:"failed"`
}
