package dto

import "github.com/shopspring/decimal"

// ConvertRequest asks for an amount to be converted between two currencies.
type ConvertRequest struct {
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,uppercase,len=3"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,uppercase,len=3"`
}

// ConvertResponse carries the converted amount, rounded half-to-even to the
// target currency's decimal places, plus the rate route that produced it.
type ConvertResponse struct {
	Amount           decimal.Decimal `json:"amount"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	ConvertedAmount  decimal.Decimal `json:"convertedAmount"`
	// Route is "identity", "direct" or "composed" depending on how the rate
	// was resolved.
	Route string `json:"route"`
}

// Conversion route values.
const (
	RouteIdentity = "identity"
	RouteDirect   = "direct"
	RouteComposed = "composed"
)
