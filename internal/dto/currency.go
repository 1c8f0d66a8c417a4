package dto

import (
	"time"

	"github.com/dmaulidia/fx_rates_app/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to create a new currency.
type CreateCurrencyRequest struct {
	CurrencyCode  string `json:"currencyCode" binding:"required,uppercase,len=3"`
	Symbol        string `json:"symbol" binding:"required"`
	Name          string `json:"name" binding:"required"`
	IsBase        bool   `json:"isBase"`
	DecimalPlaces *int32 `json:"decimalPlaces" binding:"required,gte=0,lte=8"`
}

// SetCurrencyActiveRequest toggles a currency's active flag.
type SetCurrencyActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode  string    `json:"currencyCode"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	IsBase        bool      `json:"isBase"`
	IsActive      bool      `json:"isActive"`
	DecimalPlaces int32     `json:"decimalPlaces"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode:  curr.CurrencyCode,
		Symbol:        curr.Symbol,
		Name:          curr.Name,
		IsBase:        curr.IsBase,
		IsActive:      curr.IsActive,
		DecimalPlaces: curr.DecimalPlaces,
		CreatedAt:     curr.CreatedAt,
		CreatedBy:     curr.CreatedBy,
		LastUpdatedAt: curr.LastUpdatedAt,
		LastUpdatedBy: curr.LastUpdatedBy,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to a slice of CurrencyResponse DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, curr := range currencies {
		res[i] = ToCurrencyResponse(&curr) // Reuse the single converter
	}
	return res
}
