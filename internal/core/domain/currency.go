package domain

// Currency represents a currency supported by the storefront.
type Currency struct {
	CurrencyCode  string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol        string `json:"symbol"`       // e.g., "$"
	Name          string `json:"name"`         // e.g., "US Dollar"
	IsBase        bool   `json:"isBase"`       // exactly one active currency is the base
	IsActive      bool   `json:"isActive"`     // inactive currencies are excluded from conversion and listing
	DecimalPlaces int32  `json:"decimalPlaces"`
	AuditFields
}
