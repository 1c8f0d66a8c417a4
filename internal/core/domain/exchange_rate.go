package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RateSource marks the provenance of a stored exchange rate.
// It is a closed set: either the seed marker or a known provider name,
// validated at the write boundary so an unknown tag is a rejected write.
type RateSource string

// SourceSeed marks bootstrap data that was never confirmed by a live source.
const SourceSeed RateSource = "seed"

// knownProviderSources is the set of external providers allowed to tag rates.
var knownProviderSources = map[RateSource]struct{}{
	"exchangerate-api": {},
}

// ParseRateSource validates a provenance tag.
func ParseRateSource(s string) (RateSource, error) {
	src := RateSource(s)
	if src == SourceSeed {
		return src, nil
	}
	if _, ok := knownProviderSources[src]; ok {
		return src, nil
	}
	return "", fmt.Errorf("unknown rate source %q", s)
}

// IsSeed reports whether the rate value is still bootstrap data.
func (s RateSource) IsSeed() bool {
	return s == SourceSeed
}

// ExchangeRate stores the conversion rate for an ordered currency pair.
// Direction matters: a pair and its inverse are distinct records, persisted
// explicitly so they can diverge if the provider supplies asymmetric data.
// The convention is "1 unit of FromCurrencyCode equals Rate units of
// ToCurrencyCode".
type ExchangeRate struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"` // FK -> Currency.currencyCode
	ToCurrencyCode   string          `json:"toCurrencyCode"`   // FK -> Currency.currencyCode
	Rate             decimal.Decimal `json:"rate"`             // always > 0
	Source           RateSource      `json:"source"`
	// LastUpdated records when the numeric value was last confirmed correct,
	// distinct from the audit timestamps which track storage-level changes.
	LastUpdated time.Time `json:"lastUpdated"`
	AuditFields
}
