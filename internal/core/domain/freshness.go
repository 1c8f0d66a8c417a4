package domain

import "time"

// FreshnessPolicy decides whether a stored rate is recent enough to trust
// for live conversions. The threshold is configuration, applied uniformly
// across all pairs. Per-currency overrides are a possible extension but are
// not part of the base policy.
type FreshnessPolicy struct {
	MaxAge time.Duration
}

// IsFresh reports whether the rate's value was confirmed within MaxAge of now.
func (p FreshnessPolicy) IsFresh(rate ExchangeRate, now time.Time) bool {
	return now.Sub(rate.LastUpdated) < p.MaxAge
}
