package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidRate indicates a non-positive or non-numeric exchange rate value.
// It is rejected before persistence and is fatal only to that single upsert,
// never to a whole refresh batch.
var ErrInvalidRate = errors.New("invalid exchange rate")

// ErrRateUnavailable indicates that no stored record exists for the requested
// pair, directly or composed via the base currency. Conversion aborts; there
// is no fallback to a default rate.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ErrProviderUnavailable indicates the external rate provider failed or timed
// out. Callers may retry; previously-successful pair upserts stay intact.
var ErrProviderUnavailable = errors.New("rate provider unavailable")
