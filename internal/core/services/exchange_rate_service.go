package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmaulidia/fx_rates_app/internal/apperrors"
	"github.com/dmaulidia/fx_rates_app/internal/core/domain"
	portsrepo "github.com/dmaulidia/fx_rates_app/internal/core/ports/repositories"
	portssvc "github.com/dmaulidia/fx_rates_app/internal/core/ports/services"
	"github.com/dmaulidia/fx_rates_app/internal/dto"
	"github.com/shopspring/decimal"
)

// ExchangeRateService provides business logic for the rate store: exact-pair
// reads, validated upserts, and the freshness judgment over stored rates.
type ExchangeRateService struct {
	rateRepo        portsrepo.ExchangeRateRepositoryFacade
	currencyService portssvc.CurrencyReaderSvc
	freshness       domain.FreshnessPolicy
	now             func() time.Time
}

// ExchangeRateServiceOption configures an ExchangeRateService.
type ExchangeRateServiceOption func(*ExchangeRateService)

// WithRateClock overrides the service clock, used by tests.
func WithRateClock(now func() time.Time) ExchangeRateServiceOption {
	return func(s *ExchangeRateService) {
		s.now = now
	}
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	currencyService portssvc.CurrencyReaderSvc,
	freshness domain.FreshnessPolicy,
	opts ...ExchangeRateServiceOption,
) *ExchangeRateService {
	s := &ExchangeRateService{
		rateRepo:        rateRepo,
		currencyService: currencyService,
		freshness:       freshness,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpsertExchangeRate creates or overwrites the rate for the ordered pair.
// Manual upserts are hand-entered data, so they carry the seed provenance
// tag; only a live provider refresh writes an authoritative source.
func (s *ExchangeRateService) UpsertExchangeRate(ctx context.Context, req dto.UpsertExchangeRateRequest, updaterUserID string) (*domain.ExchangeRate, error) {
	fromCode := strings.ToUpper(req.FromCurrencyCode)
	toCode := strings.ToUpper(req.ToCurrencyCode)

	if len(fromCode) != 3 || len(toCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	if fromCode == toCode {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rate must be positive, got %s", apperrors.ErrInvalidRate, req.Rate)
	}

	// Both currencies must exist before a rate can reference them.
	if _, err := s.currencyService.GetCurrencyByCode(ctx, fromCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: 'from' currency code '%s' not found", apperrors.ErrValidation, fromCode)
		}
		return nil, fmt.Errorf("failed to validate 'from' currency '%s': %w", fromCode, err)
	}
	if _, err := s.currencyService.GetCurrencyByCode(ctx, toCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: 'to' currency code '%s' not found", apperrors.ErrValidation, toCode)
		}
		return nil, fmt.Errorf("failed to validate 'to' currency '%s': %w", toCode, err)
	}

	now := s.now()
	rate := domain.ExchangeRate{
		FromCurrencyCode: fromCode,
		ToCurrencyCode:   toCode,
		Rate:             req.Rate,
		Source:           domain.SourceSeed,
		LastUpdated:      now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     updaterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: updaterUserID,
		},
	}

	if err := s.rateRepo.UpsertExchangeRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to upsert exchange rate in service: %w", err)
	}

	return &rate, nil
}

// GetExchangeRate retrieves the stored rate for the exact ordered pair.
func (s *ExchangeRateService) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if len(fromCode) != 3 || len(toCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	rate, err := s.rateRepo.FindExchangeRate(ctx, fromCode, toCode)
	if err != nil {
		// Repository layer maps missing pairs to ErrNotFound.
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}

	return rate, nil
}

// ListExchangeRates retrieves the full rate table, ordered by target code.
func (s *ExchangeRateService) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListExchangeRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates in service: %w", err)
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}

// IsFresh reports whether the rate's value is within the configured max age.
func (s *ExchangeRateService) IsFresh(rate domain.ExchangeRate) bool {
	return s.freshness.IsFresh(rate, s.now())
}
