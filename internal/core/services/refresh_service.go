package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dmaulidia/fx_rates_app/internal/apperrors"
	"github.com/dmaulidia/fx_rates_app/internal/core/domain"
	portsprov "github.com/dmaulidia/fx_rates_app/internal/core/ports/providers"
	portsrepo "github.com/dmaulidia/fx_rates_app/internal/core/ports/repositories"
	"github.com/dmaulidia/fx_rates_app/internal/dto"
	"github.com/shopspring/decimal"
)

// Actor IDs recorded in audit fields for writes not tied to a user.
const (
	seedActorID    = "system:seed"
	refreshActorID = "system:refresh"
)

// RateRefreshService populates the rate store. The seed path and the live
// refresh path share one postcondition, both directions populated for every
// active non-base currency, but differ in trigger and provenance.
type RateRefreshService struct {
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
	provider     portsprov.RateProvider
	seedRates    map[string]decimal.Decimal
	now          func() time.Time
}

// RateRefreshServiceOption configures a RateRefreshService.
type RateRefreshServiceOption func(*RateRefreshService)

// WithRefreshClock overrides the service clock, used by tests.
func WithRefreshClock(now func() time.Time) RateRefreshServiceOption {
	return func(s *RateRefreshService) {
		s.now = now
	}
}

// NewRateRefreshService creates a new RateRefreshService. seedRates holds the
// configured rate-to-base per currency code.
func NewRateRefreshService(
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	currencyRepo portsrepo.CurrencyReader,
	provider portsprov.RateProvider,
	seedRates map[string]decimal.Decimal,
	opts ...RateRefreshServiceOption,
) *RateRefreshService {
	s := &RateRefreshService{
		rateRepo:     rateRepo,
		currencyRepo: currencyRepo,
		provider:     provider,
		seedRates:    seedRates,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SeedRates writes forward and inverse rates for configured pairs not already
// present, tagged as seed data. Pairs that exist are skipped regardless of
// their source, so seeding never overwrites a live rate and the operation is
// safely re-runnable.
func (s *RateRefreshService) SeedRates(ctx context.Context) ([]dto.SeedRateResult, error) {
	base, err := s.currencyRepo.FindBaseCurrency(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base currency for seeding: %w", err)
	}

	codes := make([]string, 0, len(s.seedRates))
	for code := range s.seedRates {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	results := make([]dto.SeedRateResult, 0, len(codes))
	for _, code := range codes {
		rateToBase := s.seedRates[code]
		result := dto.SeedRateResult{CurrencyCode: code, RateToBase: rateToBase}

		if code == base.CurrencyCode {
			result.Error = "currency is the base; no seed rate applies"
			results = append(results, result)
			continue
		}
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				result.Error = fmt.Sprintf("currency %s is not registered", code)
			} else {
				result.Error = err.Error()
			}
			results = append(results, result)
			continue
		}

		// The inverse seed is the exact reciprocal of the forward seed. Live
		// refreshes are free to diverge from that relationship later; the
		// two directions stay independently stored.
		rateFromBase := decimal.NewFromInt(1).Div(rateToBase)

		seededForward, err := s.seedDirection(ctx, code, base.CurrencyCode, rateToBase)
		if err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		seededInverse, err := s.seedDirection(ctx, base.CurrencyCode, code, rateFromBase)
		if err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		result.Seeded = seededForward || seededInverse
		results = append(results, result)
	}

	return results, nil
}

// seedDirection writes one direction unless a record for the pair already
// exists. Returns whether a write happened.
func (s *RateRefreshService) seedDirection(ctx context.Context, fromCode, toCode string, rate decimal.Decimal) (bool, error) {
	_, err := s.rateRepo.FindExchangeRate(ctx, fromCode, toCode)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return false, fmt.Errorf("failed to check existing rate %s/%s: %w", fromCode, toCode, err)
	}

	now := s.now()
	record := domain.ExchangeRate{
		FromCurrencyCode: fromCode,
		ToCurrencyCode:   toCode,
		Rate:             rate,
		Source:           domain.SourceSeed,
		LastUpdated:      now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     seedActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: seedActorID,
		},
	}
	if err := s.rateRepo.UpsertExchangeRate(ctx, record); err != nil {
		return false, fmt.Errorf("failed to seed rate %s/%s: %w", fromCode, toCode, err)
	}
	return true, nil
}

// RefreshRates fetches live rates for all active non-base currencies and
// upserts both directions per currency with the provider's provenance tag.
// Each currency is its own unit of work: one bad value is reported in the
// result list while the rest of the batch still lands.
func (s *RateRefreshService) RefreshRates(ctx context.Context) (*dto.RefreshReport, error) {
	base, err := s.currencyRepo.FindBaseCurrency(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base currency for refresh: %w", err)
	}

	source, err := domain.ParseRateSource(s.provider.Name())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	currencies, err := s.currencyRepo.ListCurrencies(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list active currencies for refresh: %w", err)
	}

	codes := make([]string, 0, len(currencies))
	for _, currency := range currencies {
		if currency.CurrencyCode != base.CurrencyCode {
			codes = append(codes, strings.ToUpper(currency.CurrencyCode))
		}
	}

	fetched, err := s.provider.FetchRates(ctx, base.CurrencyCode, codes)
	if err != nil {
		// A failed or timed-out fetch is retryable and leaves the store as it
		// was; previously-successful upserts from earlier batches stay intact.
		return nil, err
	}

	now := s.now()
	report := &dto.RefreshReport{
		Provider:    s.provider.Name(),
		RefreshedAt: now,
		Results:     make([]dto.CurrencyRefreshResult, 0, len(codes)),
	}

	for _, code := range codes {
		result := dto.CurrencyRefreshResult{CurrencyCode: code}

		rateFromBase, ok := fetched[code]
		switch {
		case !ok:
			result.Error = "provider returned no rate for currency"
		case rateFromBase.LessThanOrEqual(decimal.Zero):
			// Validation failures are non-retryable and must be rejected
			// before reaching the store.
			result.Error = fmt.Sprintf("%s: %s", apperrors.ErrInvalidRate, rateFromBase)
		default:
			rateToBase := decimal.NewFromInt(1).Div(rateFromBase)
			if err := s.refreshPair(ctx, base.CurrencyCode, code, rateFromBase, rateToBase, source, now); err != nil {
				result.Error = err.Error()
			} else {
				result.Updated = true
			}
		}

		if result.Updated {
			report.Succeeded++
		} else {
			report.Failed++
		}
		report.Results = append(report.Results, result)
	}

	return report, nil
}

// refreshPair upserts both directions for one currency against the base.
func (s *RateRefreshService) refreshPair(ctx context.Context, baseCode, code string, rateFromBase, rateToBase decimal.Decimal, source domain.RateSource, now time.Time) error {
	forward := domain.ExchangeRate{
		FromCurrencyCode: baseCode,
		ToCurrencyCode:   code,
		Rate:             rateFromBase,
		Source:           source,
		LastUpdated:      now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     refreshActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: refreshActorID,
		},
	}
	if err := s.rateRepo.UpsertExchangeRate(ctx, forward); err != nil {
		return fmt.Errorf("upsert %s/%s: %w", baseCode, code, err)
	}

	inverse := forward
	inverse.FromCurrencyCode = code
	inverse.ToCurrencyCode = baseCode
	inverse.Rate = rateToBase
	if err := s.rateRepo.UpsertExchangeRate(ctx, inverse); err != nil {
		return fmt.Errorf("upsert %s/%s: %w", code, baseCode, err)
	}

	return nil
}
