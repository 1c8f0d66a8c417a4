package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmaulidia/fx_rates_app/internal/apperrors"
	"github.com/dmaulidia/fx_rates_app/internal/core/domain"
	portsrepo "github.com/dmaulidia/fx_rates_app/internal/core/ports/repositories"
	portssvc "github.com/dmaulidia/fx_rates_app/internal/core/ports/services"
	"github.com/dmaulidia/fx_rates_app/internal/dto"
)

// ConversionService converts amounts between currencies against the current
// rate snapshot. It is a pure read path: no writes, no refresh triggers.
// Staleness is the caller's concern via ExchangeRateService.IsFresh.
type ConversionService struct {
	rateRepo        portsrepo.ExchangeRateReader
	currencyService portssvc.CurrencyReaderSvc
}

// NewConversionService creates a new ConversionService.
func NewConversionService(rateRepo portsrepo.ExchangeRateReader, currencyService portssvc.CurrencyReaderSvc) *ConversionService {
	return &ConversionService{
		rateRepo:        rateRepo,
		currencyService: currencyService,
	}
}

// Convert resolves the applicable rate for the pair, directly or composed via
// the base currency, and rounds the result half-to-even to the target
// currency's decimal places.
func (s *ConversionService) Convert(ctx context.Context, req dto.ConvertRequest) (*dto.ConvertResponse, error) {
	fromCode := strings.ToUpper(req.FromCurrencyCode)
	toCode := strings.ToUpper(req.ToCurrencyCode)

	// Identity short-circuit: the amount passes through untouched, with no
	// rate lookup and no rounding.
	if fromCode == toCode {
		return &dto.ConvertResponse{
			Amount:           req.Amount,
			FromCurrencyCode: fromCode,
			ToCurrencyCode:   toCode,
			ConvertedAmount:  req.Amount,
			Route:            dto.RouteIdentity,
		}, nil
	}

	from, err := s.resolveActiveCurrency(ctx, fromCode)
	if err != nil {
		return nil, err
	}
	to, err := s.resolveActiveCurrency(ctx, toCode)
	if err != nil {
		return nil, err
	}

	converted := req.Amount
	route := dto.RouteDirect

	direct, err := s.rateRepo.FindExchangeRate(ctx, from.CurrencyCode, to.CurrencyCode)
	switch {
	case err == nil:
		converted = converted.Mul(direct.Rate)
	case errors.Is(err, apperrors.ErrNotFound):
		// No direct record: compose via the base currency. Both legs must be
		// stored explicitly; the inverse of a single direction is never
		// derived at read time.
		base, baseErr := s.currencyService.GetBaseCurrency(ctx)
		if baseErr != nil {
			return nil, fmt.Errorf("failed to resolve base currency: %w", baseErr)
		}

		fromLeg, legErr := s.rateRepo.FindExchangeRate(ctx, from.CurrencyCode, base.CurrencyCode)
		if legErr != nil {
			return nil, pairUnavailable(from.CurrencyCode, to.CurrencyCode, legErr)
		}
		toLeg, legErr := s.rateRepo.FindExchangeRate(ctx, base.CurrencyCode, to.CurrencyCode)
		if legErr != nil {
			return nil, pairUnavailable(from.CurrencyCode, to.CurrencyCode, legErr)
		}

		converted = converted.Mul(fromLeg.Rate).Mul(toLeg.Rate)
		route = dto.RouteComposed
	default:
		return nil, fmt.Errorf("failed to look up exchange rate: %w", err)
	}

	// Banker's rounding at the target currency's smallest representable unit.
	// A zero-decimal currency rounds to whole units, never truncates.
	converted = converted.RoundBank(to.DecimalPlaces)

	return &dto.ConvertResponse{
		Amount:           req.Amount,
		FromCurrencyCode: from.CurrencyCode,
		ToCurrencyCode:   to.CurrencyCode,
		ConvertedAmount:  converted,
		Route:            route,
	}, nil
}

// resolveActiveCurrency fetches the currency once so its decimal places
// travel with the resolved value instead of being looked up again later.
func (s *ConversionService) resolveActiveCurrency(ctx context.Context, code string) (*domain.Currency, error) {
	currency, err := s.currencyService.GetCurrencyByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, code)
		}
		return nil, fmt.Errorf("failed to resolve currency '%s': %w", code, err)
	}
	if !currency.IsActive {
		return nil, fmt.Errorf("%w: currency '%s' is not active", apperrors.ErrValidation, code)
	}
	return currency, nil
}

func pairUnavailable(fromCode, toCode string, cause error) error {
	if errors.Is(cause, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: no stored route for %s/%s", apperrors.ErrRateUnavailable, fromCode, toCode)
	}
	return fmt.Errorf("failed to look up exchange rate for %s/%s: %w", fromCode, toCode, cause)
}
