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
	"github.com/dmaulidia/fx_rates_app/internal/dto"
)

// CurrencyService provides business logic for currencies.
type CurrencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
	now          func() time.Time
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) *CurrencyService {
	return &CurrencyService{
		currencyRepo: currencyRepo,
		now:          time.Now,
	}
}

// CreateCurrency handles the creation of a new currency. Currency rows are
// created once at setup and rarely change afterwards.
func (s *CurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	// Basic format validation is handled by DTO binding tags.
	if req.IsBase {
		existing, err := s.currencyRepo.FindBaseCurrency(ctx)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check for existing base currency: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: base currency %s already exists", apperrors.ErrDuplicate, existing.CurrencyCode)
		}
	}

	if existing, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: currency %s", apperrors.ErrDuplicate, req.CurrencyCode)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing currency: %w", err)
	}

	now := s.now()
	currency := domain.Currency{
		CurrencyCode:  req.CurrencyCode,
		Symbol:        req.Symbol,
		Name:          req.Name,
		IsBase:        req.IsBase,
		IsActive:      true,
		DecimalPlaces: *req.DecimalPlaces,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		return nil, fmt.Errorf("failed to create currency in service: %w", err)
	}

	return &currency, nil
}

// SetCurrencyActive toggles a currency's active flag. The base currency
// cannot be deactivated; every other rate is expressed against it.
func (s *CurrencyService) SetCurrencyActive(ctx context.Context, currencyCode string, active bool, updaterUserID string) (*domain.Currency, error) {
	currencyCode = strings.ToUpper(currencyCode)

	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find currency %s: %w", currencyCode, err)
	}

	if currency.IsBase && !active {
		return nil, fmt.Errorf("%w: base currency %s cannot be deactivated", apperrors.ErrValidation, currencyCode)
	}

	currency.IsActive = active
	currency.LastUpdatedAt = s.now()
	currency.LastUpdatedBy = updaterUserID

	if err := s.currencyRepo.SaveCurrency(ctx, *currency); err != nil {
		return nil, fmt.Errorf("failed to update currency %s: %w", currencyCode, err)
	}

	return currency, nil
}

// GetCurrencyByCode retrieves a currency by code.
func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency by code in service: %w", err)
	}
	return currency, nil
}

// GetBaseCurrency retrieves the single active base currency.
func (s *CurrencyService) GetBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindBaseCurrency(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get base currency in service: %w", err)
	}
	return currency, nil
}

// ListCurrencies retrieves currencies, optionally only active ones.
func (s *CurrencyService) ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	// Return empty slice if no currencies found, not nil
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}
