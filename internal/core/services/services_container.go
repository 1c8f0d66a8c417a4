package services

import (
	"github.com/dmaulidia/fx_rates_app/internal/core/domain"
	portsprov "github.com/dmaulidia/fx_rates_app/internal/core/ports/providers"
	portsrepo "github.com/dmaulidia/fx_rates_app/internal/core/ports/repositories"
	portssvc "github.com/dmaulidia/fx_rates_app/internal/core/ports/services"
	"github.com/dmaulidia/fx_rates_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, provider portsprov.RateProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Currency service first; the rate services depend on it.
	container.Currency = NewCurrencyService(repos.CurrencyRepo)

	freshness := domain.FreshnessPolicy{MaxAge: cfg.RateMaxAge}
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, container.Currency, freshness)
	container.Conversion = NewConversionService(repos.ExchangeRateRepo, container.Currency)
	container.Refresh = NewRateRefreshService(repos.ExchangeRateRepo, repos.CurrencyRepo, provider, cfg.SeedRates)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CurrencySvcFacade     = (*CurrencyService)(nil)
	_ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)
	_ portssvc.ConversionSvc         = (*ConversionService)(nil)
	_ portssvc.RateRefreshSvc        = (*RateRefreshService)(nil)
)
