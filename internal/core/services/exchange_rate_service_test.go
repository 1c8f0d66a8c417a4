package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/dmaulidia/fx_rates_app/internal/apperrors"
	"github.com/dmaulidia/fx_rates_app/internal/core/domain"
	"github.com/dmaulidia/fx_rates_app/internal/core/services"
	"github.com/dmaulidia/fx_rates_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrencyCode, toCurrencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// MockCurrencyService implements the CurrencyReaderSvc interface
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) GetBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo    *MockExchangeRateRepository
	mockCurrencySvc *MockCurrencyService
	service         *services.ExchangeRateService
	fixedNow        time.Time
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencySvc = new(MockCurrencyService)
	suite.fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewExchangeRateService(
		suite.mockRateRepo,
		suite.mockCurrencySvc,
		domain.FreshnessPolicy{MaxAge: time.Hour},
		services.WithRateClock(func() time.Time { return suite.fixedNow }),
	)
}

// --- Test Cases ---

func (suite *ExchangeRateServiceTestSuite) TestUpsertExchangeRate_Success() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()
	req := dto.UpsertExchangeRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "EUR",
		Rate:             decimal.NewFromFloat(0.85),
	}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "EUR").Return(&domain.Currency{CurrencyCode: "EUR"}, nil).Once()
	suite.mockRateRepo.On("UpsertExchangeRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(nil).Once()

	rate, err := suite.service.UpsertExchangeRate(ctx, req, updaterUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.Equal("USD", rate.FromCurrencyCode)
	suite.Equal("EUR", rate.ToCurrencyCode)
	suite.True(req.Rate.Equal(rate.Rate))
	suite.Equal(domain.SourceSeed, rate.Source)
	suite.Equal(suite.fixedNow, rate.LastUpdated)
	suite.Equal(updaterUserID, rate.LastUpdatedBy)

	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockCurrencySvc.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestUpsertExchangeRate_NonPositiveRate() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()

	for _, value := range []decimal.Decimal{decimal.Zero, decimal.NewFromFloat(-0.5)} {
		req := dto.UpsertExchangeRateRequest{
			FromCurrencyCode: "USD",
			ToCurrencyCode:   "EUR",
			Rate:             value,
		}

		rate, err := suite.service.UpsertExchangeRate(ctx, req, updaterUserID)

		suite.Require().Error(err)
		suite.Nil(rate)
		suite.ErrorIs(err, apperrors.ErrInvalidRate)
	}

	// A rejected write never reaches the store, so the prior record survives.
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpsertExchangeRate")
}

func (suite *ExchangeRateServiceTestSuite) TestUpsertExchangeRate_SameCurrency() {
	ctx := context.Background()
	req := dto.UpsertExchangeRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "USD",
		Rate:             decimal.NewFromInt(1),
	}

	rate, err := suite.service.UpsertExchangeRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "cannot be the same")
}

func (suite *ExchangeRateServiceTestSuite) TestUpsertExchangeRate_UnknownCurrency() {
	ctx := context.Background()
	req := dto.UpsertExchangeRateRequest{
		FromCurrencyCode: "XXX",
		ToCurrencyCode:   "EUR",
		Rate:             decimal.NewFromFloat(0.85),
	}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.UpsertExchangeRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "'from' currency code")
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpsertExchangeRate")
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_Success() {
	ctx := context.Background()
	expected := &domain.ExchangeRate{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Rate: decimal.NewFromFloat(0.85)}

	suite.mockRateRepo.On("FindExchangeRate", ctx, "USD", "EUR").Return(expected, nil).Once()

	rate, err := suite.service.GetExchangeRate(ctx, "usd", "eur")

	suite.Require().NoError(err)
	suite.Equal(expected, rate)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_NeverInverts() {
	ctx := context.Background()

	// Only EUR/USD is stored; the exact pair USD/EUR must miss rather than
	// answer with the reciprocal.
	suite.mockRateRepo.On("FindExchangeRate", ctx, "USD", "EUR").Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.GetExchangeRate(ctx, "USD", "EUR")

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_InvalidCode() {
	ctx := context.Background()

	rate, err := suite.service.GetExchangeRate(ctx, "US", "EUR")

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestIsFresh_WithinMaxAge() {
	rate := domain.ExchangeRate{LastUpdated: suite.fixedNow.Add(-30 * time.Minute)}
	suite.True(suite.service.IsFresh(rate))
}

func (suite *ExchangeRateServiceTestSuite) TestIsFresh_PastMaxAge() {
	rate := domain.ExchangeRate{LastUpdated: suite.fixedNow.Add(-2 * time.Hour)}
	suite.False(suite.service.IsFresh(rate))
}

func (suite *ExchangeRateServiceTestSuite) TestIsFresh_ExactBoundaryIsStale() {
	rate := domain.ExchangeRate{LastUpdated: suite.fixedNow.Add(-time.Hour)}
	suite.False(suite.service.IsFresh(rate))
}

func (suite *ExchangeRateServiceTestSuite) TestListExchangeRates_EmptyNotNil() {
	ctx := context.Background()

	suite.mockRateRepo.On("ListExchangeRates", ctx).Return(nil, nil).Once()

	rates, err := suite.service.ListExchangeRates(ctx)

	suite.Require().NoError(err)
	suite.NotNil(rates)
	suite.Empty(rates)
}

// --- Run Suite ---
func TestExchangeRateService(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
