package services_test

import (
	"context"
	"testing"

	"github.com/dmaulidia/fx_rates_app/internal/apperrors"
	"github.com/dmaulidia/fx_rates_app/internal/core/domain"
	"github.com/dmaulidia/fx_rates_app/internal/core/services"
	"github.com/dmaulidia/fx_rates_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type ConversionServiceTestSuite struct {
	suite.Suite
	mockRateRepo    *MockExchangeRateRepository
	mockCurrencySvc *MockCurrencyService
	service         *services.ConversionService
}

func (suite *ConversionServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencySvc = new(MockCurrencyService)
	suite.service = services.NewConversionService(suite.mockRateRepo, suite.mockCurrencySvc)
}

func activeCurrency(code string, decimalPlaces int32) *domain.Currency {
	return &domain.Currency{CurrencyCode: code, IsActive: true, DecimalPlaces: decimalPlaces}
}

// --- Test Cases ---

func (suite *ConversionServiceTestSuite) TestConvert_Identity() {
	ctx := context.Background()
	amount := decimal.RequireFromString("123.456")
	req := dto.ConvertRequest{Amount: amount, FromCurrencyCode: "JPY", ToCurrencyCode: "JPY"}

	resp, err := suite.service.Convert(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(dto.RouteIdentity, resp.Route)
	// The amount passes through untouched even though JPY has zero decimal
	// places; identity conversion does no lookup and no rounding.
	suite.True(amount.Equal(resp.ConvertedAmount))
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindExchangeRate")
	suite.mockCurrencySvc.AssertNotCalled(suite.T(), "GetCurrencyByCode")
}

func (suite *ConversionServiceTestSuite) TestConvert_Direct() {
	ctx := context.Background()
	req := dto.ConvertRequest{
		Amount:           decimal.NewFromInt(100),
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "EUR",
	}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "USD").Return(activeCurrency("USD", 2), nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "EUR").Return(activeCurrency("EUR", 2), nil).Once()
	suite.mockRateRepo.On("FindExchangeRate", ctx, "USD", "EUR").
		Return(&domain.ExchangeRate{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Rate: decimal.RequireFromString("0.85")}, nil).Once()

	resp, err := suite.service.Convert(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(dto.RouteDirect, resp.Route)
	suite.True(decimal.NewFromInt(85).Equal(resp.ConvertedAmount), "got %s", resp.ConvertedAmount)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestConvert_ComposedViaBase() {
	ctx := context.Background()
	req := dto.ConvertRequest{
		Amount:           decimal.NewFromInt(10),
		FromCurrencyCode: "EUR",
		ToCurrencyCode:   "GBP",
	}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "EUR").Return(activeCurrency("EUR", 2), nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "GBP").Return(activeCurrency("GBP", 2), nil).Once()
	suite.mockCurrencySvc.On("GetBaseCurrency", ctx).Return(activeCurrency("USD", 2), nil).Once()

	suite.mockRateRepo.On("FindExchangeRate", ctx, "EUR", "GBP").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindExchangeRate", ctx, "EUR", "USD").
		Return(&domain.ExchangeRate{FromCurrencyCode: "EUR", ToCurrencyCode: "USD", Rate: decimal.RequireFromString("2.0")}, nil).Once()
	suite.mockRateRepo.On("FindExchangeRate", ctx, "USD", "GBP").
		Return(&domain.ExchangeRate{FromCurrencyCode: "USD", ToCurrencyCode: "GBP", Rate: decimal.RequireFromString("3.0")}, nil).Once()

	resp, err := suite.service.Convert(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(dto.RouteComposed, resp.Route)
	// 10 * 2.0 * 3.0 with both legs multiplied before the single final rounding
	suite.True(decimal.NewFromInt(60).Equal(resp.ConvertedAmount), "got %s", resp.ConvertedAmount)
	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockCurrencySvc.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestConvert_BankersRounding() {
	ctx := context.Background()
	req := dto.ConvertRequest{
		Amount:           decimal.RequireFromString("2.5"),
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "JPY",
	}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "USD").Return(activeCurrency("USD", 2), nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "JPY").Return(activeCurrency("JPY", 0), nil).Once()
	suite.mockRateRepo.On("FindExchangeRate", ctx, "USD", "JPY").
		Return(&domain.ExchangeRate{FromCurrencyCode: "USD", ToCurrencyCode: "JPY", Rate: decimal.NewFromInt(1)}, nil).Once()

	resp, err := suite.service.Convert(ctx, req)

	suite.Require().NoError(err)
	// Half-to-even at zero decimal places: 2.5 rounds to 2, not 3.
	suite.True(decimal.NewFromInt(2).Equal(resp.ConvertedAmount), "got %s", resp.ConvertedAmount)
}

func (suite *ConversionServiceTestSuite) TestConvert_MissingLeg() {
	ctx := context.Background()
	req := dto.ConvertRequest{
		Amount:           decimal.NewFromInt(10),
		FromCurrencyCode: "EUR",
		ToCurrencyCode:   "GBP",
	}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "EUR").Return(activeCurrency("EUR", 2), nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "GBP").Return(activeCurrency("GBP", 2), nil).Once()
	suite.mockCurrencySvc.On("GetBaseCurrency", ctx).Return(activeCurrency("USD", 2), nil).Once()

	suite.mockRateRepo.On("FindExchangeRate", ctx, "EUR", "GBP").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindExchangeRate", ctx, "EUR", "USD").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.Convert(ctx, req)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
}

func (suite *ConversionServiceTestSuite) TestConvert_UnknownCurrency() {
	ctx := context.Background()
	req := dto.ConvertRequest{
		Amount:           decimal.NewFromInt(10),
		FromCurrencyCode: "XXX",
		ToCurrencyCode:   "EUR",
	}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.Convert(ctx, req)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindExchangeRate")
}

func (suite *ConversionServiceTestSuite) TestConvert_InactiveCurrency() {
	ctx := context.Background()
	req := dto.ConvertRequest{
		Amount:           decimal.NewFromInt(10),
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "VEF",
	}

	inactive := &domain.Currency{CurrencyCode: "VEF", IsActive: false, DecimalPlaces: 2}
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "USD").Return(activeCurrency("USD", 2), nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "VEF").Return(inactive, nil).Once()

	resp, err := suite.service.Convert(ctx, req)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindExchangeRate")
}

func (suite *ConversionServiceTestSuite) TestConvert_RoundTripBound() {
	ctx := context.Background()
	rate := decimal.RequireFromString("0.85")
	inverse := decimal.NewFromInt(1).Div(rate)

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "USD").Return(activeCurrency("USD", 2), nil)
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "EUR").Return(activeCurrency("EUR", 2), nil)
	suite.mockRateRepo.On("FindExchangeRate", ctx, "USD", "EUR").
		Return(&domain.ExchangeRate{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Rate: rate}, nil)
	suite.mockRateRepo.On("FindExchangeRate", ctx, "EUR", "USD").
		Return(&domain.ExchangeRate{FromCurrencyCode: "EUR", ToCurrencyCode: "USD", Rate: inverse}, nil)

	original := decimal.NewFromInt(100)
	there, err := suite.service.Convert(ctx, dto.ConvertRequest{
		Amount: original, FromCurrencyCode: "USD", ToCurrencyCode: "EUR",
	})
	suite.Require().NoError(err)

	back, err := suite.service.Convert(ctx, dto.ConvertRequest{
		Amount: there.ConvertedAmount, FromCurrencyCode: "EUR", ToCurrencyCode: "USD",
	})
	suite.Require().NoError(err)

	// Each conversion rounds at 2 decimal places, so the round trip drifts by
	// at most one smallest unit per step.
	drift := back.ConvertedAmount.Sub(original).Abs()
	suite.True(drift.LessThanOrEqual(decimal.RequireFromString("0.02")), "drift %s", drift)
}

// --- Run Suite ---
func TestConversionService(t *testing.T) {
	suite.Run(t, new(ConversionServiceTestSuite))
}
