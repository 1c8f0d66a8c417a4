package services_test

import (
	"context"
	"testing"

	"github.com/dmaulidia/fx_rates_app/internal/apperrors"
	"github.com/dmaulidia/fx_rates_app/internal/core/domain"
	"github.com/dmaulidia/fx_rates_app/internal/core/services"
	"github.com/dmaulidia/fx_rates_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

// --- Test Suite ---
type CurrencyServiceTestSuite struct {
	suite.Suite
	mockCurrencyRepo *MockCurrencyRepository
	service          *services.CurrencyService
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockCurrencyRepo)
}

func decimalPlaces(n int32) *int32 {
	return &n
}

// --- Test Cases ---

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateCurrencyRequest{
		CurrencyCode:  "EUR",
		Symbol:        "€",
		Name:          "Euro",
		DecimalPlaces: decimalPlaces(2),
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCurrencyRepo.On("SaveCurrency", ctx, mock.AnythingOfType("domain.Currency")).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(currency)
	suite.Equal("EUR", currency.CurrencyCode)
	suite.True(currency.IsActive)
	suite.False(currency.IsBase)
	suite.Equal(int32(2), currency.DecimalPlaces)
	suite.Equal(creatorUserID, currency.CreatedBy)
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_SecondBaseRejected() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateCurrencyRequest{
		CurrencyCode:  "EUR",
		Symbol:        "€",
		Name:          "Euro",
		IsBase:        true,
		DecimalPlaces: decimalPlaces(2),
	}

	existingBase := &domain.Currency{CurrencyCode: "USD", IsBase: true, IsActive: true}
	suite.mockCurrencyRepo.On("FindBaseCurrency", ctx).Return(existingBase, nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, creatorUserID)

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockCurrencyRepo.AssertNotCalled(suite.T(), "SaveCurrency")
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_DuplicateCode() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateCurrencyRequest{
		CurrencyCode:  "EUR",
		Symbol:        "€",
		Name:          "Euro",
		DecimalPlaces: decimalPlaces(2),
	}

	existing := &domain.Currency{CurrencyCode: "EUR"}
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").Return(existing, nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, creatorUserID)

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockCurrencyRepo.AssertNotCalled(suite.T(), "SaveCurrency")
}

func (suite *CurrencyServiceTestSuite) TestSetCurrencyActive_Success() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()
	existing := &domain.Currency{CurrencyCode: "JPY", IsActive: true}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "JPY").Return(existing, nil).Once()
	suite.mockCurrencyRepo.On("SaveCurrency", ctx, mock.AnythingOfType("domain.Currency")).Return(nil).Once()

	currency, err := suite.service.SetCurrencyActive(ctx, "jpy", false, updaterUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(currency)
	suite.False(currency.IsActive)
	suite.Equal(updaterUserID, currency.LastUpdatedBy)
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestSetCurrencyActive_BaseCannotBeDeactivated() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()
	base := &domain.Currency{CurrencyCode: "USD", IsBase: true, IsActive: true}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(base, nil).Once()

	currency, err := suite.service.SetCurrencyActive(ctx, "USD", false, updaterUserID)

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCurrencyRepo.AssertNotCalled(suite.T(), "SaveCurrency")
}

func (suite *CurrencyServiceTestSuite) TestListCurrencies_EmptyNotNil() {
	ctx := context.Background()

	suite.mockCurrencyRepo.On("ListCurrencies", ctx, true).Return(nil, nil).Once()

	currencies, err := suite.service.ListCurrencies(ctx, true)

	suite.Require().NoError(err)
	suite.NotNil(currencies)
	suite.Empty(currencies)
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestGetBaseCurrency_Success() {
	ctx := context.Background()
	base := &domain.Currency{CurrencyCode: "USD", IsBase: true, IsActive: true}

	suite.mockCurrencyRepo.On("FindBaseCurrency", ctx).Return(base, nil).Once()

	currency, err := suite.service.GetBaseCurrency(ctx)

	suite.Require().NoError(err)
	suite.Equal(base, currency)
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestCurrencyService(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
