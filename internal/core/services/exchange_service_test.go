package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/sinahatake/currency-exchange-api/internal/apperrors"
	"github.com/sinahatake/currency-exchange-api/internal/core/domain"
	portssvc "github.com/sinahatake/currency-exchange-api/internal/core/ports/services"
	"github.com/sinahatake/currency-exchange-api/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// quoteBook is an in-memory ExchangeRateReader keyed by "BASE/TARGET".
type quoteBook struct {
	mu      sync.Mutex
	quotes  map[string]*domain.ExchangeRate
	lookups []string
	failOn  string
}

func newQuoteBook() *quoteBook {
	return &quoteBook{quotes: map[string]*domain.ExchangeRate{}}
}

func (b *quoteBook) add(base, target, rate string) {
	key := base + "/" + target
	b.quotes[key] = &domain.ExchangeRate{
		ID:             int64(len(b.quotes) + 1),
		BaseCurrency:   *currencyFixture(base),
		TargetCurrency: *currencyFixture(target),
		Rate:           decimal.RequireFromString(rate),
	}
}

func (b *quoteBook) FindExchangeRate(_ context.Context, baseCode, targetCode string) (*domain.ExchangeRate, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := baseCode + "/" + targetCode
	b.lookups = append(b.lookups, key)
	if key == b.failOn {
		return nil, apperrors.NewStorageError("failed to find exchange rate", errors.New("connection reset"))
	}
	if rate, ok := b.quotes[key]; ok {
		return rate, nil
	}
	return nil, apperrors.NewNotFoundError("Exchange rate not found")
}

func (b *quoteBook) ListExchangeRates(context.Context) ([]domain.ExchangeRate, error) {
	return nil, nil
}

type ExchangeServiceTestSuite struct {
	suite.Suite
	book            *quoteBook
	mockCurrencySvc *MockCurrencyService
	resolutions     *prometheus.CounterVec
	service         portssvc.ExchangeSvc
}

func (suite *ExchangeServiceTestSuite) SetupTest() {
	suite.book = newQuoteBook()
	suite.book.add("USD", "EUR", "0.9000")
	suite.book.add("USD", "AUD", "1.5")
	suite.book.add("USD", "RUB", "90")
	suite.mockCurrencySvc = new(MockCurrencyService)
	suite.resolutions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "test_rate_resolutions_total",
	}, []string{"strategy"})
	suite.service = services.NewExchangeService(suite.book, suite.mockCurrencySvc,
		services.WithResolutionCounter(suite.resolutions))
}

func (suite *ExchangeServiceTestSuite) expectCurrencies(codes ...string) {
	for _, code := range codes {
		suite.mockCurrencySvc.On("GetCurrencyByCode", mock.Anything, code).Return(currencyFixture(code), nil)
	}
}

func (suite *ExchangeServiceTestSuite) TestResolveRate_DirectIsUnchanged() {
	rate, err := suite.service.ResolveRate(context.Background(), "USD", "EUR")

	suite.Require().NoError(err)
	suite.True(decimal.RequireFromString("0.9").Equal(rate))
	suite.Equal(int32(-4), rate.Exponent())
	suite.Equal([]string{"USD/EUR"}, suite.book.lookups)
	suite.Equal(1.0, testutil.ToFloat64(suite.resolutions.WithLabelValues("direct")))
}

func (suite *ExchangeServiceTestSuite) TestResolveRate_Inverse() {
	rate, err := suite.service.ResolveRate(context.Background(), "EUR", "USD")

	suite.Require().NoError(err)
	suite.Equal("1.111111", rate.StringFixed(6))
	suite.Equal([]string{"EUR/USD", "USD/EUR"}, suite.book.lookups)
	suite.Equal(1.0, testutil.ToFloat64(suite.resolutions.WithLabelValues("inverse")))
}

func (suite *ExchangeServiceTestSuite) TestResolveRate_CrossThroughReference() {
	rate, err := suite.service.ResolveRate(context.Background(), "AUD", "RUB")

	suite.Require().NoError(err)
	suite.Equal("60.000000", rate.StringFixed(6))
	suite.Equal([]string{"AUD/RUB", "RUB/AUD", "USD/AUD", "USD/RUB"}, suite.book.lookups)
	suite.Equal(1.0, testutil.ToFloat64(suite.resolutions.WithLabelValues("cross")))
}

func (suite *ExchangeServiceTestSuite) TestResolveRate_CrossRoundsHalfUp() {
	suite.book.add("USD", "GBP", "3")

	rate, err := suite.service.ResolveRate(context.Background(), "GBP", "AUD")

	suite.Require().NoError(err)
	suite.Equal("0.500000", rate.StringFixed(6))

	rate, err = suite.service.ResolveRate(context.Background(), "RUB", "GBP")

	suite.Require().NoError(err)
	suite.Equal("0.033333", rate.StringFixed(6))
}

func (suite *ExchangeServiceTestSuite) TestResolveRate_DirectPreferredOverInverse() {
	suite.book.add("EUR", "USD", "1.2")

	rate, err := suite.service.ResolveRate(context.Background(), "EUR", "USD")

	suite.Require().NoError(err)
	suite.True(decimal.RequireFromString("1.2").Equal(rate))
	suite.Equal(0.0, testutil.ToFloat64(suite.resolutions.WithLabelValues("inverse")))
}

func (suite *ExchangeServiceTestSuite) TestResolveRate_NotFound() {
	rate, err := suite.service.ResolveRate(context.Background(), "JPY", "RUB")

	suite.True(rate.IsZero())
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Equal("Exchange rate not found", apperrors.Message(err))
	suite.Equal(0, testutil.CollectAndCount(suite.resolutions))
}

func (suite *ExchangeServiceTestSuite) TestResolveRate_MissingSecondLeg() {
	_, err := suite.service.ResolveRate(context.Background(), "EUR", "JPY")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ExchangeServiceTestSuite) TestResolveRate_SameCurrencyGoesThroughReference() {
	rate, err := suite.service.ResolveRate(context.Background(), "EUR", "EUR")

	suite.Require().NoError(err)
	suite.Equal("1.000000", rate.StringFixed(6))

	_, err = suite.service.ResolveRate(context.Background(), "JPY", "JPY")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ExchangeServiceTestSuite) TestResolveRate_InvalidCode() {
	_, err := suite.service.ResolveRate(context.Background(), "EU", "USD")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Empty(suite.book.lookups)
}

func (suite *ExchangeServiceTestSuite) TestResolveRate_StorageFailureIsNotMasked() {
	suite.book.failOn = "RUB/AUD"

	_, err := suite.service.ResolveRate(context.Background(), "AUD", "RUB")

	suite.ErrorIs(err, apperrors.ErrStorage)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ExchangeServiceTestSuite) TestResolveRate_ZeroDivisorIsStorageFailure() {
	suite.book.add("GBP", "USD", "0")

	_, err := suite.service.ResolveRate(context.Background(), "USD", "GBP")

	suite.ErrorIs(err, apperrors.ErrStorage)
}

func (suite *ExchangeServiceTestSuite) TestConvert_Direct() {
	suite.expectCurrencies("USD", "EUR")

	result, err := suite.service.Convert(context.Background(), "usd", "EUR", decimal.NewFromInt(100))

	suite.Require().NoError(err)
	suite.Equal("USD", result.BaseCurrency.Code)
	suite.Equal("EUR", result.TargetCurrency.Code)
	suite.Equal("0.900000", result.Rate.StringFixed(6))
	suite.Equal("90.00", result.ConvertedAmount.StringFixed(2))
	suite.Equal("100", result.Amount.String())
}

func (suite *ExchangeServiceTestSuite) TestConvert_InverseRoundsAmountHalfUp() {
	suite.expectCurrencies("EUR", "USD")

	result, err := suite.service.Convert(context.Background(), "EUR", "USD", decimal.RequireFromString("10"))

	suite.Require().NoError(err)
	suite.Equal("1.111111", result.Rate.StringFixed(6))
	suite.Equal("11.11", result.ConvertedAmount.StringFixed(2))
}

func (suite *ExchangeServiceTestSuite) TestConvert_ZeroAmount() {
	suite.expectCurrencies("AUD", "RUB")

	result, err := suite.service.Convert(context.Background(), "AUD", "RUB", decimal.Zero)

	suite.Require().NoError(err)
	suite.Equal("0.00", result.ConvertedAmount.StringFixed(2))
}

func (suite *ExchangeServiceTestSuite) TestConvert_NegativeAmount() {
	result, err := suite.service.Convert(context.Background(), "USD", "EUR", decimal.NewFromInt(-5))

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCurrencySvc.AssertNotCalled(suite.T(), "GetCurrencyByCode", mock.Anything, mock.Anything)
}

func (suite *ExchangeServiceTestSuite) TestConvert_UnknownCurrency() {
	suite.expectCurrencies("USD")
	suite.mockCurrencySvc.On("GetCurrencyByCode", mock.Anything, "JPY").
		Return(nil, apperrors.NewNotFoundError("Currency not found"))

	result, err := suite.service.Convert(context.Background(), "USD", "JPY", decimal.NewFromInt(1))

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Empty(suite.book.lookups)
}

func (suite *ExchangeServiceTestSuite) TestConvert_NoRate() {
	suite.book.quotes = map[string]*domain.ExchangeRate{}
	suite.expectCurrencies("USD", "EUR")

	result, err := suite.service.Convert(context.Background(), "USD", "EUR", decimal.NewFromInt(1))

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Equal("Exchange rate not found", apperrors.Message(err))
}

func TestExchangeService(t *testing.T) {
	suite.Run(t, new(ExchangeServiceTestSuite))
}
