package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
	"github.com/sinahatake/currency-exchange-api/internal/apperrors"
	"github.com/sinahatake/currency-exchange-api/internal/core/domain"
	portsrepo "github.com/sinahatake/currency-exchange-api/internal/core/ports/repositories"
	portssvc "github.com/sinahatake/currency-exchange-api/internal/core/ports/services"
	"github.com/sinahatake/currency-exchange-api/internal/utils"
)

var rateResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "currency_exchange_rate_resolutions_total",
	Help: "Successful rate resolutions, labeled by the strategy that produced the rate",
}, []string{"strategy"})

var errRateNotFound = apperrors.NewNotFoundError("Exchange rate not found")

// exchangeService resolves rates between any two currencies and converts amounts.
type exchangeService struct {
	BaseService
	rateRepo        portsrepo.ExchangeRateReader
	currencyService portssvc.CurrencyReaderSvc
	resolutions     *prometheus.CounterVec
}

// ExchangeServiceOption is a functional option for configuring the exchange service
type ExchangeServiceOption func(*exchangeService)

// WithResolutionCounter replaces the counter that records which strategy resolved a rate.
func WithResolutionCounter(counter *prometheus.CounterVec) ExchangeServiceOption {
	return func(s *exchangeService) {
		s.resolutions = counter
	}
}

// NewExchangeService creates the rate resolver. It only reads quotes.
func NewExchangeService(rateRepo portsrepo.ExchangeRateReader, currencyService portssvc.CurrencyReaderSvc, options ...ExchangeServiceOption) portssvc.ExchangeSvc {
	svc := &exchangeService{
		rateRepo:        rateRepo,
		currencyService: currencyService,
		resolutions:     rateResolutionsTotal,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ExchangeSvc = (*exchangeService)(nil)

func (s *exchangeService) ResolveRate(ctx context.Context, baseCode, targetCode string) (decimal.Decimal, error) {
	baseCode, targetCode, err := normalizePair(baseCode, targetCode)
	if err != nil {
		return decimal.Zero, err
	}

	rate, strategy, err := s.resolve(ctx, baseCode, targetCode)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to resolve exchange rate",
				slog.String("base", baseCode), slog.String("target", targetCode))
		}
		return decimal.Zero, err
	}

	s.resolutions.WithLabelValues(string(strategy)).Inc()
	s.LogDebug(ctx, "Exchange rate resolved",
		slog.String("base", baseCode),
		slog.String("target", targetCode),
		slog.String("strategy", string(strategy)),
		slog.String("rate", rate.String()))
	return rate, nil
}

// resolve tries a direct quote, then the inverse quote, then both legs from the
// reference currency. Derived rates are rounded half-up to utils.RatePrecision places.
func (s *exchangeService) resolve(ctx context.Context, baseCode, targetCode string) (decimal.Decimal, domain.RateStrategy, error) {
	direct, err := s.findQuote(ctx, baseCode, targetCode)
	if err != nil {
		return decimal.Zero, "", err
	}
	if direct != nil {
		return direct.Rate, domain.StrategyDirect, nil
	}

	inverse, err := s.findQuote(ctx, targetCode, baseCode)
	if err != nil {
		return decimal.Zero, "", err
	}
	if inverse != nil {
		rate, err := divide(decimal.NewFromInt(1), inverse)
		return rate, domain.StrategyInverse, err
	}

	viaBase, err := s.findQuote(ctx, domain.ReferenceCurrencyCode, baseCode)
	if err != nil {
		return decimal.Zero, "", err
	}
	if viaBase == nil {
		return decimal.Zero, "", errRateNotFound
	}
	viaTarget, err := s.findQuote(ctx, domain.ReferenceCurrencyCode, targetCode)
	if err != nil {
		return decimal.Zero, "", err
	}
	if viaTarget == nil {
		return decimal.Zero, "", errRateNotFound
	}
	rate, err := divide(viaTarget.Rate, viaBase)
	return rate, domain.StrategyCross, err
}

// findQuote returns nil without error when the ordered pair has no quote.
func (s *exchangeService) findQuote(ctx context.Context, baseCode, targetCode string) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindExchangeRate(ctx, baseCode, targetCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up %s/%s: %w", baseCode, targetCode, err)
	}
	return rate, nil
}

// divide computes numerator / divisor.Rate. A stored zero rate is a data integrity failure.
func divide(numerator decimal.Decimal, divisor *domain.ExchangeRate) (decimal.Decimal, error) {
	if divisor.Rate.IsZero() {
		return decimal.Zero, apperrors.NewStorageError(
			"Stored exchange rate is zero",
			fmt.Errorf("quote %d (%s/%s) has rate 0", divisor.ID, divisor.BaseCurrency.Code, divisor.TargetCurrency.Code))
	}
	return numerator.DivRound(divisor.Rate, utils.RatePrecision), nil
}

// Convert converts amount from base to target. The reported rate is rounded to
// utils.RatePrecision places and the converted amount to utils.AmountPrecision places.
func (s *exchangeService) Convert(ctx context.Context, baseCode, targetCode string, amount decimal.Decimal) (*domain.ConversionResult, error) {
	baseCode, targetCode, err := normalizePair(baseCode, targetCode)
	if err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, apperrors.NewValidationError("Amount must not be negative")
	}

	base, err := s.currencyService.GetCurrencyByCode(ctx, baseCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base currency '%s': %w", baseCode, err)
	}
	target, err := s.currencyService.GetCurrencyByCode(ctx, targetCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve target currency '%s': %w", targetCode, err)
	}

	rate, err := s.ResolveRate(ctx, baseCode, targetCode)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s to %s: %w", baseCode, targetCode, err)
	}

	return &domain.ConversionResult{
		BaseCurrency:    *base,
		TargetCurrency:  *target,
		Rate:            utils.RoundHalfUp(rate, utils.RatePrecision),
		Amount:          amount,
		ConvertedAmount: utils.RoundHalfUp(amount.Mul(rate), utils.AmountPrecision),
	}, nil
}
