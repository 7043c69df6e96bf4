package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/sinahatake/currency-exchange-api/internal/apperrors"
	"github.com/sinahatake/currency-exchange-api/internal/core/domain"
	portsrepo "github.com/sinahatake/currency-exchange-api/internal/core/ports/repositories"
	portssvc "github.com/sinahatake/currency-exchange-api/internal/core/ports/services"
	"github.com/sinahatake/currency-exchange-api/internal/dto"
	"github.com/sinahatake/currency-exchange-api/internal/utils"
)

// updatedRatePrecision is the number of decimal places an updated rate is stored with.
const updatedRatePrecision int32 = 2

// exchangeRateService provides business logic for stored exchange rates.
type exchangeRateService struct {
	BaseService
	rateRepo        portsrepo.ExchangeRateRepositoryFacade
	currencyService portssvc.CurrencyReaderSvc
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyService portssvc.CurrencyReaderSvc) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{
		rateRepo:        rateRepo,
		currencyService: currencyService,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// CreateExchangeRate handles the creation of a new exchange rate.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest) (*domain.ExchangeRate, error) {
	baseCode, targetCode, err := normalizePair(req.BaseCurrencyCode, req.TargetCurrencyCode)
	if err != nil {
		return nil, err
	}
	if !req.Rate.IsPositive() {
		return nil, apperrors.NewValidationError("Exchange rate must be positive")
	}
	if baseCode == targetCode {
		return nil, apperrors.NewValidationError("Base and target currencies cannot be the same")
	}

	base, err := s.currencyService.GetCurrencyByCode(ctx, baseCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base currency '%s': %w", baseCode, err)
	}
	target, err := s.currencyService.GetCurrencyByCode(ctx, targetCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve target currency '%s': %w", targetCode, err)
	}

	// Fast path only; the unique (base, target) constraint in storage decides.
	_, err = s.rateRepo.FindExchangeRate(ctx, baseCode, targetCode)
	switch {
	case err == nil:
		return nil, apperrors.NewConflictError(fmt.Sprintf("Exchange rate %s/%s already exists", baseCode, targetCode))
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to check for existing exchange rate",
			slog.String("base", baseCode), slog.String("target", targetCode))
		return nil, fmt.Errorf("failed to check exchange rate %s/%s: %w", baseCode, targetCode, err)
	}

	rate, err := s.rateRepo.SaveExchangeRate(ctx, domain.ExchangeRate{
		BaseCurrency:   *base,
		TargetCurrency: *target,
		Rate:           req.Rate,
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save exchange rate",
				slog.String("base", baseCode), slog.String("target", targetCode))
		}
		return nil, fmt.Errorf("failed to create exchange rate in service: %w", err)
	}

	s.LogInfo(ctx, "Exchange rate created",
		slog.Int64("rate_id", rate.ID),
		slog.String("base", baseCode),
		slog.String("target", targetCode),
		slog.String("rate", rate.Rate.String()))
	return rate, nil
}

// GetExchangeRate retrieves the stored quote for exactly (base, target).
func (s *exchangeRateService) GetExchangeRate(ctx context.Context, baseCode, targetCode string) (*domain.ExchangeRate, error) {
	baseCode, targetCode, err := normalizePair(baseCode, targetCode)
	if err != nil {
		return nil, err
	}

	rate, err := s.rateRepo.FindExchangeRate(ctx, baseCode, targetCode)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get exchange rate",
				slog.String("base", baseCode), slog.String("target", targetCode))
		}
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	return rate, nil
}

func (s *exchangeRateService) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListExchangeRates(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list exchange rates")
		return nil, fmt.Errorf("failed to list exchange rates in service: %w", err)
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}

// UpdateExchangeRate rounds the new rate half-up to two decimal places and stores it
// on the existing quote. It never creates a quote.
func (s *exchangeRateService) UpdateExchangeRate(ctx context.Context, baseCode, targetCode string, rate decimal.Decimal) (*domain.ExchangeRate, error) {
	baseCode, targetCode, err := normalizePair(baseCode, targetCode)
	if err != nil {
		return nil, err
	}
	if !rate.IsPositive() {
		return nil, apperrors.NewValidationError("Exchange rate must be positive")
	}
	rounded := utils.RoundHalfUp(rate, updatedRatePrecision)
	if !rounded.IsPositive() {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("Exchange rate %s rounds to zero at %d decimal places", rate.String(), updatedRatePrecision))
	}

	updated, err := s.rateRepo.UpdateExchangeRate(ctx, baseCode, targetCode, rounded)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update exchange rate",
				slog.String("base", baseCode), slog.String("target", targetCode))
		}
		return nil, fmt.Errorf("failed to update exchange rate in service: %w", err)
	}

	s.LogInfo(ctx, "Exchange rate updated",
		slog.Int64("rate_id", updated.ID),
		slog.String("rate", updated.Rate.String()))
	return updated, nil
}
