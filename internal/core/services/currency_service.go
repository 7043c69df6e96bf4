package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sinahatake/currency-exchange-api/internal/apperrors"
	"github.com/sinahatake/currency-exchange-api/internal/core/domain"
	portsrepo "github.com/sinahatake/currency-exchange-api/internal/core/ports/repositories"
	portssvc "github.com/sinahatake/currency-exchange-api/internal/core/ports/services"
	"github.com/sinahatake/currency-exchange-api/internal/dto"
)

// currencyService is the registry of currencies.
type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a currency service on top of the given repository.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// RegisterCurrency validates the request, normalizes the code to upper case and persists it.
// Nothing is written when validation fails.
func (s *currencyService) RegisterCurrency(ctx context.Context, req dto.CreateCurrencyRequest) (*domain.Currency, error) {
	req.Code = domain.NormalizeCode(req.Code)
	req.FullName = strings.TrimSpace(req.FullName)
	req.Sign = strings.TrimSpace(req.Sign)

	if err := validate.Struct(req); err != nil {
		return nil, currencyValidationError(err)
	}

	// Fast path only; the unique constraint in storage is what actually prevents duplicates.
	_, err := s.currencyRepo.FindCurrencyByCode(ctx, req.Code)
	switch {
	case err == nil:
		return nil, apperrors.NewConflictError(fmt.Sprintf("Currency with code '%s' already exists", req.Code))
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to check for existing currency", slog.String("currency_code", req.Code))
		return nil, fmt.Errorf("failed to check currency %s: %w", req.Code, err)
	}

	currency, err := s.currencyRepo.SaveCurrency(ctx, domain.Currency{
		Code:     req.Code,
		FullName: req.FullName,
		Sign:     req.Sign,
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save currency", slog.String("currency_code", req.Code))
		}
		return nil, fmt.Errorf("failed to create currency in service: %w", err)
	}

	s.LogInfo(ctx, "Currency registered", slog.String("currency_code", currency.Code), slog.Int64("currency_id", currency.ID))
	return currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	code, err := normalizeCode(currencyCode)
	if err != nil {
		return nil, err
	}

	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get currency", slog.String("currency_code", code))
		}
		return nil, fmt.Errorf("failed to get currency by code in service: %w", err)
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	// Return empty slice if no currencies found, not nil
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}
