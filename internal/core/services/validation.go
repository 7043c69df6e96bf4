package services

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/sinahatake/currency-exchange-api/internal/apperrors"
	"github.com/sinahatake/currency-exchange-api/internal/core/domain"
)

const currencyCodeRule = "len=3,alpha"

var validate = validator.New(validator.WithRequiredStructEnabled())

// normalizeCode uppercases and trims a currency code and checks it is exactly three letters.
func normalizeCode(code string) (string, error) {
	normalized := domain.NormalizeCode(code)
	if normalized == "" {
		return "", apperrors.NewValidationError("Currency code is missing")
	}
	if err := validate.Var(normalized, currencyCodeRule); err != nil {
		return "", apperrors.NewValidationError("Currency code must consist of exactly 3 letters: '" + normalized + "'")
	}
	return normalized, nil
}

// normalizePair validates both codes of a currency pair.
func normalizePair(baseCode, targetCode string) (string, string, error) {
	base, err := normalizeCode(baseCode)
	if err != nil {
		return "", "", err
	}
	target, err := normalizeCode(targetCode)
	if err != nil {
		return "", "", err
	}
	return base, target, nil
}

// currencyFieldMessages maps "Field.tag" to a client-facing message.
var currencyFieldMessages = map[string]string{
	"Code.len":          "Currency code must consist of exactly 3 letters",
	"Code.alpha":        "Currency code must consist of exactly 3 letters",
	"FullName.required": "Currency name must not be empty",
	"Sign.required":     "Currency sign must not be empty",
	"Sign.max":          "Currency sign must be at most 3 characters",
}

func currencyValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := currencyFieldMessages[verrs[0].Field()+"."+verrs[0].Tag()]; ok {
			return apperrors.NewValidationError(msg)
		}
		return apperrors.NewValidationError("Invalid value for field " + verrs[0].Field())
	}
	return apperrors.NewValidationError("Invalid currency")
}
