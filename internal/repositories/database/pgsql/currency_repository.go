package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sinahatake/currency-exchange-api/internal/apperrors"
	"github.com/sinahatake/currency-exchange-api/internal/core/domain"
	portsrepo "github.com/sinahatake/currency-exchange-api/internal/core/ports/repositories"
	"github.com/sinahatake/currency-exchange-api/internal/models"
	"github.com/sinahatake/currency-exchange-api/internal/utils/mapping"
)

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) *PgxCurrencyRepository {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

// SaveCurrency inserts a new currency. The unique constraint on code decides conflicts.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) (*domain.Currency, error) {
	modelCurr := mapping.ToModelCurrency(currency)

	query := `
		INSERT INTO currencies (code, full_name, sign)
		VALUES ($1, $2, $3)
		RETURNING id;
	`

	err := r.withConn(ctx, "save currency", func(conn *pgxpool.Conn) error {
		err := conn.QueryRow(ctx, query, modelCurr.Code, modelCurr.FullName, modelCurr.Sign).Scan(&modelCurr.ID)
		if isUniqueViolation(err) {
			return apperrors.NewConflictError(fmt.Sprintf("Currency with code '%s' already exists", modelCurr.Code))
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	domainCurr := mapping.ToDomainCurrency(modelCurr)
	return &domainCurr, nil
}

// FindCurrencyByCode retrieves a currency by its 3-letter code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	query := `
		SELECT id, code, full_name, sign
		FROM currencies
		WHERE code = $1;
	`
	var modelCurr models.Currency
	err := r.withConn(ctx, "find currency", func(conn *pgxpool.Conn) error {
		err := conn.QueryRow(ctx, query, currencyCode).Scan(
			&modelCurr.ID,
			&modelCurr.Code,
			&modelCurr.FullName,
			&modelCurr.Sign,
		)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("Currency not found")
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	domainCurr := mapping.ToDomainCurrency(modelCurr)
	return &domainCurr, nil
}

// ListCurrencies retrieves all currencies in insertion order.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `
		SELECT id, code, full_name, sign
		FROM currencies
		ORDER BY id;
	`
	var modelCurrencies []models.Currency
	err := r.withConn(ctx, "list currencies", func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, query)
		if err != nil {
			return err
		}
		modelCurrencies, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Currency, error) {
			var currency models.Currency
			err := row.Scan(
				&currency.ID,
				&currency.Code,
				&currency.FullName,
				&currency.Sign,
			)
			return currency, err
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return mapping.ToDomainCurrencySlice(modelCurrencies), nil
}
