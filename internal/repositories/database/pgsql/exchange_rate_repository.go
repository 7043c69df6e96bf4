package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/sinahatake/currency-exchange-api/internal/apperrors"
	"github.com/sinahatake/currency-exchange-api/internal/core/domain"
	portsrepo "github.com/sinahatake/currency-exchange-api/internal/core/ports/repositories"
	"github.com/sinahatake/currency-exchange-api/internal/models"
	"github.com/sinahatake/currency-exchange-api/internal/utils/mapping"
)

const selectExchangeRate = `
	SELECT
		er.id,
		b.id, b.code, b.full_name, b.sign,
		t.id, t.code, t.full_name, t.sign,
		er.rate
	FROM exchange_rates er
	JOIN currencies b ON b.id = er.base_currency_id
	JOIN currencies t ON t.id = er.target_currency_id
`

// PgxExchangeRateRepository implements portsrepo.ExchangeRateRepositoryFacade using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func newPgxExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

// SaveExchangeRate inserts a new quote for the ordered pair.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	modelRate := mapping.ToModelExchangeRate(rate)

	query := `
		INSERT INTO exchange_rates (base_currency_id, target_currency_id, rate)
		VALUES ($1, $2, $3)
		RETURNING id;
	`

	err := r.withConn(ctx, "save exchange rate", func(conn *pgxpool.Conn) error {
		err := conn.QueryRow(ctx, query,
			modelRate.BaseCurrency.ID, modelRate.TargetCurrency.ID, modelRate.Rate,
		).Scan(&modelRate.ID)
		if isUniqueViolation(err) {
			return apperrors.NewConflictError(fmt.Sprintf("Exchange rate %s/%s already exists",
				modelRate.BaseCurrency.Code, modelRate.TargetCurrency.Code))
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}

// FindExchangeRate retrieves the quote stored for exactly (base, target).
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, baseCurrencyCode, targetCurrencyCode string) (*domain.ExchangeRate, error) {
	query := selectExchangeRate + `WHERE b.code = $1 AND t.code = $2;`

	var modelRate models.ExchangeRate
	err := r.withConn(ctx, "find exchange rate", func(conn *pgxpool.Conn) error {
		var err error
		modelRate, err = scanExchangeRate(conn.QueryRow(ctx, query, baseCurrencyCode, targetCurrencyCode))
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("Exchange rate not found")
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}

// UpdateExchangeRate sets a new rate on an existing quote in a single statement.
func (r *PgxExchangeRateRepository) UpdateExchangeRate(ctx context.Context, baseCurrencyCode, targetCurrencyCode string, rate decimal.Decimal) (*domain.ExchangeRate, error) {
	query := `
		UPDATE exchange_rates er
		SET rate = $3
		FROM currencies b, currencies t
		WHERE b.id = er.base_currency_id
			AND t.id = er.target_currency_id
			AND b.code = $1
			AND t.code = $2
		RETURNING
			er.id,
			b.id, b.code, b.full_name, b.sign,
			t.id, t.code, t.full_name, t.sign,
			er.rate;
	`

	var modelRate models.ExchangeRate
	err := r.withConn(ctx, "update exchange rate", func(conn *pgxpool.Conn) error {
		var err error
		modelRate, err = scanExchangeRate(conn.QueryRow(ctx, query, baseCurrencyCode, targetCurrencyCode, rate))
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("Exchange rate not found")
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}

// ListExchangeRates retrieves all quotes in insertion order.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	query := selectExchangeRate + `ORDER BY er.id;`

	var modelRates []models.ExchangeRate
	err := r.withConn(ctx, "list exchange rates", func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, query)
		if err != nil {
			return err
		}
		modelRates, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRate, error) {
			return scanExchangeRate(row)
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return mapping.ToDomainExchangeRateSlice(modelRates), nil
}

func scanExchangeRate(row pgx.Row) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.ID,
		&m.BaseCurrency.ID, &m.BaseCurrency.Code, &m.BaseCurrency.FullName, &m.BaseCurrency.Sign,
		&m.TargetCurrency.ID, &m.TargetCurrency.Code, &m.TargetCurrency.FullName, &m.TargetCurrency.Sign,
		&m.Rate,
	)
	return m, err
}
