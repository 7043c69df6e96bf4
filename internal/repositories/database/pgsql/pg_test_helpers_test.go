package pgsql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/sinahatake/currency-exchange-api/internal/core/domain"
	portsrepo "github.com/sinahatake/currency-exchange-api/internal/core/ports/repositories"
	"github.com/sinahatake/currency-exchange-api/internal/repositories/database/pgsql"
	"github.com/sinahatake/currency-exchange-api/pkg/database"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func withRepositories(t *testing.T) portsrepo.RepositoryProvider {
	t.Helper()
	if os.Getenv("TESTCONTAINERS") == "" {
		t.Skip("set TESTCONTAINERS=1 to run containerized PG tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	container, err := postgres.RunContainer(ctx,
		postgres.WithDatabase("currency_exchange"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.RunMigrations(ctx, dsn))

	pool, err := database.NewPgxPool(ctx, dsn, database.DefaultMaxConns, true)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pgsql.NewRepositoryProvider(pool)
}

func seedCurrency(t *testing.T, repos portsrepo.RepositoryProvider, code, name, sign string) *domain.Currency {
	t.Helper()
	c, err := repos.CurrencyRepo.SaveCurrency(context.Background(), domain.Currency{Code: code, FullName: name, Sign: sign})
	require.NoError(t, err)
	return c
}
