package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sinahatake/currency-exchange-api/internal/core/domain"
	portsrepo "github.com/sinahatake/currency-exchange-api/internal/core/ports/repositories"
	"github.com/sinahatake/currency-exchange-api/internal/models"
	"github.com/sinahatake/currency-exchange-api/internal/utils/mapping"
	"golang.org/x/sync/singleflight"
)

const currencyKeyPrefix = "currency:"

// CachedCurrencyRepository is a read-through Redis cache in front of a currency repository.
// Currencies never change after registration, so entries are only written, never invalidated.
// Misses and negative lookups always reach the underlying repository.
type CachedCurrencyRepository struct {
	next   portsrepo.CurrencyRepositoryFacade
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
	group  singleflight.Group
}

var _ portsrepo.CurrencyRepositoryFacade = (*CachedCurrencyRepository)(nil)

// NewCachedCurrencyRepository wraps next with a cache stored in client.
// A zero ttl keeps entries until Redis evicts them.
func NewCachedCurrencyRepository(next portsrepo.CurrencyRepositoryFacade, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedCurrencyRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedCurrencyRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "currency_cache")),
	}
}

func currencyKey(code string) string {
	return currencyKeyPrefix + code
}

// FindCurrencyByCode serves from Redis when possible. Concurrent misses for the
// same code share a single repository lookup.
func (r *CachedCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	key := currencyKey(currencyCode)
	if cached, ok := r.get(ctx, key); ok {
		return cached, nil
	}

	// The lookup is shared by every waiting caller, so one caller's cancellation must not end it.
	sharedCtx := context.WithoutCancel(ctx)
	v, err, _ := r.group.Do(key, func() (any, error) {
		currency, err := r.next.FindCurrencyByCode(sharedCtx, currencyCode)
		if err != nil {
			return nil, err
		}
		r.set(sharedCtx, key, *currency)
		return *currency, nil
	})
	if err != nil {
		return nil, err
	}
	currency := v.(domain.Currency)
	return &currency, nil
}

// ListCurrencies always reads from the underlying repository.
func (r *CachedCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return r.next.ListCurrencies(ctx)
}

// SaveCurrency persists through the underlying repository and primes the cache.
func (r *CachedCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) (*domain.Currency, error) {
	saved, err := r.next.SaveCurrency(ctx, currency)
	if err != nil {
		return nil, err
	}
	r.set(ctx, currencyKey(saved.Code), *saved)
	return saved, nil
}

func (r *CachedCurrencyRepository) get(ctx context.Context, key string) (*domain.Currency, bool) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("Currency cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return nil, false
	}

	var m models.Currency
	if err := json.Unmarshal(raw, &m); err != nil {
		r.logger.Warn("Discarding malformed currency cache entry", slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}
	currency := mapping.ToDomainCurrency(m)
	return &currency, true
}

func (r *CachedCurrencyRepository) set(ctx context.Context, key string, currency domain.Currency) {
	raw, err := json.Marshal(mapping.ToModelCurrency(currency))
	if err != nil {
		r.logger.Warn("Failed to encode currency for cache", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := r.client.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		r.logger.Warn("Currency cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
