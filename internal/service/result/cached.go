package result

import (
	"context"
	"time"

	"github.com/kapu/ayovirals-go/internal/constants"
	"github.com/kapu/ayovirals-go/internal/domain"
	"go.uber.org/zap"
)

// ResultCache is the subset of cache.CacheService used for read-through.
type ResultCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// CachedStore fronts a Store with Redis. Cache failures are logged and the
// backing store answers instead.
type CachedStore struct {
	store  Store
	cache  ResultCache
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedStore(store Store, cache ResultCache, ttl time.Duration, logger *zap.Logger) *CachedStore {
	if ttl <= 0 {
		ttl = constants.CacheTTL.Result
	}
	return &CachedStore{store: store, cache: cache, ttl: ttl, logger: logger}
}

func (c *CachedStore) Name() string {
	return c.store.Name() + "+redis"
}

func (c *CachedStore) Save(ctx context.Context, record *domain.VideoRecord) error {
	if err := c.store.Save(ctx, record); err != nil {
		return err
	}
	c.put(ctx, record)
	return nil
}

func (c *CachedStore) FindByID(ctx context.Context, id string) (*domain.VideoRecord, error) {
	var cached domain.VideoRecord
	found, err := c.cache.Get(ctx, CacheKey(id), &cached)
	if err != nil {
		c.logger.Warn("Result cache read failed, using store", zap.String("id", id), zap.Error(err))
	}
	if found {
		return &cached, nil
	}

	record, err := c.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.put(ctx, record)
	return record, nil
}

func (c *CachedStore) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}

func (c *CachedStore) put(ctx context.Context, record *domain.VideoRecord) {
	if err := c.cache.Set(ctx, CacheKey(record.ID), record, c.ttl); err != nil {
		c.logger.Warn("Result cache write failed", zap.String("id", record.ID), zap.Error(err))
	}
}

// CacheKey is the Redis key for a record id.
func CacheKey(id string) string {
	return constants.CacheKeys.ResultPrefix + id
}
