package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kapu/ayovirals-go/internal/config"
	"github.com/kapu/ayovirals-go/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CacheService stores JSON values in Redis.
type CacheService struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheService(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*CacheService, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, errors.NewCacheError("failed to connect to Redis", "ping", "", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", addr),
		zap.Int("db", cfg.DB),
	)

	return &CacheService{
		client: client,
		logger: logger,
	}, nil
}

// Get decodes the value at key into dest. A missing key reports found=false
// with a nil error.
func (c *CacheService) Get(ctx context.Context, key string, dest any) (bool, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		c.logger.Error("Cache get failed", zap.String("key", key), zap.Error(err))
		return false, errors.NewCacheError("get failed", "get", key, err)
	}

	if err := json.Unmarshal([]byte(value), dest); err != nil {
		c.logger.Error("Cache unmarshal failed", zap.String("key", key), zap.Error(err))
		return false, errors.NewCacheError("unmarshal failed", "get", key, err)
	}

	return true, nil
}

func (c *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return errors.NewCacheError("marshal failed", "set", key, err)
	}

	if err := c.client.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		c.logger.Error("Cache set failed", zap.String("key", key), zap.Error(err))
		return errors.NewCacheError("set failed", "set", key, err)
	}

	return nil
}

func (c *CacheService) Del(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Error("Cache delete failed", zap.String("key", key), zap.Error(err))
		return errors.NewCacheError("delete failed", "del", key, err)
	}
	return nil
}

func (c *CacheService) Close() error {
	if err := c.client.Close(); err != nil {
		c.logger.Error("Failed to close Redis connection", zap.Error(err))
		return err
	}
	c.logger.Info("Redis disconnected")
	return nil
}

func (c *CacheService) IsConnected(ctx context.Context) bool {
	return c.client.Ping(ctx).Err() == nil
}
