package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmtran91/flybooking/config"
	"github.com/dmtran91/flybooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client    *redis.Client
	searchTTL time.Duration
	feesTTL   time.Duration
}

func NewRedisCache(cfg config.RedisConfig, searchTTL, feesTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		searchTTL: searchTTL,
		feesTTL:   feesTTL,
	}
}

func (c *RedisCache) GetFeeConfig(ctx context.Context) (*domain.AdminFeeConfig, error) {
	data, err := c.client.Get(ctx, feesKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var cfg domain.AdminFeeConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *RedisCache) SetFeeConfig(ctx context.Context, cfg *domain.AdminFeeConfig) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, feesKey(), payload, c.feesTTL).Err()
}

func (c *RedisCache) InvalidateFeeConfig(ctx context.Context) error {
	return c.client.Del(ctx, feesKey()).Err()
}

func (c *RedisCache) GetSearchResults(ctx context.Context, key string) ([]domain.FareOption, error) {
	data, err := c.client.Get(ctx, searchKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var options []domain.FareOption
	if err := json.Unmarshal(data, &options); err != nil {
		return nil, err
	}
	return options, nil
}

func (c *RedisCache) SetSearchResults(ctx context.Context, key string, options []domain.FareOption) error {
	payload, err := json.Marshal(options)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, searchKey(key), payload, c.searchTTL).Err()
}

func feesKey() string {
	return "cache:fees"
}

func searchKey(key string) string {
	return fmt.Sprintf("cache:search:%s", key)
}
