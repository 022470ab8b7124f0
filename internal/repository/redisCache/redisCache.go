package redisCache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sunnykeerthi/service-center-user/configs"
	"github.com/sunnykeerthi/service-center-user/internal/domain"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(ctx context.Context, config *configs.Config) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         config.RD.Host,
		Username:     config.RD.User,
		Password:     config.RD.Password,
		DB:           config.RD.DB,
		MaxRetries:   config.RD.MaxRetries,
		DialTimeout:  config.RD.DialTimeout,
		ReadTimeout:  config.RD.ReadTimeout,
		WriteTimeout: config.RD.WriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, config.RD.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &Cache{
		client: client,
		ttl:    config.RD.IdentityTTL,
	}, nil
}

func (c *Cache) GetIdentity(ctx context.Context, key string) (domain.Identity, error) {
	const op = "redisCache.GetIdentity"

	val, err := c.client.Get(ctx, identityKey(key)).Bytes()
	if err == redis.Nil {
		return domain.Identity{}, domain.ErrRecordNotFound
	}
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%s: %w", op, err)
	}

	var identity domain.Identity
	if err := json.Unmarshal(val, &identity); err != nil {
		return domain.Identity{}, fmt.Errorf("%s: %w", op, err)
	}
	return identity, nil
}

func (c *Cache) SetIdentity(ctx context.Context, key string, identity domain.Identity) error {
	const op = "redisCache.SetIdentity"

	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.client.Set(ctx, identityKey(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func identityKey(key string) string {
	return "identity:" + key
}
