package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/config"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/logger"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/models"
	"github.com/redis/go-redis/v9"
)

const (
	// topFoodsKey is a hash holding one JSON encoded ranking per limit.
	topFoodsKey = "top-foods"

	// topFoodsVersionKey counts invalidations. It has no expiry.
	topFoodsVersionKey = "top-foods:version"
)

var errStaleRanking = errors.New("top foods ranking is stale")

// RedisFoodCache implements [FoodCache] on a Redis hash.
type RedisFoodCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisFoodCache connects to the Redis server from cfg and verifies it with a ping.
func NewRedisFoodCache(ctx context.Context, cfg config.Cache, log *logger.Logger) (*RedisFoodCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisFoodCache").Msg("error connecting redis (ping)")
		_ = client.Close()
		return nil, fmt.Errorf("%w: %w", ErrCache, err)
	}
	log.Info().Str("func", "NewRedisFoodCache").Str("address", cfg.RedisAddress).Msg("connected to redis successfully")

	return newRedisFoodCache(client, cfg.TTL), nil
}

func newRedisFoodCache(client *redis.Client, ttl time.Duration) *RedisFoodCache {
	return &RedisFoodCache{client: client, ttl: ttl}
}

func (c *RedisFoodCache) GetTopFoods(ctx context.Context, limit int) ([]models.Food, bool, error) {
	data, err := c.client.HGet(ctx, topFoodsKey, strconv.Itoa(limit)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrCache, err)
	}

	var foods []models.Food
	if err = json.Unmarshal(data, &foods); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrCache, err)
	}

	return foods, true, nil
}

func (c *RedisFoodCache) Version(ctx context.Context) (int64, error) {
	version, err := c.client.Get(ctx, topFoodsVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCache, err)
	}

	return version, nil
}

// SetTopFoods stores the ranking and restarts the hash expiry. The write
// runs under WATCH on the version key, so an invalidation that lands
// between the version check and the write aborts it.
func (c *RedisFoodCache) SetTopFoods(ctx context.Context, limit int, foods []models.Food, version int64) error {
	data, err := json.Marshal(foods)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCache, err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, topFoodsVersionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleRanking
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, topFoodsKey, strconv.Itoa(limit), data)
			pipe.Expire(ctx, topFoodsKey, c.ttl)
			return nil
		})
		return err
	}, topFoodsVersionKey)

	if errors.Is(err, errStaleRanking) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCache, err)
	}

	return nil
}

// Invalidate bumps the version and drops every cached ranking.
func (c *RedisFoodCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, topFoodsVersionKey)
		pipe.Del(ctx, topFoodsKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCache, err)
	}
	return nil
}

func (c *RedisFoodCache) Close() error {
	return c.client.Close()
}

// NopFoodCache is a [FoodCache] that never holds anything.
// It is used when no Redis address is configured.
type NopFoodCache struct{}

func (NopFoodCache) GetTopFoods(context.Context, int) ([]models.Food, bool, error) {
	return nil, false, nil
}

func (NopFoodCache) Version(context.Context) (int64, error) { return 0, nil }

func (NopFoodCache) SetTopFoods(context.Context, int, []models.Food, int64) error { return nil }

func (NopFoodCache) Invalidate(context.Context) error { return nil }

func (NopFoodCache) Close() error { return nil }
