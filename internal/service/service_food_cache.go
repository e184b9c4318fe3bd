package service

import (
	"context"

	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/logger"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/metrics"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/store"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/models"
)

// FoodCacheService serves the top foods ranking from a [store.FoodCache]
// and drops the cached rankings after every catalog write.
//
// Cache failures never fail a request: reads fall through to the wrapped
// service and failed invalidations are logged.
type FoodCacheService struct {
	inner   FoodService
	cache   store.FoodCache
	metrics *metrics.Metrics
}

func NewFoodCacheService(cache store.FoodCache, m *metrics.Metrics) FoodServiceWrapper {
	return &FoodCacheService{
		cache:   cache,
		metrics: m,
	}
}

func (c *FoodCacheService) CreateFood(ctx context.Context, food models.Food) (models.InsertResult, error) {
	res, err := c.inner.CreateFood(ctx, food)
	if err != nil {
		return res, err
	}

	invalidateTopFoods(ctx, c.cache)
	return res, nil
}

func (c *FoodCacheService) SearchFoods(ctx context.Context, term string) ([]models.Food, error) {
	return c.inner.SearchFoods(ctx, term)
}

func (c *FoodCacheService) GetFoodByID(ctx context.Context, id string) (models.Food, error) {
	return c.inner.GetFoodByID(ctx, id)
}

func (c *FoodCacheService) GetFoodsByOwner(ctx context.Context, email string) ([]models.Food, error) {
	return c.inner.GetFoodsByOwner(ctx, email)
}

func (c *FoodCacheService) UpsertFood(ctx context.Context, id string, patch models.FoodPatch) (models.UpdateResult, error) {
	res, err := c.inner.UpsertFood(ctx, id, patch)
	if err != nil {
		return res, err
	}

	invalidateTopFoods(ctx, c.cache)
	return res, nil
}

func (c *FoodCacheService) GetTopFoods(ctx context.Context, limit int) ([]models.Food, error) {
	log := logger.FromContext(ctx)

	// read before the ranking so that a concurrent invalidation makes
	// the ranking loaded below stale
	version, versionErr := c.cache.Version(ctx)
	if versionErr != nil {
		log.Err(versionErr).Str("func", "FoodCacheService.GetTopFoods").Msg("cache version read failed")
	}

	foods, ok, err := c.cache.GetTopFoods(ctx, limit)
	if err != nil {
		log.Err(err).Str("func", "FoodCacheService.GetTopFoods").Msg("cache read failed")
	}
	c.metrics.CacheLookup(ok)
	if ok {
		return foods, nil
	}

	foods, err = c.inner.GetTopFoods(ctx, limit)
	if err != nil {
		return nil, err
	}

	if versionErr != nil {
		return foods, nil
	}
	if err = c.cache.SetTopFoods(ctx, limit, foods, version); err != nil {
		log.Err(err).Str("func", "FoodCacheService.GetTopFoods").Msg("cache write failed")
	}

	return foods, nil
}

func (c *FoodCacheService) Wrap(wrapped FoodService) FoodService {
	c.inner = wrapped
	return c
}

func invalidateTopFoods(ctx context.Context, cache store.FoodCache) {
	if err := cache.Invalidate(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "invalidateTopFoods").Msg("failed to invalidate top foods cache")
	}
}
