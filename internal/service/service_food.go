package service

import (
	"context"
	"fmt"

	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/logger"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/store"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/models"
)

type foodService struct {
	foodRepository store.FoodRepository

	logger *logger.Logger
}

func NewFoodService(foodRepository store.FoodRepository, logger *logger.Logger) FoodService {
	return &foodService{
		foodRepository: foodRepository,
		logger:         logger,
	}
}

func (f *foodService) CreateFood(ctx context.Context, food models.Food) (models.InsertResult, error) {
	return f.foodRepository.CreateFood(ctx, food)
}

func (f *foodService) SearchFoods(ctx context.Context, term string) ([]models.Food, error) {
	return f.foodRepository.SearchFoods(ctx, term)
}

func (f *foodService) GetFoodByID(ctx context.Context, id string) (models.Food, error) {
	return f.foodRepository.GetFoodByID(ctx, id)
}

// GetFoodsByOwner returns the listings published by email.
// Callers must have passed the ownership guard for email.
func (f *foodService) GetFoodsByOwner(ctx context.Context, email string) ([]models.Food, error) {
	return f.foodRepository.GetFoodsByBuyerEmail(ctx, email)
}

func (f *foodService) UpsertFood(ctx context.Context, id string, patch models.FoodPatch) (models.UpdateResult, error) {
	if id == "" {
		return models.UpdateResult{}, fmt.Errorf("%w: empty food id", ErrInvalidDataProvided)
	}

	return f.foodRepository.UpsertFood(ctx, id, patch)
}

func (f *foodService) GetTopFoods(ctx context.Context, limit int) ([]models.Food, error) {
	return f.foodRepository.GetTopFoods(ctx, limit)
}
