package service

import (
	"context"
	"fmt"

	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/validators"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/models"
)

// FoodValidationService checks listing input before it reaches the wrapped
// FoodService. Listings may be partial; only the fields present are checked.
type FoodValidationService struct {
	inner     FoodService
	validator validators.Validator
}

func NewFoodValidationService() FoodServiceWrapper {
	return &FoodValidationService{
		validator: validators.NewFoodValidator(),
	}
}

func (v *FoodValidationService) CreateFood(ctx context.Context, food models.Food) (models.InsertResult, error) {
	if err := v.validator.Validate(ctx, food); err != nil {
		return models.InsertResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateFood(ctx, food)
}

func (v *FoodValidationService) SearchFoods(ctx context.Context, term string) ([]models.Food, error) {
	return v.inner.SearchFoods(ctx, term)
}

func (v *FoodValidationService) GetFoodByID(ctx context.Context, id string) (models.Food, error) {
	if id == "" {
		return models.Food{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrEmptyFoodID)
	}

	return v.inner.GetFoodByID(ctx, id)
}

func (v *FoodValidationService) GetFoodsByOwner(ctx context.Context, email string) ([]models.Food, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrEmptyEmail)
	}

	return v.inner.GetFoodsByOwner(ctx, email)
}

func (v *FoodValidationService) UpsertFood(ctx context.Context, id string, patch models.FoodPatch) (models.UpdateResult, error) {
	if id == "" {
		return models.UpdateResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrEmptyFoodID)
	}
	if err := v.validator.Validate(ctx, patch); err != nil {
		return models.UpdateResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpsertFood(ctx, id, patch)
}

func (v *FoodValidationService) GetTopFoods(ctx context.Context, limit int) ([]models.Food, error) {
	if limit <= 0 {
		return []models.Food{}, nil
	}

	return v.inner.GetTopFoods(ctx, limit)
}

func (v *FoodValidationService) Wrap(wrapped FoodService) FoodService {
	v.inner = wrapped
	return v
}
