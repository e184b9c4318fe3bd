package service

import (
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/config"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/logger"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/metrics"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/store"
)

type Services struct {
	AuthService  AuthService
	FoodService  FoodService
	OrderService OrderService
}

// NewServices wires the services on top of storages. The food service is
// decorated with validation and top foods caching, outermost first.
func NewServices(
	storages *store.Storages,
	cache store.FoodCache,
	retrier IncrementRetrier,
	m *metrics.Metrics,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) *Services {
	foodService := NewFoodService(storages.FoodRepository, logger)
	foodService = NewFoodCacheService(cache, m).Wrap(foodService)
	foodService = NewFoodValidationService().Wrap(foodService)

	return &Services{
		AuthService:  NewAuthService(cfg.App, logger),
		FoodService:  foodService,
		OrderService: NewOrderService(storages, cache, retrier, m, logger),
	}
}
