package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/logger"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/metrics"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/store"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/utils"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/validators"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/models"
)

type orderService struct {
	orderRepository store.OrderRepository
	foodRepository  store.FoodRepository
	transactor      store.Transactor
	cache           store.FoodCache

	// retrier receives increments that failed on a non-atomic backend.
	retrier IncrementRetrier

	validator validators.Validator
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

func NewOrderService(
	storages *store.Storages,
	cache store.FoodCache,
	retrier IncrementRetrier,
	m *metrics.Metrics,
	logger *logger.Logger,
) OrderService {
	return &orderService{
		orderRepository: storages.OrderRepository,
		foodRepository:  storages.FoodRepository,
		transactor:      storages.Transactor,
		cache:           cache,
		retrier:         retrier,
		validator:       validators.NewOrderValidator(),
		metrics:         m,
		logger:          logger,
	}
}

// Purchase stores the order first and then increments the purchase count
// of the referenced listing. The result reports the stored order only.
//
// Both writes share one transaction. On an atomic backend a failed increment
// rolls the order back and is returned. Otherwise the order stays stored
// and the increment is handed to the retrier.
func (o *orderService) Purchase(ctx context.Context, order models.Order) (models.InsertResult, error) {
	log := logger.FromContext(ctx)

	if err := o.validator.Validate(ctx, order); err != nil {
		log.Error().Err(err).Str("func", "orderService.Purchase").Msg("invalid order")
		return models.InsertResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	var (
		result       models.InsertResult
		incrementErr error
	)
	err := o.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		result, err = o.orderRepository.CreateOrder(ctx, order)
		if err != nil {
			return err
		}

		if err = o.foodRepository.IncrementPurchaseCount(ctx, order.PurchaseID, result.InsertedID, 1); err != nil {
			if o.transactor.Atomic() {
				return err
			}
			incrementErr = err
		}

		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "orderService.Purchase").
			Str("purchase_id", order.PurchaseID).
			Msg("purchase failed")
		return models.InsertResult{}, err
	}
	o.metrics.PurchaseRecorded()

	if incrementErr != nil {
		o.metrics.IncrementFailed()
		log.Err(incrementErr).
			Str("func", "orderService.Purchase").
			Str("order_id", result.InsertedID).
			Str("purchase_id", order.PurchaseID).
			Msg("purchase count increment failed, handing over to retrier")

		if o.retrier == nil || !o.retrier.Enqueue(result.InsertedID, order.PurchaseID, 1) {
			o.metrics.IncrementRetried(metrics.RetryDropped)
			log.Error().
				Str("func", "orderService.Purchase").
				Str("order_id", result.InsertedID).
				Msg("purchase count increment dropped")
		}
	}

	invalidateTopFoods(ctx, o.cache)

	return result, nil
}

// GetOrdersByEmail returns the orders placed by email.
// Callers must have passed the ownership guard for email.
func (o *orderService) GetOrdersByEmail(ctx context.Context, email string) ([]models.Order, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrEmptyEmail)
	}

	return o.orderRepository.GetOrdersByEmail(ctx, email)
}

// DeleteOrder looks the order up, checks that it belongs to the identity
// in ctx and deletes it, all within one transaction.
func (o *orderService) DeleteOrder(ctx context.Context, id string) (models.DeleteResult, error) {
	log := logger.FromContext(ctx)

	if _, ok := utils.GetIdentityFromContext(ctx); !ok {
		return models.DeleteResult{}, ErrUnauthenticated
	}

	var result models.DeleteResult
	err := o.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := o.orderRepository.GetOrderByID(ctx, id)
		if errors.Is(err, store.ErrOrderNotFound) {
			result = models.DeleteResult{Acknowledged: true}
			return nil
		}
		if err != nil {
			return err
		}

		if err = CheckOwnership(ctx, order.Email); err != nil {
			return err
		}

		result, err = o.orderRepository.DeleteOrder(ctx, id)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "orderService.DeleteOrder").
			Str("order_id", id).
			Msg("order deletion failed")
		return models.DeleteResult{}, err
	}

	return result, nil
}
