package workers

import (
	"context"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/config"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/logger"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/metrics"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/store"
)

// queueSize bounds the number of increments waiting for a retry.
const queueSize = 256

type incrementTask struct {
	orderID string
	foodID  string
	delta   int64
}

// IncrementRetryWorker retries purchase count increments that failed after
// their order had been stored. Tasks are keyed by order id and the
// repository counts each order once, so a retry of an increment that took
// effect despite reporting an error changes nothing.
type IncrementRetryWorker struct {
	foodRepository store.FoodRepository
	cache          store.FoodCache
	isRetryable    func(error) bool

	attempts int
	interval time.Duration

	queue   chan incrementTask
	mu      sync.Mutex
	pending map[string]struct{}

	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewIncrementRetryWorker creates a worker that tries an increment at most
// cfg.RetryAttempts times, waiting cfg.RetryInterval before the first try
// and backing off exponentially from there. Retrying stops early on errors
// that isRetryable rejects. A successful retry invalidates cache.
func NewIncrementRetryWorker(
	foodRepository store.FoodRepository,
	cache store.FoodCache,
	isRetryable func(error) bool,
	cfg config.Workers,
	m *metrics.Metrics,
	log *logger.Logger,
) *IncrementRetryWorker {
	return &IncrementRetryWorker{
		foodRepository: foodRepository,
		cache:          cache,
		isRetryable:    isRetryable,
		attempts:       max(cfg.RetryAttempts, 1),
		interval:       cfg.RetryInterval,
		queue:          make(chan incrementTask, queueSize),
		pending:        make(map[string]struct{}),
		metrics:        m,
		logger:         log,
	}
}

// Enqueue schedules an increment. An order that is already scheduled is
// accepted without being queued again. It reports false when the queue is full.
func (w *IncrementRetryWorker) Enqueue(orderID, foodID string, delta int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.pending[orderID]; ok {
		return true
	}

	select {
	case w.queue <- incrementTask{orderID: orderID, foodID: foodID, delta: delta}:
		w.pending[orderID] = struct{}{}
		return true
	default:
		w.logger.Warn().
			Str("func", "IncrementRetryWorker.Enqueue").
			Str("order_id", orderID).
			Msg("retry queue is full")
		return false
	}
}

// Run processes queued increments one at a time until ctx is cancelled.
// Increments still queued at that point are dropped and logged.
func (w *IncrementRetryWorker) Run(ctx context.Context) {
	w.logger.Info().Str("func", "IncrementRetryWorker.Run").Msg("increment retry worker started")

	for {
		select {
		case <-ctx.Done():
			w.drop()
			return
		case task := <-w.queue:
			w.process(ctx, task)
		}
	}
}

func (w *IncrementRetryWorker) process(ctx context.Context, task incrementTask) {
	defer w.done(task.orderID)

	log := w.logger.With().
		Str("func", "IncrementRetryWorker.process").
		Str("order_id", task.orderID).
		Str("food_id", task.foodID).
		Logger()

	select {
	case <-ctx.Done():
		w.metrics.IncrementRetried(metrics.RetryDropped)
		log.Error().Msg("shutdown before purchase count increment was retried")
		return
	case <-time.After(w.interval):
	}

	attempt := 0
	backoff := retry.WithMaxRetries(uint64(w.attempts-1), retry.NewExponential(w.interval))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := w.foodRepository.IncrementPurchaseCount(ctx, task.foodID, task.orderID, task.delta)
		if err == nil {
			return nil
		}

		log.Warn().Err(err).Int("attempt", attempt).Msg("purchase count increment retry failed")
		if w.isRetryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})

	switch {
	case err == nil:
		w.metrics.IncrementRetried(metrics.RetrySucceeded)
		log.Info().Int("attempt", attempt).Msg("purchase count increment retried successfully")
		if cacheErr := w.cache.Invalidate(ctx); cacheErr != nil {
			log.Err(cacheErr).Msg("failed to invalidate top foods cache")
		}
	case ctx.Err() != nil:
		w.metrics.IncrementRetried(metrics.RetryDropped)
		log.Error().Err(err).Msg("shutdown before purchase count increment was retried")
	default:
		w.metrics.IncrementRetried(metrics.RetryFailed)
		log.Error().Err(err).Int("attempt", attempt).Msg("giving up on purchase count increment")
	}
}

func (w *IncrementRetryWorker) done(orderID string) {
	w.mu.Lock()
	delete(w.pending, orderID)
	w.mu.Unlock()
}

func (w *IncrementRetryWorker) drop() {
	for {
		select {
		case task := <-w.queue:
			w.done(task.orderID)
			w.metrics.IncrementRetried(metrics.RetryDropped)
			w.logger.Error().
				Str("func", "IncrementRetryWorker.Run").
				Str("order_id", task.orderID).
				Str("food_id", task.foodID).
				Msg("shutdown dropped a pending purchase count increment")
		default:
			return
		}
	}
}
