package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/imonsheikh/a11-b10-restaurant-management-server/models"
)

// FoodRepository persists food listings.
type FoodRepository interface {
	// CreateFood stores a new listing. The repository assigns the id,
	// resets PurchaseCount to zero and stamps both timestamps.
	CreateFood(ctx context.Context, food models.Food) (models.InsertResult, error)

	// SearchFoods returns listings whose name contains term, ignoring case.
	// The term is matched literally. An empty term returns every listing.
	SearchFoods(ctx context.Context, term string) ([]models.Food, error)

	// GetFoodByID returns ErrFoodNotFound when no listing has the id.
	GetFoodByID(ctx context.Context, id string) (models.Food, error)

	GetFoodsByBuyerEmail(ctx context.Context, email string) ([]models.Food, error)

	// UpsertFood merges patch into the listing with the given id,
	// creating the listing when it does not exist.
	UpsertFood(ctx context.Context, id string, patch models.FoodPatch) (models.UpdateResult, error)

	// GetTopFoods returns at most limit listings ordered by PurchaseCount
	// descending, then by insertion order and id.
	GetTopFoods(ctx context.Context, limit int) ([]models.Food, error)

	// IncrementPurchaseCount atomically adds delta to the listing's
	// PurchaseCount on behalf of orderID. Each order is counted at most
	// once, so repeating a call that already took effect is a no-op.
	// An unknown id is a no-op.
	IncrementPurchaseCount(ctx context.Context, id, orderID string, delta int64) error
}

// OrderRepository persists purchase orders.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order models.Order) (models.InsertResult, error)
	GetOrdersByEmail(ctx context.Context, email string) ([]models.Order, error)

	// GetOrderByID returns ErrOrderNotFound when no order has the id.
	GetOrderByID(ctx context.Context, id string) (models.Order, error)

	DeleteOrder(ctx context.Context, id string) (models.DeleteResult, error)
}

// Transactor runs a unit of work against the backing store.
type Transactor interface {
	// WithinTransaction calls fn with a context bound to a transaction.
	// Repository calls made with that context join the transaction.
	// Nested calls reuse the outer transaction.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Atomic reports whether WithinTransaction commits or rolls back fn's
	// writes as a whole. It is false for MongoDB deployments without
	// transaction support, where fn runs without a transaction.
	Atomic() bool
}

// FoodCache caches the top-foods ranking.
type FoodCache interface {
	// GetTopFoods reports ok == false on a cache miss.
	GetTopFoods(ctx context.Context, limit int) (foods []models.Food, ok bool, err error)

	// Version returns the invalidation counter. Read it before loading a
	// ranking and pass it to SetTopFoods.
	Version(ctx context.Context) (int64, error)

	// SetTopFoods stores foods unless an invalidation happened after
	// version was read. A stale ranking is discarded without error.
	SetTopFoods(ctx context.Context, limit int, foods []models.Food, version int64) error

	// Invalidate drops every cached ranking.
	Invalidate(ctx context.Context) error
	Close() error
}

// ErrorClassificator decides how a failed database call should be treated.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification

	// IsUniqueViolation reports whether err is a primary key or unique
	// constraint violation.
	IsUniqueViolation(err error) bool
}
