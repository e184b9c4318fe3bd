package service

import (
	"context"

	"github.com/imonsheikh/a11-b10-restaurant-management-server/models"
)

// TopFoodsLimit is the size of the ranking served by GET /foods.
const TopFoodsLimit = 6

// AuthService issues and verifies identity credentials.
type AuthService interface {
	// IssueToken signs a credential asserting email.
	IssueToken(ctx context.Context, email string) (models.Token, error)

	// VerifyToken returns the identity asserted by a valid credential.
	// Every failure is reported as ErrInvalidToken.
	VerifyToken(ctx context.Context, token string) (models.Identity, error)
}

// FoodService manages the food catalog.
type FoodService interface {
	CreateFood(ctx context.Context, food models.Food) (models.InsertResult, error)
	SearchFoods(ctx context.Context, term string) ([]models.Food, error)
	GetFoodByID(ctx context.Context, id string) (models.Food, error)
	GetFoodsByOwner(ctx context.Context, email string) ([]models.Food, error)
	UpsertFood(ctx context.Context, id string, patch models.FoodPatch) (models.UpdateResult, error)
	GetTopFoods(ctx context.Context, limit int) ([]models.Food, error)
}

// OrderService manages purchase orders.
type OrderService interface {
	// Purchase stores the order and counts it against the purchased listing.
	Purchase(ctx context.Context, order models.Order) (models.InsertResult, error)

	GetOrdersByEmail(ctx context.Context, email string) ([]models.Order, error)

	// DeleteOrder removes the order if it belongs to the identity in ctx.
	// A missing order yields a zero DeletedCount and no error.
	DeleteOrder(ctx context.Context, id string) (models.DeleteResult, error)
}

// FoodServiceWrapper defines middleware composition for FoodService.
// Implementations wrap an existing FoodService to add behavior such as
// validating or caching.
type FoodServiceWrapper interface {
	Wrap(FoodService) FoodService // returns a decorated FoodService applying additional behavior
}

// IncrementRetrier takes over purchase count increments that failed after
// their order was stored.
type IncrementRetrier interface {
	// Enqueue schedules the increment. It reports false when the increment
	// could not be scheduled.
	Enqueue(orderID, foodID string, delta int64) bool
}
