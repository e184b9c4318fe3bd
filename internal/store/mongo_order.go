package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/logger"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoOrderRepository is the MongoDB implementation of [OrderRepository].
type mongoOrderRepository struct {
	collection *mongo.Collection
	generateID func() string
	now        func() time.Time
}

func NewMongoOrderRepository(collection *mongo.Collection, generateID func() string) OrderRepository {
	return &mongoOrderRepository{
		collection: collection,
		generateID: generateID,
		now:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func (r *mongoOrderRepository) CreateOrder(ctx context.Context, order models.Order) (models.InsertResult, error) {
	order.ID = r.generateID()
	if order.Date.IsZero() {
		order.Date = r.now()
	}

	if _, err := r.collection.InsertOne(ctx, order); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoOrderRepository.CreateOrder").
			Str("order_id", order.ID).
			Str("purchase_id", order.PurchaseID).
			Msg("failed to insert order")
		return models.InsertResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return models.InsertResult{Acknowledged: true, InsertedID: order.ID}, nil
}

func (r *mongoOrderRepository) GetOrdersByEmail(ctx context.Context, email string) ([]models.Order, error) {
	log := logger.FromContext(ctx)

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		log.Err(err).
			Str("func", "mongoOrderRepository.GetOrdersByEmail").
			Str("email", email).
			Msg("failed to find orders")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	orders := make([]models.Order, 0, 16)
	if err = cursor.All(ctx, &orders); err != nil {
		log.Err(err).
			Str("func", "mongoOrderRepository.GetOrdersByEmail").
			Msg("failed to decode orders")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return orders, nil
}

func (r *mongoOrderRepository) GetOrderByID(ctx context.Context, id string) (models.Order, error) {
	var order models.Order

	err := r.collection.FindOne(ctx, idFilter(id)).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoOrderRepository.GetOrderByID").
			Str("order_id", id).
			Msg("failed to get order")
		return models.Order{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return order, nil
}

func (r *mongoOrderRepository) DeleteOrder(ctx context.Context, id string) (models.DeleteResult, error) {
	res, err := r.collection.DeleteOne(ctx, idFilter(id))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoOrderRepository.DeleteOrder").
			Str("order_id", id).
			Msg("failed to delete order")
		return models.DeleteResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
