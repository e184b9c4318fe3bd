package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/logger"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoFoodRepository is the MongoDB implementation of [FoodRepository].
// Documents keep the field names of models.Food's bson tags.
type mongoFoodRepository struct {
	collection *mongo.Collection
	classifier ErrorClassificator
	generateID func() string
	now        func() time.Time
}

func NewMongoFoodRepository(collection *mongo.Collection, generateID func() string) FoodRepository {
	return &mongoFoodRepository{
		collection: collection,
		classifier: NewMongoErrorClassifier(),
		generateID: generateID,
		now:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

var (
	naturalOrder = bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}
	rankingOrder = bson.D{{Key: "purchaseCount", Value: -1}, {Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}
)

func (r *mongoFoodRepository) CreateFood(ctx context.Context, food models.Food) (models.InsertResult, error) {
	log := logger.FromContext(ctx)

	now := r.now()
	food.ID = r.generateID()
	food.PurchaseCount = 0
	food.CreatedAt = now
	food.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, food); err != nil {
		log.Err(err).
			Str("func", "mongoFoodRepository.CreateFood").
			Str("food_id", food.ID).
			Msg("failed to insert food")
		if r.classifier.IsUniqueViolation(err) {
			return models.InsertResult{}, fmt.Errorf("%w: %w", ErrFoodAlreadyExists, err)
		}
		return models.InsertResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return models.InsertResult{Acknowledged: true, InsertedID: food.ID}, nil
}

// SearchFoods matches the escaped term as a case-insensitive regex.
func (r *mongoFoodRepository) SearchFoods(ctx context.Context, term string) ([]models.Food, error) {
	filter := bson.M{}
	if term != "" {
		filter["foodName"] = primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	}

	foods, err := r.find(ctx, filter, options.Find().SetSort(naturalOrder))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoFoodRepository.SearchFoods").
			Str("term", term).
			Msg("failed to search foods")
		return nil, err
	}

	return foods, nil
}

func (r *mongoFoodRepository) GetFoodByID(ctx context.Context, id string) (models.Food, error) {
	var food models.Food

	err := r.collection.FindOne(ctx, idFilter(id)).Decode(&food)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Food{}, ErrFoodNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoFoodRepository.GetFoodByID").
			Str("food_id", id).
			Msg("failed to get food")
		return models.Food{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return food, nil
}

func (r *mongoFoodRepository) GetFoodsByBuyerEmail(ctx context.Context, email string) ([]models.Food, error) {
	foods, err := r.find(ctx, bson.M{"buyer.email": email}, options.Find().SetSort(naturalOrder))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoFoodRepository.GetFoodsByBuyerEmail").
			Str("email", email).
			Msg("failed to get foods by buyer email")
		return nil, err
	}

	return foods, nil
}

// UpsertFood updates the listing matched by id and inserts it under the
// string id when nothing matches.
func (r *mongoFoodRepository) UpsertFood(ctx context.Context, id string, patch models.FoodPatch) (models.UpdateResult, error) {
	now := r.now()

	update := bson.M{
		"$set":         foodPatchToSet(patch, now),
		"$setOnInsert": bson.M{"createdAt": now, "purchaseCount": int64(0)},
	}

	// an upsert filtered by $in cannot take its _id from the filter
	if isObjectIDHex(id) {
		res, err := r.collection.UpdateOne(ctx, idFilter(id), update)
		if err != nil {
			logger.FromContext(ctx).Err(err).
				Str("func", "mongoFoodRepository.UpsertFood").
				Str("food_id", id).
				Msg("failed to update food")
			return models.UpdateResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if res.MatchedCount > 0 {
			return toUpdateResult(res, id), nil
		}
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update, options.Update().SetUpsert(true))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoFoodRepository.UpsertFood").
			Str("food_id", id).
			Msg("failed to upsert food")
		return models.UpdateResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return toUpdateResult(res, id), nil
}

func toUpdateResult(res *mongo.UpdateResult, id string) models.UpdateResult {
	result := models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if res.UpsertedCount > 0 {
		result.UpsertedID = id
	}

	return result
}

func (r *mongoFoodRepository) GetTopFoods(ctx context.Context, limit int) ([]models.Food, error) {
	if limit <= 0 {
		return []models.Food{}, nil
	}

	foods, err := r.find(ctx, bson.M{}, options.Find().SetSort(rankingOrder).SetLimit(int64(limit)))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoFoodRepository.GetTopFoods").
			Int("limit", limit).
			Msg("failed to get top foods")
		return nil, err
	}

	return foods, nil
}

// IncrementPurchaseCount adds delta and records orderID in the listing's
// countedOrders in a single update. A listing that already holds orderID
// does not match the filter, so a repeated call changes nothing.
func (r *mongoFoodRepository) IncrementPurchaseCount(ctx context.Context, id, orderID string, delta int64) error {
	filter := idFilter(id)
	filter["countedOrders"] = bson.M{"$ne": orderID}

	update := bson.M{
		"$inc":      bson.M{"purchaseCount": delta},
		"$addToSet": bson.M{"countedOrders": orderID},
	}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoFoodRepository.IncrementPurchaseCount").
			Str("food_id", id).
			Str("order_id", orderID).
			Msg("failed to increment purchase count")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if res.MatchedCount == 0 {
		logger.FromContext(ctx).Debug().
			Str("func", "mongoFoodRepository.IncrementPurchaseCount").
			Str("food_id", id).
			Str("order_id", orderID).
			Msg("food missing or order already counted")
	}

	return nil
}

func (r *mongoFoodRepository) find(ctx context.Context, filter any, opts *options.FindOptions) ([]models.Food, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	foods := make([]models.Food, 0, 16)
	if err = cursor.All(ctx, &foods); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return foods, nil
}

// foodPatchToSet converts the non-nil patch fields into a $set document.
func foodPatchToSet(patch models.FoodPatch, updatedAt time.Time) bson.M {
	set := bson.M{"updatedAt": updatedAt}

	if patch.FoodName != nil {
		set["foodName"] = *patch.FoodName
	}
	if patch.FoodImage != nil {
		set["foodImage"] = *patch.FoodImage
	}
	if patch.FoodCategory != nil {
		set["foodCategory"] = *patch.FoodCategory
	}
	if patch.Quantity != nil {
		set["quantity"] = *patch.Quantity
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.FoodOrigin != nil {
		set["foodOrigin"] = *patch.FoodOrigin
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Buyer != nil {
		set["buyer"] = *patch.Buyer
	}

	return set
}
