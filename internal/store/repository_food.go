package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/logger"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/models"
)

// foodRepository is the SQL implementation of [FoodRepository] shared by the
// PostgreSQL and SQLite backends. Statements are built with squirrel using
// the placeholder format of the underlying [DB].
type foodRepository struct {
	*DB
	generateID func() string
	now        func() time.Time
}

// NewFoodRepository constructs a [FoodRepository] over db.
// generateID assigns ids to new listings.
func NewFoodRepository(db *DB, generateID func() string) FoodRepository {
	return &foodRepository{
		DB:         db,
		generateID: generateID,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (r *foodRepository) CreateFood(ctx context.Context, food models.Food) (models.InsertResult, error) {
	log := logger.FromContext(ctx)

	now := r.now()
	food.ID = r.generateID()
	food.PurchaseCount = 0
	food.CreatedAt = now
	food.UpdatedAt = now

	query, args, err := r.buildInsertFoodQuery(food)
	if err != nil {
		log.Err(err).Str("func", "foodRepository.CreateFood").Msg("failed to build query")
		return models.InsertResult{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.querier(ctx).ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "foodRepository.CreateFood").
			Str("food_id", food.ID).
			Msg("failed to insert food")
		if r.errorClassificator.IsUniqueViolation(err) {
			return models.InsertResult{}, fmt.Errorf("%w: %w", ErrFoodAlreadyExists, err)
		}
		return models.InsertResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return models.InsertResult{Acknowledged: true, InsertedID: food.ID}, nil
}

func (r *foodRepository) SearchFoods(ctx context.Context, term string) ([]models.Food, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildSearchFoodsQuery(term)
	if err != nil {
		log.Err(err).Str("func", "foodRepository.SearchFoods").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	foods, err := r.queryFoods(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "foodRepository.SearchFoods").
			Str("term", term).
			Msg("failed to search foods")
		return nil, err
	}

	return foods, nil
}

func (r *foodRepository) GetFoodByID(ctx context.Context, id string) (models.Food, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildGetFoodByIDQuery(id)
	if err != nil {
		log.Err(err).Str("func", "foodRepository.GetFoodByID").Msg("failed to build query")
		return models.Food{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	food, err := scanFood(r.querier(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Food{}, ErrFoodNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "foodRepository.GetFoodByID").
			Str("food_id", id).
			Msg("failed to get food")
		return models.Food{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return food, nil
}

func (r *foodRepository) GetFoodsByBuyerEmail(ctx context.Context, email string) ([]models.Food, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildGetFoodsByBuyerEmailQuery(email)
	if err != nil {
		log.Err(err).Str("func", "foodRepository.GetFoodsByBuyerEmail").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	foods, err := r.queryFoods(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "foodRepository.GetFoodsByBuyerEmail").
			Str("email", email).
			Msg("failed to get foods by buyer email")
		return nil, err
	}

	return foods, nil
}

// UpsertFood updates the listing and falls back to an insert when no row
// matched. Both statements run in one transaction.
func (r *foodRepository) UpsertFood(ctx context.Context, id string, patch models.FoodPatch) (models.UpdateResult, error) {
	var result models.UpdateResult

	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		log := logger.FromContext(ctx)
		now := r.now()

		query, args, err := r.buildUpdateFoodQuery(id, patch, now)
		if err != nil {
			log.Err(err).Str("func", "foodRepository.UpsertFood").Msg("failed to build update query")
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		res, err := r.querier(ctx).ExecContext(ctx, query, args...)
		if err != nil {
			log.Err(err).
				Str("func", "foodRepository.UpsertFood").
				Str("food_id", id).
				Msg("failed to update food")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if affected > 0 {
			result = models.UpdateResult{Acknowledged: true, MatchedCount: affected, ModifiedCount: affected}
			return nil
		}

		food := patch.Apply(models.Food{ID: id, CreatedAt: now, UpdatedAt: now})
		query, args, err = r.buildInsertFoodQuery(food)
		if err != nil {
			log.Err(err).Str("func", "foodRepository.UpsertFood").Msg("failed to build insert query")
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err = r.querier(ctx).ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "foodRepository.UpsertFood").
				Str("food_id", id).
				Msg("failed to insert food on upsert")
			if r.errorClassificator.IsUniqueViolation(err) {
				return fmt.Errorf("%w: %w", ErrFoodAlreadyExists, err)
			}
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		result = models.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: id}
		return nil
	})
	if err != nil {
		return models.UpdateResult{}, err
	}

	return result, nil
}

func (r *foodRepository) GetTopFoods(ctx context.Context, limit int) ([]models.Food, error) {
	if limit <= 0 {
		return []models.Food{}, nil
	}

	log := logger.FromContext(ctx)

	query, args, err := r.buildGetTopFoodsQuery(limit)
	if err != nil {
		log.Err(err).Str("func", "foodRepository.GetTopFoods").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	foods, err := r.queryFoods(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "foodRepository.GetTopFoods").
			Int("limit", limit).
			Msg("failed to get top foods")
		return nil, err
	}

	return foods, nil
}

// IncrementPurchaseCount claims orderID in counted_orders and adds delta
// only when the claim is new. Both statements run in one transaction,
// joining the caller's transaction when there is one.
func (r *foodRepository) IncrementPurchaseCount(ctx context.Context, id, orderID string, delta int64) error {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := r.buildCountOrderQuery(id, orderID)
	if err != nil {
		log.Err(err).Str("func", "foodRepository.IncrementPurchaseCount").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	query, args, err := r.buildIncrementPurchaseCountQuery(id, delta)
	if err != nil {
		log.Err(err).Str("func", "foodRepository.IncrementPurchaseCount").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		res, err := r.querier(ctx).ExecContext(ctx, countQuery, countArgs...)
		if err != nil {
			log.Err(err).
				Str("func", "foodRepository.IncrementPurchaseCount").
				Str("food_id", id).
				Str("order_id", orderID).
				Msg("failed to record counted order")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		if claimed, _ := res.RowsAffected(); claimed == 0 {
			log.Debug().
				Str("func", "foodRepository.IncrementPurchaseCount").
				Str("food_id", id).
				Str("order_id", orderID).
				Msg("order already counted")
			return nil
		}

		res, err = r.querier(ctx).ExecContext(ctx, query, args...)
		if err != nil {
			log.Err(err).
				Str("func", "foodRepository.IncrementPurchaseCount").
				Str("food_id", id).
				Msg("failed to increment purchase count")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		if affected, _ := res.RowsAffected(); affected == 0 {
			log.Debug().
				Str("func", "foodRepository.IncrementPurchaseCount").
				Str("food_id", id).
				Msg("no food matched, purchase count unchanged")
		}

		return nil
	})
}

func (r *foodRepository) queryFoods(ctx context.Context, query string, args ...any) ([]models.Food, error) {
	rows, err := r.querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	foods := make([]models.Food, 0, 16)
	for rows.Next() {
		food, scanErr := scanFood(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		foods = append(foods, food)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return foods, nil
}
