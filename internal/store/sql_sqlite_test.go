package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/logger"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/models"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSQLiteStorages opens a migrated in-memory database whose ids are
// generated sequentially and whose clock advances one second per call.
func newSQLiteStorages(t *testing.T) *Storages {
	t.Helper()

	db, err := NewConnectSQLite(testContext(), memoryDB, logger.Nop())
	require.NoError(t, err)

	seq := 0
	generateID := func() string {
		seq++
		return fmt.Sprintf("id-%03d", seq)
	}

	s, err := newSQLStorages(db, BackendSQLite, generateID, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	s.FoodRepository.(*foodRepository).now = tick
	s.OrderRepository.(*orderRepository).now = tick

	return s
}

func createFoods(t *testing.T, repo FoodRepository, names ...string) []string {
	t.Helper()
	ids := make([]string, 0, len(names))
	for _, name := range names {
		res, err := repo.CreateFood(testContext(), models.Food{FoodName: name, Buyer: models.Buyer{Email: "chef@example.com"}})
		require.NoError(t, err)
		ids = append(ids, res.InsertedID)
	}
	return ids
}

func foodNames(foods []models.Food) []string {
	names := make([]string, 0, len(foods))
	for _, f := range foods {
		names = append(names, f.FoodName)
	}
	return names
}

func TestSQLite_SearchFoods(t *testing.T) {
	s := newSQLiteStorages(t)
	repo := s.FoodRepository
	createFoods(t, repo, "Chicken Pho", "Beef Ramen", "chicken wings", "100% Juice", "Fried_Rice", "Pad Thai", "CRÈME BRÛLÉE", "Ärtsoppa")

	tests := []struct {
		term string
		want []string
	}{
		{term: "", want: []string{"Chicken Pho", "Beef Ramen", "chicken wings", "100% Juice", "Fried_Rice", "Pad Thai", "CRÈME BRÛLÉE", "Ärtsoppa"}},
		{term: "crème", want: []string{"CRÈME BRÛLÉE"}},
		{term: "brûlée", want: []string{"CRÈME BRÛLÉE"}},
		{term: "ÄRTS", want: []string{"Ärtsoppa"}},
		{term: "CHICKEN", want: []string{"Chicken Pho", "chicken wings"}},
		{term: "%", want: []string{"100% Juice"}},
		{term: "_", want: []string{"Fried_Rice"}},
		{term: ".*", want: []string{}},
		{term: "sushi", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			foods, err := repo.SearchFoods(testContext(), tt.term)
			require.NoError(t, err)
			assert.Equal(t, tt.want, foodNames(foods))
		})
	}
}

func TestBuildSearchFoodsQuery_LowerFunction(t *testing.T) {
	tests := []struct {
		name string
		db   *DB
		want string
	}{
		{name: "sqlite", db: newSQLiteDB(nil, logger.Nop()), want: `ulower(food_name) LIKE ? ESCAPE '\'`},
		{name: "postgres", db: newPostgresDB(nil, logger.Nop()), want: `LOWER(food_name) LIKE $1 ESCAPE '\'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := tt.db.buildSearchFoodsQuery("Crème")
			require.NoError(t, err)
			assert.Contains(t, query, tt.want)
			assert.Equal(t, []any{"%crème%"}, args)
		})
	}
}

func TestSQLite_CreateAndGetFood(t *testing.T) {
	s := newSQLiteStorages(t)

	res, err := s.FoodRepository.CreateFood(testContext(), models.Food{
		FoodName:      "Pho",
		Price:         9.5,
		Quantity:      4,
		PurchaseCount: 42,
		Buyer:         models.Buyer{Email: "chef@example.com", Name: "Chef", Photo: "p.png"},
	})
	require.NoError(t, err)

	food, err := s.FoodRepository.GetFoodByID(testContext(), res.InsertedID)
	require.NoError(t, err)

	assert.Equal(t, "Pho", food.FoodName)
	assert.Equal(t, int64(0), food.PurchaseCount)
	assert.Equal(t, 9.5, food.Price)
	assert.Equal(t, "p.png", food.Buyer.Photo)
	assert.False(t, food.CreatedAt.IsZero())

	_, err = s.FoodRepository.GetFoodByID(testContext(), "missing")
	assert.ErrorIs(t, err, ErrFoodNotFound)
}

func TestSQLite_UpsertFood(t *testing.T) {
	s := newSQLiteStorages(t)
	repo := s.FoodRepository
	ids := createFoods(t, repo, "Pho")

	price := 12.0
	res, err := repo.UpsertFood(testContext(), ids[0], models.FoodPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)

	food, err := repo.GetFoodByID(testContext(), ids[0])
	require.NoError(t, err)
	assert.Equal(t, "Pho", food.FoodName, "unspecified fields are retained")
	assert.Equal(t, 12.0, food.Price)
	assert.True(t, food.UpdatedAt.After(food.CreatedAt))

	name := "Ghost Curry"
	res, err = repo.UpsertFood(testContext(), "unknown-id", models.FoodPatch{FoodName: &name})
	require.NoError(t, err)
	assert.Equal(t, models.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: "unknown-id"}, res)

	created, err := repo.GetFoodByID(testContext(), "unknown-id")
	require.NoError(t, err)
	assert.Equal(t, "Ghost Curry", created.FoodName)
	assert.Equal(t, int64(0), created.PurchaseCount)
}

func TestSQLite_TopFoodsOrdering(t *testing.T) {
	s := newSQLiteStorages(t)
	repo := s.FoodRepository
	ids := createFoods(t, repo, "A", "B", "C", "D", "E", "F", "G", "H")

	counts := map[int]int64{1: 5, 3: 5, 6: 2, 7: 9}
	for idx, n := range counts {
		require.NoError(t, repo.IncrementPurchaseCount(testContext(), ids[idx], fmt.Sprintf("order-%d", idx), n))
	}

	top, err := repo.GetTopFoods(testContext(), 6)
	require.NoError(t, err)

	assert.Equal(t, []string{"H", "B", "D", "G", "A", "C"}, foodNames(top))
}

func TestSQLite_IncrementUnknownIsNoop(t *testing.T) {
	s := newSQLiteStorages(t)
	assert.NoError(t, s.FoodRepository.IncrementPurchaseCount(testContext(), "missing", "order-1", 1))
}

func TestSQLite_IncrementCountsEachOrderOnce(t *testing.T) {
	s := newSQLiteStorages(t)
	repo := s.FoodRepository
	ids := createFoods(t, repo, "Pho", "Ramen")

	require.NoError(t, repo.IncrementPurchaseCount(testContext(), ids[0], "order-1", 1))
	require.NoError(t, repo.IncrementPurchaseCount(testContext(), ids[0], "order-1", 1))
	require.NoError(t, repo.IncrementPurchaseCount(testContext(), ids[0], "order-2", 1))
	// an order id is counted once across listings as well
	require.NoError(t, repo.IncrementPurchaseCount(testContext(), ids[1], "order-2", 1))

	pho, err := repo.GetFoodByID(testContext(), ids[0])
	require.NoError(t, err)
	assert.Equal(t, int64(2), pho.PurchaseCount)

	ramen, err := repo.GetFoodByID(testContext(), ids[1])
	require.NoError(t, err)
	assert.Equal(t, int64(0), ramen.PurchaseCount)
}

func TestSQLite_IncrementRolledBackWithPurchase(t *testing.T) {
	s := newSQLiteStorages(t)
	ids := createFoods(t, s.FoodRepository, "Pho")

	err := s.Transactor.WithinTransaction(testContext(), func(ctx context.Context) error {
		if err := s.FoodRepository.IncrementPurchaseCount(ctx, ids[0], "order-1", 1); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	// the rolled back claim does not block a later attempt
	require.NoError(t, s.FoodRepository.IncrementPurchaseCount(testContext(), ids[0], "order-1", 1))

	food, err := s.FoodRepository.GetFoodByID(testContext(), ids[0])
	require.NoError(t, err)
	assert.Equal(t, int64(1), food.PurchaseCount)
}

func TestSQLite_PurchaseTransactionRollsBack(t *testing.T) {
	s := newSQLiteStorages(t)
	ids := createFoods(t, s.FoodRepository, "Pho")

	err := s.Transactor.WithinTransaction(testContext(), func(ctx context.Context) error {
		if _, err := s.OrderRepository.CreateOrder(ctx, models.Order{PurchaseID: ids[0], Email: "guest@example.com"}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	orders, err := s.OrderRepository.GetOrdersByEmail(testContext(), "guest@example.com")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestSQLite_OrdersLifecycle(t *testing.T) {
	s := newSQLiteStorages(t)

	res, err := s.OrderRepository.CreateOrder(testContext(), models.Order{PurchaseID: "food", Email: "guest@example.com", Quantity: 1})
	require.NoError(t, err)

	order, err := s.OrderRepository.GetOrderByID(testContext(), res.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", order.Email)
	assert.False(t, order.Date.IsZero())

	del, err := s.OrderRepository.DeleteOrder(testContext(), res.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)

	del, err = s.OrderRepository.DeleteOrder(testContext(), res.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), del.DeletedCount)
}

func TestNewConnectSQLite_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "foods.db")

	db, err := NewConnectSQLite(testContext(), path, logger.Nop())
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, path)
	assert.NoError(t, db.Migrate())
}

func TestSQLiteErrorClassifier(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, NonRetryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("plain")))

	assert.True(t, c.IsUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}))
	assert.False(t, c.IsUniqueViolation(errors.New("plain")))
}

func TestSQLite_DuplicateIDMapsToAlreadyExists(t *testing.T) {
	s := newSQLiteStorages(t)
	repo := s.FoodRepository.(*foodRepository)
	repo.generateID = fixedID("same")

	_, err := repo.CreateFood(testContext(), models.Food{FoodName: "A"})
	require.NoError(t, err)

	_, err = repo.CreateFood(testContext(), models.Food{FoodName: "B"})
	assert.ErrorIs(t, err, ErrFoodAlreadyExists)
}
