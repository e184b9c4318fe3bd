package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/logger"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selectFoodsSQL = `SELECT id, food_name, food_image, food_category, quantity, price, food_origin, description, purchase_count, buyer_email, buyer_name, buyer_photo, created_at, updated_at FROM foods`

var foodRowColumns = []string{
	"id", "food_name", "food_image", "food_category", "quantity", "price",
	"food_origin", "description", "purchase_count", "buyer_email",
	"buyer_name", "buyer_photo", "created_at", "updated_at",
}

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func fixedID(id string) func() string {
	return func() string { return id }
}

func newTestFoodRepo(t *testing.T) (*foodRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	repo := NewFoodRepository(newPostgresDB(db, logger.Nop()), fixedID("food-1")).(*foodRepository)
	return repo, mock
}

func foodRow(id, name string, purchaseCount int64, createdAt time.Time) []driver.Value {
	return []driver.Value{
		id, name, "img.png", "Soup", 10, 4.5, "Vietnam", "hot",
		purchaseCount, "chef@example.com", "Chef", nil, createdAt, createdAt,
	}
}

// ── CreateFood ────────────────────────────────────────────────────────────────

func TestFoodRepository_CreateFood(t *testing.T) {
	repo, mock := newTestFoodRepo(t)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	repo.now = func() time.Time { return now }

	food := models.Food{
		ID:            "client-chosen",
		FoodName:      "Pho",
		PurchaseCount: 99,
		Buyer:         models.Buyer{Email: "chef@example.com", Name: "Chef"},
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO foods (id,food_name,food_image,food_category,quantity,price,food_origin,description,purchase_count,buyer_email,buyer_name,buyer_photo,created_at,updated_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`)).
		WithArgs("food-1", "Pho", "", "", 0, 0.0, "", "", int64(0), "chef@example.com", "Chef", "", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := repo.CreateFood(testContext(), food)

	require.NoError(t, err)
	assert.Equal(t, models.InsertResult{Acknowledged: true, InsertedID: "food-1"}, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFoodRepository_CreateFood_Errors(t *testing.T) {
	tests := []struct {
		name    string
		execErr error
		wantErr error
	}{
		{name: "driver error", execErr: errors.New("boom"), wantErr: ErrExecutingStatement},
		{name: "duplicate id", execErr: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, wantErr: ErrFoodAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestFoodRepo(t)
			mock.ExpectExec(`INSERT INTO foods`).WillReturnError(tt.execErr)

			_, err := repo.CreateFood(testContext(), models.Food{FoodName: "Pho"})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// ── SearchFoods ───────────────────────────────────────────────────────────────

func TestFoodRepository_SearchFoods(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		term     string
		query    string
		args     []driver.Value
		rows     [][]driver.Value
		wantLen  int
		queryErr error
		wantErr  error
	}{
		{
			name:    "empty term returns all",
			term:    "",
			query:   selectFoodsSQL + ` ORDER BY created_at, id`,
			rows:    [][]driver.Value{foodRow("a", "Pho", 0, created), foodRow("b", "Ramen", 2, created)},
			wantLen: 2,
		},
		{
			name:    "term lowercased",
			term:    "PHO",
			query:   selectFoodsSQL + ` WHERE LOWER(food_name) LIKE $1 ESCAPE '\' ORDER BY created_at, id`,
			args:    []driver.Value{"%pho%"},
			rows:    [][]driver.Value{foodRow("a", "Pho", 0, created)},
			wantLen: 1,
		},
		{
			name:    "wildcards escaped",
			term:    `50%_off\`,
			query:   selectFoodsSQL + ` WHERE LOWER(food_name) LIKE $1 ESCAPE '\' ORDER BY created_at, id`,
			args:    []driver.Value{`%50\%\_off\\%`},
			wantLen: 0,
		},
		{
			name:     "query error",
			term:     "x",
			query:    selectFoodsSQL + ` WHERE LOWER(food_name) LIKE $1 ESCAPE '\' ORDER BY created_at, id`,
			args:     []driver.Value{"%x%"},
			queryErr: errors.New("db down"),
			wantErr:  ErrExecutingQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestFoodRepo(t)

			exp := mock.ExpectQuery(regexp.QuoteMeta(tt.query))
			if len(tt.args) > 0 {
				exp = exp.WithArgs(tt.args...)
			}
			if tt.queryErr != nil {
				exp.WillReturnError(tt.queryErr)
			} else {
				rows := sqlmock.NewRows(foodRowColumns)
				for _, r := range tt.rows {
					rows.AddRow(r...)
				}
				exp.WillReturnRows(rows)
			}

			foods, err := repo.SearchFoods(testContext(), tt.term)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Len(t, foods, tt.wantLen)
				assert.NotNil(t, foods)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFoodRepository_SearchFoods_ScanError(t *testing.T) {
	repo, mock := newTestFoodRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectFoodsSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("a"))

	_, err := repo.SearchFoods(testContext(), "")

	assert.ErrorIs(t, err, ErrScanningRow)
}

// ── GetFoodByID ───────────────────────────────────────────────────────────────

func TestFoodRepository_GetFoodByID(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta(selectFoodsSQL + ` WHERE id = $1`)

	t.Run("found", func(t *testing.T) {
		repo, mock := newTestFoodRepo(t)
		mock.ExpectQuery(query).WithArgs("a").
			WillReturnRows(sqlmock.NewRows(foodRowColumns).AddRow(foodRow("a", "Pho", 3, created)...))

		food, err := repo.GetFoodByID(testContext(), "a")

		require.NoError(t, err)
		assert.Equal(t, "a", food.ID)
		assert.Equal(t, "Pho", food.FoodName)
		assert.Equal(t, int64(3), food.PurchaseCount)
		assert.Equal(t, "chef@example.com", food.Buyer.Email)
		assert.Empty(t, food.Buyer.Photo)
		assert.Equal(t, created, food.CreatedAt)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestFoodRepo(t)
		mock.ExpectQuery(query).WithArgs("missing").WillReturnRows(sqlmock.NewRows(foodRowColumns))

		_, err := repo.GetFoodByID(testContext(), "missing")

		assert.ErrorIs(t, err, ErrFoodNotFound)
	})

	t.Run("driver error", func(t *testing.T) {
		repo, mock := newTestFoodRepo(t)
		mock.ExpectQuery(query).WithArgs("a").WillReturnError(errors.New("boom"))

		_, err := repo.GetFoodByID(testContext(), "a")

		assert.ErrorIs(t, err, ErrScanningRow)
		assert.NotErrorIs(t, err, ErrFoodNotFound)
	})
}

// ── GetFoodsByBuyerEmail ──────────────────────────────────────────────────────

func TestFoodRepository_GetFoodsByBuyerEmail(t *testing.T) {
	repo, mock := newTestFoodRepo(t)
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(selectFoodsSQL+` WHERE buyer_email = $1 ORDER BY created_at, id`)).
		WithArgs("chef@example.com").
		WillReturnRows(sqlmock.NewRows(foodRowColumns).AddRow(foodRow("a", "Pho", 0, created)...))

	foods, err := repo.GetFoodsByBuyerEmail(testContext(), "chef@example.com")

	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "a", foods[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── UpsertFood ────────────────────────────────────────────────────────────────

func TestFoodRepository_UpsertFood_UpdatesExisting(t *testing.T) {
	repo, mock := newTestFoodRepo(t)
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	name := "Pho Bo"
	price := 7.25

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE foods SET updated_at = $1, food_name = $2, price = $3 WHERE id = $4`)).
		WithArgs(now, name, price, "a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := repo.UpsertFood(testContext(), "a", models.FoodPatch{FoodName: &name, Price: &price})

	require.NoError(t, err)
	assert.Equal(t, models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFoodRepository_UpsertFood_InsertsMissing(t *testing.T) {
	repo, mock := newTestFoodRepo(t)
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	name := "Bun Cha"

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE foods SET updated_at = $1, food_name = $2 WHERE id = $3`)).
		WithArgs(now, name, "new-id").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO foods`).
		WithArgs("new-id", name, "", "", 0, 0.0, "", "", int64(0), "", "", "", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := repo.UpsertFood(testContext(), "new-id", models.FoodPatch{FoodName: &name})

	require.NoError(t, err)
	assert.Equal(t, models.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: "new-id"}, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFoodRepository_UpsertFood_EmptyPatchTouchesUpdatedAt(t *testing.T) {
	repo, mock := newTestFoodRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE foods SET updated_at = $1 WHERE id = $2`)).
		WithArgs(sqlmock.AnyArg(), "a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := repo.UpsertFood(testContext(), "a", models.FoodPatch{})

	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFoodRepository_UpsertFood_RollsBackOnInsertError(t *testing.T) {
	repo, mock := newTestFoodRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE foods`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO foods`).WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
	mock.ExpectRollback()

	_, err := repo.UpsertFood(testContext(), "a", models.FoodPatch{})

	assert.ErrorIs(t, err, ErrFoodAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFoodRepository_UpsertFood_BeginError(t *testing.T) {
	repo, mock := newTestFoodRepo(t)
	mock.ExpectBegin().WillReturnError(errors.New("no conn"))

	_, err := repo.UpsertFood(testContext(), "a", models.FoodPatch{})

	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

// ── GetTopFoods ───────────────────────────────────────────────────────────────

func TestFoodRepository_GetTopFoods(t *testing.T) {
	repo, mock := newTestFoodRepo(t)
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(selectFoodsSQL + ` ORDER BY purchase_count DESC, created_at, id LIMIT 6`)).
		WillReturnRows(sqlmock.NewRows(foodRowColumns).
			AddRow(foodRow("b", "Ramen", 9, created)...).
			AddRow(foodRow("a", "Pho", 4, created)...))

	foods, err := repo.GetTopFoods(testContext(), 6)

	require.NoError(t, err)
	require.Len(t, foods, 2)
	assert.Equal(t, "b", foods[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFoodRepository_GetTopFoods_NonPositiveLimit(t *testing.T) {
	repo, mock := newTestFoodRepo(t)

	foods, err := repo.GetTopFoods(testContext(), 0)

	require.NoError(t, err)
	assert.Empty(t, foods)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── IncrementPurchaseCount ────────────────────────────────────────────────────

func TestFoodRepository_IncrementPurchaseCount(t *testing.T) {
	countQuery := regexp.QuoteMeta(`INSERT INTO counted_orders (order_id,food_id) VALUES ($1,$2) ON CONFLICT (order_id) DO NOTHING`)
	query := regexp.QuoteMeta(`UPDATE foods SET purchase_count = purchase_count + $1 WHERE id = $2`)

	t.Run("existing", func(t *testing.T) {
		repo, mock := newTestFoodRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec(countQuery).WithArgs("order-1", "a").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(query).WithArgs(int64(1), "a").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.IncrementPurchaseCount(testContext(), "a", "order-1", 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("order already counted", func(t *testing.T) {
		repo, mock := newTestFoodRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec(countQuery).WithArgs("order-1", "a").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		require.NoError(t, repo.IncrementPurchaseCount(testContext(), "a", "order-1", 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		repo, mock := newTestFoodRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec(countQuery).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(query).WithArgs(int64(1), "missing").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		require.NoError(t, repo.IncrementPurchaseCount(testContext(), "missing", "order-1", 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver error rolls back", func(t *testing.T) {
		repo, mock := newTestFoodRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec(countQuery).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(query).WillReturnError(errors.New("boom"))
		mock.ExpectRollback()

		err := repo.IncrementPurchaseCount(testContext(), "a", "order-1", 1)
		assert.ErrorIs(t, err, ErrExecutingStatement)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// ── WithinTransaction ─────────────────────────────────────────────────────────

func TestDB_WithinTransaction_JoinsRepositories(t *testing.T) {
	repo, mock := newTestFoodRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO counted_orders`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE foods SET purchase_count`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO counted_orders`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE foods SET purchase_count`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.DB.WithinTransaction(testContext(), func(ctx context.Context) error {
		if err := repo.IncrementPurchaseCount(ctx, "a", "order-1", 1); err != nil {
			return err
		}
		// nested call reuses the outer transaction
		return repo.DB.WithinTransaction(ctx, func(ctx context.Context) error {
			return repo.IncrementPurchaseCount(ctx, "a", "order-2", 1)
		})
	})

	require.NoError(t, err)
	assert.True(t, repo.DB.Atomic())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_WithinTransaction_RollbackOnError(t *testing.T) {
	repo, mock := newTestFoodRepo(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := repo.DB.WithinTransaction(testContext(), func(ctx context.Context) error {
		return assert.AnError
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_WithinTransaction_CommitError(t *testing.T) {
	repo, mock := newTestFoodRepo(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("commit failed"))

	err := repo.DB.WithinTransaction(testContext(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrCommitingTransaction)
}
