package store

import (
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/migrations"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/models"
)

const (
	foodsTable         = "foods"
	ordersTable        = "orders"
	countedOrdersTable = "counted_orders"
)

var foodColumns = []string{
	"id",
	"food_name",
	"food_image",
	"food_category",
	"quantity",
	"price",
	"food_origin",
	"description",
	"purchase_count",
	"buyer_email",
	"buyer_name",
	"buyer_photo",
	"created_at",
	"updated_at",
}

var orderColumns = []string{
	"id",
	"purchase_id",
	"food_name",
	"food_image",
	"price",
	"quantity",
	"email",
	"buyer_name",
	"date",
}

// likeEscaper escapes LIKE wildcards so that a search term matches literally.
// The escape character is declared with ESCAPE '\' in the query.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (db *DB) selectFoods() sq.SelectBuilder {
	return db.builder.Select(foodColumns...).From(foodsTable)
}

// lowerFunc names the Unicode-aware lowercase function of the dialect.
func (db *DB) lowerFunc() string {
	if db.dialect == migrations.DialectSQLite {
		return "ulower"
	}
	return "LOWER"
}

func (db *DB) buildSearchFoodsQuery(term string) (string, []any, error) {
	query := db.selectFoods()
	if term != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		query = query.Where(sq.Expr(db.lowerFunc()+`(food_name) LIKE ? ESCAPE '\'`, pattern))
	}

	return query.OrderBy("created_at", "id").ToSql()
}

func (db *DB) buildGetFoodByIDQuery(id string) (string, []any, error) {
	return db.selectFoods().Where(sq.Eq{"id": id}).ToSql()
}

func (db *DB) buildGetFoodsByBuyerEmailQuery(email string) (string, []any, error) {
	return db.selectFoods().
		Where(sq.Eq{"buyer_email": email}).
		OrderBy("created_at", "id").
		ToSql()
}

func (db *DB) buildGetTopFoodsQuery(limit int) (string, []any, error) {
	return db.selectFoods().
		OrderBy("purchase_count DESC", "created_at", "id").
		Limit(uint64(limit)).
		ToSql()
}

func (db *DB) buildInsertFoodQuery(food models.Food) (string, []any, error) {
	return db.builder.Insert(foodsTable).
		Columns(foodColumns...).
		Values(
			food.ID,
			food.FoodName,
			food.FoodImage,
			food.FoodCategory,
			food.Quantity,
			food.Price,
			food.FoodOrigin,
			food.Description,
			food.PurchaseCount,
			food.Buyer.Email,
			food.Buyer.Name,
			food.Buyer.Photo,
			food.CreatedAt,
			food.UpdatedAt,
		).
		ToSql()
}

// buildUpdateFoodQuery sets every non-nil patch field. updated_at is always
// set, so the statement is valid for an empty patch.
func (db *DB) buildUpdateFoodQuery(id string, patch models.FoodPatch, updatedAt any) (string, []any, error) {
	query := db.builder.Update(foodsTable).Set("updated_at", updatedAt)

	if patch.FoodName != nil {
		query = query.Set("food_name", *patch.FoodName)
	}
	if patch.FoodImage != nil {
		query = query.Set("food_image", *patch.FoodImage)
	}
	if patch.FoodCategory != nil {
		query = query.Set("food_category", *patch.FoodCategory)
	}
	if patch.Quantity != nil {
		query = query.Set("quantity", *patch.Quantity)
	}
	if patch.Price != nil {
		query = query.Set("price", *patch.Price)
	}
	if patch.FoodOrigin != nil {
		query = query.Set("food_origin", *patch.FoodOrigin)
	}
	if patch.Description != nil {
		query = query.Set("description", *patch.Description)
	}
	if patch.Buyer != nil {
		query = query.
			Set("buyer_email", patch.Buyer.Email).
			Set("buyer_name", patch.Buyer.Name).
			Set("buyer_photo", patch.Buyer.Photo)
	}

	return query.Where(sq.Eq{"id": id}).ToSql()
}

// buildCountOrderQuery records orderID as counted. The insert affects no
// rows when the order was counted before.
func (db *DB) buildCountOrderQuery(foodID, orderID string) (string, []any, error) {
	return db.builder.Insert(countedOrdersTable).
		Columns("order_id", "food_id").
		Values(orderID, foodID).
		Suffix("ON CONFLICT (order_id) DO NOTHING").
		ToSql()
}

func (db *DB) buildIncrementPurchaseCountQuery(id string, delta int64) (string, []any, error) {
	return db.builder.Update(foodsTable).
		Set("purchase_count", sq.Expr("purchase_count + ?", delta)).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func (db *DB) selectOrders() sq.SelectBuilder {
	return db.builder.Select(orderColumns...).From(ordersTable)
}

func (db *DB) buildInsertOrderQuery(order models.Order) (string, []any, error) {
	return db.builder.Insert(ordersTable).
		Columns(orderColumns...).
		Values(
			order.ID,
			order.PurchaseID,
			order.FoodName,
			order.FoodImage,
			order.Price,
			order.Quantity,
			order.Email,
			order.BuyerName,
			order.Date,
		).
		ToSql()
}

func (db *DB) buildGetOrdersByEmailQuery(email string) (string, []any, error) {
	return db.selectOrders().
		Where(sq.Eq{"email": email}).
		OrderBy("date", "id").
		ToSql()
}

func (db *DB) buildGetOrderByIDQuery(id string) (string, []any, error) {
	return db.selectOrders().Where(sq.Eq{"id": id}).ToSql()
}

func (db *DB) buildDeleteOrderQuery(id string) (string, []any, error) {
	return db.builder.Delete(ordersTable).Where(sq.Eq{"id": id}).ToSql()
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanFood(row rowScanner) (models.Food, error) {
	var food models.Food
	var photo sql.NullString

	err := row.Scan(
		&food.ID,
		&food.FoodName,
		&food.FoodImage,
		&food.FoodCategory,
		&food.Quantity,
		&food.Price,
		&food.FoodOrigin,
		&food.Description,
		&food.PurchaseCount,
		&food.Buyer.Email,
		&food.Buyer.Name,
		&photo,
		&food.CreatedAt,
		&food.UpdatedAt,
	)
	food.Buyer.Photo = photo.String

	return food, err
}

func scanOrder(row rowScanner) (models.Order, error) {
	var order models.Order

	err := row.Scan(
		&order.ID,
		&order.PurchaseID,
		&order.FoodName,
		&order.FoodImage,
		&order.Price,
		&order.Quantity,
		&order.Email,
		&order.BuyerName,
		&order.Date,
	)

	return order, err
}
