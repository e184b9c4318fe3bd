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

// orderRepository is the SQL implementation of [OrderRepository].
type orderRepository struct {
	*DB
	generateID func() string
	now        func() time.Time
}

func NewOrderRepository(db *DB, generateID func() string) OrderRepository {
	return &orderRepository{
		DB:         db,
		generateID: generateID,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// CreateOrder stores order under a fresh id. A zero Date is set to now.
func (r *orderRepository) CreateOrder(ctx context.Context, order models.Order) (models.InsertResult, error) {
	log := logger.FromContext(ctx)

	order.ID = r.generateID()
	if order.Date.IsZero() {
		order.Date = r.now()
	}

	query, args, err := r.buildInsertOrderQuery(order)
	if err != nil {
		log.Err(err).Str("func", "orderRepository.CreateOrder").Msg("failed to build query")
		return models.InsertResult{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.querier(ctx).ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "orderRepository.CreateOrder").
			Str("order_id", order.ID).
			Str("purchase_id", order.PurchaseID).
			Msg("failed to insert order")
		return models.InsertResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return models.InsertResult{Acknowledged: true, InsertedID: order.ID}, nil
}

func (r *orderRepository) GetOrdersByEmail(ctx context.Context, email string) ([]models.Order, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildGetOrdersByEmailQuery(email)
	if err != nil {
		log.Err(err).Str("func", "orderRepository.GetOrdersByEmail").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "orderRepository.GetOrdersByEmail").
			Str("email", email).
			Msg("failed to execute query for getting orders")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	orders := make([]models.Order, 0, 16)
	for rows.Next() {
		order, scanErr := scanOrder(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "orderRepository.GetOrdersByEmail").
				Msg("failed to scan order row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		orders = append(orders, order)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "orderRepository.GetOrdersByEmail").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return orders, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id string) (models.Order, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildGetOrderByIDQuery(id)
	if err != nil {
		log.Err(err).Str("func", "orderRepository.GetOrderByID").Msg("failed to build query")
		return models.Order{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	order, err := scanOrder(r.querier(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "orderRepository.GetOrderByID").
			Str("order_id", id).
			Msg("failed to get order")
		return models.Order{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return order, nil
}

func (r *orderRepository) DeleteOrder(ctx context.Context, id string) (models.DeleteResult, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildDeleteOrderQuery(id)
	if err != nil {
		log.Err(err).Str("func", "orderRepository.DeleteOrder").Msg("failed to build query")
		return models.DeleteResult{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.querier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "orderRepository.DeleteOrder").
			Str("order_id", id).
			Msg("failed to delete order")
		return models.DeleteResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return models.DeleteResult{Acknowledged: true, DeletedCount: deleted}, nil
}
