package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nkiryanov/orderprocessing/internal/apperrors"
	"github.com/nkiryanov/orderprocessing/internal/models"
)

type OrderRepo struct {
	DB DBTX
}

const createOrder = `-- name: CreateOrder
INSERT INTO orders (id, user_id, type, amount, flag, status, priority)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, user_id, type, amount, flag, status, priority
`

func (r *OrderRepo) CreateOrder(ctx context.Context, userID int64, o models.Order) (models.Order, error) {
	if o.Status == "" {
		o.Status = models.OrderStatusNew
	}
	if o.Priority == "" {
		o.Priority = models.PriorityLow
	}

	rows, _ := r.DB.Query(ctx, createOrder, o.ID, userID, o.Type, o.Amount, o.Flag, o.Status, o.Priority)
	order, err := pgx.CollectOneRow(rows, rowToOrder)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return order, apperrors.ErrOrderAlreadyExists
		}

		return order, fmt.Errorf("db error: %w", err)
	}

	return order, nil
}

const getOrdersByUser = `-- name: GetOrdersByUser
SELECT id, user_id, type, amount, flag, status, priority FROM orders
WHERE user_id = $1
ORDER BY id
`

func (r *OrderRepo) GetOrdersByUser(ctx context.Context, userID int64) ([]*models.Order, error) {
	rows, _ := r.DB.Query(ctx, getOrdersByUser, userID)
	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.Order, error) {
		o, err := rowToOrder(row)
		return &o, err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: db error: %w", apperrors.ErrOrdersRetrieval, err)
	}

	return orders, nil
}

const updateOrderStatus = `-- name: UpdateOrderStatus
UPDATE orders SET status = $2, priority = $3, modified_at = now()
WHERE id = $1
`

func (r *OrderRepo) UpdateOrderStatus(ctx context.Context, orderID int64, status string, priority string) (bool, error) {
	tag, err := r.DB.Exec(ctx, updateOrderStatus, orderID, status, priority)
	if err != nil {
		return false, fmt.Errorf("%w: db error: %w", apperrors.ErrStore, err)
	}

	return tag.RowsAffected() == 1, nil
}

func rowToOrder(row pgx.CollectableRow) (models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Type, &o.Amount, &o.Flag, &o.Status, &o.Priority)
	return o, err
}
