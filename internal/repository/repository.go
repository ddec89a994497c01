package repository

import (
	"context"

	"github.com/nkiryanov/orderprocessing/internal/models"
)

// Order repository interface
type OrderRepo interface {
	// Create order for the user
	// If order with the same id exists already has to return apperrors.ErrOrderAlreadyExists
	CreateOrder(ctx context.Context, userID int64, order models.Order) (models.Order, error)

	// Return user orders ordered by id
	// Empty slice without error if user has no orders
	GetOrdersByUser(ctx context.Context, userID int64) ([]*models.Order, error)

	// Set order status and priority
	// Returns false if order with the id does not exist
	UpdateOrderStatus(ctx context.Context, orderID int64, status string, priority string) (bool, error)
}

type Storage interface {
	Order() OrderRepo

	// Run fn in transaction: commit if fn returns nil, rollback otherwise
	InTx(ctx context.Context, fn func(Storage) error) error
}
