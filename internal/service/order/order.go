package order

import (
	"context"
	"fmt"

	"github.com/nkiryanov/orderprocessing/internal/models"
	"github.com/nkiryanov/orderprocessing/internal/repository"
)

type OrderService struct {
	// Repository to access long term data
	orderRepo repository.OrderRepo
}

func NewService(orderRepo repository.OrderRepo) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
	}
}

// CreateOrder registers new order for the user in its initial state
func (s *OrderService) CreateOrder(ctx context.Context, userID int64, o models.Order) (models.Order, error) {
	n := models.NewOrder(o.ID, o.Type, o.Amount, o.Flag)

	order, err := s.orderRepo.CreateOrder(ctx, userID, *n)
	if err != nil {
		return order, fmt.Errorf("can't create order. Err: %w", err)
	}

	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID int64) ([]*models.Order, error) {
	return s.orderRepo.GetOrdersByUser(ctx, userID)
}
