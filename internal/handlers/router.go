package handlers

import (
	"context"
	"net/http"

	"github.com/nkiryanov/orderprocessing/internal/handlers/middleware"
	"github.com/nkiryanov/orderprocessing/internal/logger"
	"github.com/nkiryanov/orderprocessing/internal/models"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	orderService orderService,
	processor orderProcessor,
	logger logger.Logger,
) http.Handler {
	api := http.NewServeMux()

	api.Handle("POST /users/{userID}/orders", handleCreateOrder(orderService, logger))
	api.Handle("GET /users/{userID}/orders", handleListOrders(orderService, logger))
	api.Handle("POST /users/{userID}/orders/process", handleProcessOrders(processor, logger))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return chain(root,
		middleware.LoggerMiddleware(logger),
	)
}

type orderService interface {
	// Create order for the user
	// Has to return apperrors.ErrOrderAlreadyExists if order with the id exists
	CreateOrder(ctx context.Context, userID int64, order models.Order) (models.Order, error)

	ListOrders(ctx context.Context, userID int64) ([]*models.Order, error)
}

type orderProcessor interface {
	ProcessOrders(ctx context.Context, userID int64) bool
}
