package orderprocessor

import (
	"context"

	"github.com/nkiryanov/orderprocessing/internal/logger"
	"github.com/nkiryanov/orderprocessing/internal/models"
)

// Store persists orders
type Store interface {
	// Return all orders of the user
	GetOrdersByUser(ctx context.Context, userID int64) ([]*models.Order, error)

	// Save status and priority of the order
	// Returns false if the order was not updated
	UpdateOrderStatus(ctx context.Context, orderID int64, status string, priority string) (bool, error)
}

// RemoteClient settles type B orders
type RemoteClient interface {
	CallAPI(ctx context.Context, orderID int64) (models.RemoteResponse, error)
}

// Exporter writes type A orders to external file
type Exporter interface {
	Export(ctx context.Context, order models.Order) (string, error)
}

type Processor struct {
	store    Store
	client   RemoteClient
	exporter Exporter
	logger   logger.Logger
}

func New(store Store, client RemoteClient, exporter Exporter, l logger.Logger) *Processor {
	return &Processor{
		store:    store,
		client:   client,
		exporter: exporter,
		logger:   l,
	}
}

// ProcessOrders handles every order of the user one by one and saves resulting status.
// Returns false only if there is nothing to process: orders can't be retrieved or the user has none.
// Failure of single order never stops processing of the rest.
func (p *Processor) ProcessOrders(ctx context.Context, userID int64) bool {
	l := p.logger.With("user_id", userID)

	orders, err := p.store.GetOrdersByUser(ctx, userID)
	if err != nil {
		l.Error("Failed to retrieve orders", "error", err)
		return false
	}
	if len(orders) == 0 {
		l.Info("No orders to process")
		return false
	}

	for _, order := range orders {
		if order == nil {
			continue
		}
		p.processOrder(ctx, order, l.With("order_id", order.ID, "order_type", order.Type))
	}

	l.Info("Orders processed", "count", len(orders))
	return true
}

func (p *Processor) processOrder(ctx context.Context, order *models.Order, l logger.Logger) {
	order.Priority = models.PriorityFor(order.Amount)

	switch order.Type {
	case models.OrderTypeExport:
		order.Status = p.export(ctx, *order, l)
	case models.OrderTypeRemote:
		order.Status = p.settle(ctx, *order, l)
	case models.OrderTypeCompletion:
		order.Status = completionStatus(*order)
	default:
		l.Warn("Unknown order type")
		order.Status = models.OrderStatusUnknownType
	}

	updated, err := p.store.UpdateOrderStatus(ctx, order.ID, order.Status, order.Priority)
	switch {
	case err != nil:
		l.Warn("Failed to save order status", "status", order.Status, "error", err)
		order.Status = models.OrderStatusDBError
	case !updated:
		l.Warn("Order status not saved", "status", order.Status)
	default:
		l.Debug("Order status saved", "status", order.Status, "priority", order.Priority)
	}
}

func (p *Processor) export(ctx context.Context, order models.Order, l logger.Logger) string {
	order.Status = models.OrderStatusExported

	path, err := p.exporter.Export(ctx, order)
	if err != nil {
		l.Warn("Failed to export order", "error", err)
		return models.OrderStatusExportFailed
	}

	l.Debug("Order exported", "path", path)
	return models.OrderStatusExported
}

func (p *Processor) settle(ctx context.Context, order models.Order, l logger.Logger) string {
	resp, err := p.client.CallAPI(ctx, order.ID)
	if err != nil {
		l.Warn("Remote call failed", "error", err)
		return models.OrderStatusAPIFailure
	}

	switch {
	case resp.Status != models.RemoteStatusSuccess:
		l.Info("Remote service rejected order", "remote_status", resp.Status)
		return models.OrderStatusAPIError
	case order.Flag:
		return models.OrderStatusPending
	case !resp.HasPayload():
		return models.OrderStatusError
	default:
		return models.OrderStatusProcessed
	}
}

func completionStatus(order models.Order) string {
	if order.Flag {
		return models.OrderStatusCompleted
	}
	return models.OrderStatusInProgress
}
