package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/nkiryanov/orderprocessing/internal/apperrors"
	"github.com/nkiryanov/orderprocessing/internal/handlers/render"
	"github.com/nkiryanov/orderprocessing/internal/logger"
	"github.com/nkiryanov/orderprocessing/internal/models"
)

type OrderRequest struct {
	ID     int64           `json:"id" validate:"gt=0"`
	Type   string          `json:"type" validate:"required,max=16"`
	Amount decimal.Decimal `json:"amount" validate:"gte=0"`
	Flag   bool            `json:"flag"`
}

type OrderResponse struct {
	ID       int64           `json:"id"`
	Type     string          `json:"type"`
	Amount   decimal.Decimal `json:"amount"`
	Flag     bool            `json:"flag"`
	Status   string          `json:"status"`
	Priority string          `json:"priority"`
}

type ProcessResponse struct {
	Processed bool `json:"processed"`
}

func toOrderResponse(o models.Order) OrderResponse {
	return OrderResponse{
		ID:       o.ID,
		Type:     o.Type,
		Amount:   o.Amount,
		Flag:     o.Flag,
		Status:   o.Status,
		Priority: o.Priority,
	}
}

// Return user id from request path; renders error response if it is invalid
func userIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil || userID <= 0 {
		render.ServiceError(w, "Invalid user id", http.StatusBadRequest)
		return 0, false
	}
	return userID, true
}

func handleCreateOrder(orderService orderService, logger logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromPath(w, r)
		if !ok {
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, 1024)
		req, err := render.BindAndValidate[OrderRequest](w, r)
		if err != nil {
			return
		}

		order, err := orderService.CreateOrder(r.Context(), userID, models.Order{
			ID:     req.ID,
			Type:   req.Type,
			Amount: req.Amount,
			Flag:   req.Flag,
		})

		switch {
		case err == nil:
			render.JSONWithStatus(w, toOrderResponse(order), http.StatusCreated)
		case errors.Is(err, apperrors.ErrOrderAlreadyExists):
			render.ServiceError(w, "Order already exists", http.StatusConflict)
		default:
			logger.Error("Failed to create order", "error", err, "user_id", userID)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	}
}

func handleListOrders(orderService orderService, logger logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromPath(w, r)
		if !ok {
			return
		}

		orders, err := orderService.ListOrders(r.Context(), userID)
		if err != nil {
			logger.Error("Failed to list orders", "error", err, "user_id", userID)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if len(orders) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		res := make([]OrderResponse, 0, len(orders))
		for _, o := range orders {
			res = append(res, toOrderResponse(*o))
		}
		render.JSON(w, res)
	}
}

func handleProcessOrders(processor orderProcessor, _ logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromPath(w, r)
		if !ok {
			return
		}

		processed := processor.ProcessOrders(r.Context(), userID)
		render.JSON(w, ProcessResponse{Processed: processed})
	}
}
