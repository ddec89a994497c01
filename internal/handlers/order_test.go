package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/orderprocessing/internal/apperrors"
	"github.com/nkiryanov/orderprocessing/internal/logger"
	"github.com/nkiryanov/orderprocessing/internal/models"
)

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) CreateOrder(ctx context.Context, userID int64, order models.Order) (models.Order, error) {
	args := m.Called(ctx, userID, order)
	return args.Get(0).(models.Order), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, userID int64) ([]*models.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]*models.Order)
	return orders, args.Error(1)
}

type MockProcessor struct{ mock.Mock }

func (m *MockProcessor) ProcessOrders(ctx context.Context, userID int64) bool {
	args := m.Called(ctx, userID)
	return args.Bool(0)
}

func serve(t *testing.T) (string, *MockOrderService, *MockProcessor) {
	t.Helper()

	orderService := new(MockOrderService)
	processor := new(MockProcessor)
	srv := httptest.NewServer(NewRouter(orderService, processor, logger.NewNoOpLogger()))
	t.Cleanup(func() {
		srv.Close()
		orderService.AssertExpectations(t)
		processor.AssertExpectations(t)
	})

	return srv.URL, orderService, processor
}

func do(t *testing.T, method string, url string, body string) (int, string) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err, "failed to create request")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "failed to send request")
	defer resp.Body.Close() // nolint:errcheck

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	return resp.StatusCode, string(b)
}

func TestOrderHandlers(t *testing.T) {
	t.Run("create ok", func(t *testing.T) {
		url, orderService, _ := serve(t)
		expected := models.Order{ID: 1, Type: "A", Amount: decimal.RequireFromString("100.5"), Flag: true}
		orderService.On("CreateOrder", mock.Anything, int64(10), mock.MatchedBy(func(o models.Order) bool {
			return o.ID == 1 && o.Type == "A" && o.Amount.Equal(expected.Amount) && o.Flag
		})).Return(models.Order{
			ID: 1, UserID: 10, Type: "A", Amount: expected.Amount, Flag: true, Status: "new", Priority: "low",
		}, nil).Once()

		code, body := do(t, http.MethodPost, url+"/api/users/10/orders", `{"id": 1, "type": "A", "amount": "100.5", "flag": true}`)

		require.Equalf(t, http.StatusCreated, code, "order should be created. Body: %s", body)
		require.JSONEq(t, `{"id": 1, "type": "A", "amount": "100.5", "flag": true, "status": "new", "priority": "low"}`, body)
	})

	t.Run("create duplicate", func(t *testing.T) {
		url, orderService, _ := serve(t)
		orderService.On("CreateOrder", mock.Anything, int64(10), mock.Anything).
			Return(models.Order{}, apperrors.ErrOrderAlreadyExists).Once()

		code, _ := do(t, http.MethodPost, url+"/api/users/10/orders", `{"id": 1, "type": "A", "amount": 1}`)

		require.Equal(t, http.StatusConflict, code)
	})

	t.Run("create invalid", func(t *testing.T) {
		url, _, _ := serve(t)

		code, body := do(t, http.MethodPost, url+"/api/users/10/orders", `{"id": 1, "type": "", "amount": "-5"}`)

		require.Equal(t, http.StatusBadRequest, code)
		require.Contains(t, body, "validation_failed")
	})

	t.Run("invalid user id", func(t *testing.T) {
		url, _, _ := serve(t)

		code, _ := do(t, http.MethodGet, url+"/api/users/abc/orders", "")

		require.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("list empty", func(t *testing.T) {
		url, orderService, _ := serve(t)
		orderService.On("ListOrders", mock.Anything, int64(10)).Return([]*models.Order{}, nil).Once()

		code, body := do(t, http.MethodGet, url+"/api/users/10/orders", "")

		require.Equal(t, http.StatusNoContent, code)
		require.Empty(t, body)
	})

	t.Run("list orders", func(t *testing.T) {
		url, orderService, _ := serve(t)
		orderService.On("ListOrders", mock.Anything, int64(10)).Return([]*models.Order{
			{ID: 1, UserID: 10, Type: "A", Amount: decimal.NewFromInt(300), Status: "exported", Priority: "high"},
		}, nil).Once()

		code, body := do(t, http.MethodGet, url+"/api/users/10/orders", "")

		require.Equal(t, http.StatusOK, code)
		require.JSONEq(t, `[{"id": 1, "type": "A", "amount": "300", "flag": false, "status": "exported", "priority": "high"}]`, body)
	})

	t.Run("list fail", func(t *testing.T) {
		url, orderService, _ := serve(t)
		orderService.On("ListOrders", mock.Anything, int64(10)).Return(nil, errors.New("db is down")).Once()

		code, _ := do(t, http.MethodGet, url+"/api/users/10/orders", "")

		require.Equal(t, http.StatusInternalServerError, code)
	})

	t.Run("process", func(t *testing.T) {
		tests := []struct {
			name      string
			processed bool
			expected  string
		}{
			{"processed", true, `{"processed": true}`},
			{"nothing to process", false, `{"processed": false}`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				url, _, processor := serve(t)
				processor.On("ProcessOrders", mock.Anything, int64(10)).Return(tt.processed).Once()

				code, body := do(t, http.MethodPost, url+"/api/users/10/orders/process", "")

				require.Equal(t, http.StatusOK, code)
				require.JSONEq(t, tt.expected, body)
			})
		}
	})
}
