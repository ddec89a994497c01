package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nkiryanov/orderprocessing/internal/apperrors"
	"github.com/nkiryanov/orderprocessing/internal/logger"
	"github.com/nkiryanov/orderprocessing/internal/models"
)

const (
	CodeRetryAfter = "retry-after"
	CodeBadStatus  = "bad-status"
	CodeDecode     = "decode"
	CodeUnknown    = "unknown"
)

const defaultTimeout = 5 * time.Second

// Error is returned for every failed remote call.
// It matches apperrors.ErrRemoteCall with errors.Is.
type Error struct {
	Code string

	RetryAfter time.Duration
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("code: %s, retry_after: %s, error: %v", e.Code, e.RetryAfter, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == apperrors.ErrRemoteCall
}

func NewError(code string, retryAfter int, err error) *Error {
	return &Error{
		Code:       code,
		RetryAfter: time.Duration(retryAfter) * time.Second,
		Err:        err,
	}
}

// Client settles orders with the remote service over HTTP
type Client struct {
	Addr string

	client *http.Client
	logger logger.Logger
}

func NewClient(addr string, l logger.Logger) *Client {
	return &Client{
		Addr:   strings.TrimRight(addr, "/"),
		client: &http.Client{},
		logger: l,
	}
}

// CallAPI requests settlement outcome for the order
func (c *Client) CallAPI(ctx context.Context, orderID int64) (models.RemoteResponse, error) {
	var r models.RemoteResponse

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	url := c.Addr + "/api/orders/" + strconv.FormatInt(orderID, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return r, NewError(CodeUnknown, 0, fmt.Errorf("failed to create request: %w", err))
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return r, NewError(CodeUnknown, 0, fmt.Errorf("failed to send request: %w", err))
	}
	defer resp.Body.Close() // nolint:errcheck

	switch resp.StatusCode {
	case http.StatusOK:
		return c.processSuccess(resp)
	case http.StatusTooManyRequests:
		return r, c.processTooManyRequests(resp)
	default:
		c.logger.Warn("Remote call failed", "status_code", resp.StatusCode, "order_id", orderID)
		return r, NewError(CodeBadStatus, 0, fmt.Errorf("unexpected status code %d for order %d", resp.StatusCode, orderID))
	}
}

func (c *Client) processSuccess(resp *http.Response) (models.RemoteResponse, error) {
	var r models.RemoteResponse

	// Numbers are kept as json.Number to not lose precision of decimal payloads
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&r); err != nil {
		c.logger.Warn("Failed to decode response", "error", err)
		return r, NewError(CodeDecode, 0, fmt.Errorf("failed to decode response: %w", err))
	}

	c.logger.Debug("Remote response", "status", r.Status, "data", r.Payload)
	return r, nil
}

func (c *Client) processTooManyRequests(resp *http.Response) error {
	header := resp.Header.Get("Retry-After")
	retryAfter, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil {
		retryAfter = 60 // default to 60 seconds if parsing fails
	}

	c.logger.Warn("Remote service throttled", "retry_after", retryAfter)
	return NewError(CodeRetryAfter, retryAfter, fmt.Errorf("retry after %d seconds", retryAfter))
}
