package models

import (
	"github.com/shopspring/decimal"
)

const (
	OrderTypeExport     = "A"
	OrderTypeRemote     = "B"
	OrderTypeCompletion = "C"
)

const (
	OrderStatusNew = "new"

	// Export (type A)
	OrderStatusExported     = "exported"
	OrderStatusExportFailed = "export_failed"

	// Remote settle (type B)
	OrderStatusProcessed  = "processed"
	OrderStatusPending    = "pending"
	OrderStatusError      = "error"
	OrderStatusAPIError   = "api_error"
	OrderStatusAPIFailure = "api_failure"

	// Completion workflow (type C)
	OrderStatusCompleted  = "completed"
	OrderStatusInProgress = "in_progress"

	OrderStatusUnknownType = "unknown_type"
	OrderStatusDBError     = "db_error"
)

const (
	PriorityLow  = "low"
	PriorityHigh = "high"
)

// Orders with amount strictly above the threshold are high priority.
// The same boundary marks an exported order as high value.
var HighValueThreshold = decimal.NewFromInt(200)

type Order struct {
	ID       int64
	UserID   int64
	Type     string
	Amount   decimal.Decimal
	Flag     bool
	Status   string
	Priority string
}

// NewOrder returns order in its initial state: status "new", priority "low"
func NewOrder(id int64, orderType string, amount decimal.Decimal, flag bool) *Order {
	return &Order{
		ID:       id,
		Type:     orderType,
		Amount:   amount,
		Flag:     flag,
		Status:   OrderStatusNew,
		Priority: PriorityLow,
	}
}

func IsHighValue(amount decimal.Decimal) bool {
	return amount.GreaterThan(HighValueThreshold)
}

func PriorityFor(amount decimal.Decimal) string {
	if IsHighValue(amount) {
		return PriorityHigh
	}
	return PriorityLow
}
