package models

import (
	"encoding/json"
	"reflect"

	"github.com/shopspring/decimal"
)

const (
	RemoteStatusSuccess = "success"
	RemoteStatusFailure = "failure"
)

// RemoteResponse is the outcome of a remote settle call.
// Payload is opaque; only its presence matters to order processing.
type RemoteResponse struct {
	Status  string `json:"status"`
	Payload any    `json:"data"`
}

// HasPayload reports whether the payload carries usable data.
// nil, zero numbers, false, empty strings and empty collections carry none.
func (r RemoteResponse) HasPayload() bool {
	switch p := r.Payload.(type) {
	case nil:
		return false
	case bool:
		return p
	case string:
		return p != ""
	case json.Number:
		d, err := decimal.NewFromString(p.String())
		return err == nil && !d.IsZero()
	case decimal.Decimal:
		return !p.IsZero()
	case *decimal.Decimal:
		return p != nil && !p.IsZero()
	}

	v := reflect.ValueOf(r.Payload)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return v.Float() != 0
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
		return v.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !v.IsNil()
	default:
		return true
	}
}
