// Package messages defines the inbound/outbound types at the matching
// core's boundary (spec.md §6). It holds no wire codec, no session
// concerns, and no factory logic beyond the minimal DefaultFactory
// needed to exercise the core end-to-end: those are the external
// collaborators spec.md §1 places out of scope.
package messages

import (
	"github.com/shopspring/decimal"

	"matchcore/model"
)

// NewOrderSingle is an inbound request to place a new order.
type NewOrderSingle struct {
	Symbol   string
	Side     model.Side
	OrdType  model.OrdType
	Price    decimal.Decimal // ignored when OrdType == model.Market
	OrderQty int64
	ClOrdID  string
}

// OrderCancelRequest is an inbound request to cancel a resting order.
type OrderCancelRequest struct {
	Symbol  string
	Side    model.Side
	ClOrdID string
}
