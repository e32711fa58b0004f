package messages

import (
	"github.com/shopspring/decimal"

	"matchcore/model"
)

// OutboundMessage is the common type of everything matching.Engine
// returns to its caller: one ExecutionReport or OrderCancelReject per
// spec.md §6.
type OutboundMessage interface {
	isOutboundMessage()
}

// Fill is one (fillPx, fillQty) pair appended to an ExecutionReport by
// NextFill, mirroring the MutableFill sub-record in spec.md §4.3/§6.
type Fill struct {
	Price decimal.Decimal
	Qty   int64
}

// ExecutionReport is the mutable outbound message populated by
// matching's responseBuilder, modeled on the field set spec.md §4.3
// requires (and structurally on the FIX-flavored ExecutionReport seen
// across the retrieval pack's FIX client code, minus wire encoding).
type ExecutionReport struct {
	ClOrdID   string
	OrderID   string
	ExecID    string
	ExecType  model.ExecType
	OrdStatus model.OrdStatus
	Side      model.Side
	Symbol    string
	Source    string
	CumQty    int64
	LeavesQty int64
	Fills     []Fill
}

func (*ExecutionReport) isOutboundMessage() {}

// NextFill appends one fill sub-record.
func (r *ExecutionReport) NextFill(price decimal.Decimal, qty int64) {
	r.Fills = append(r.Fills, Fill{Price: price, Qty: qty})
}

// OrderCancelReject is the mutable outbound message populated when a
// cancel cannot be satisfied (spec.md §4.3, §4.4).
type OrderCancelReject struct {
	ClOrdID      string
	OrderID      string // always "None" for this core (spec.md §4.3)
	CxlRejReason model.CxlRejReason
	OrdStatus    model.OrdStatus
	Source       string
}

func (*OrderCancelReject) isOutboundMessage() {}

// ResponseMessageFactory is the external collaborator mentioned in
// spec.md §6: "each get* call returns a fresh, mutable, independently
// owned message object." The matching core only ever calls these two
// methods; a real deployment would plug in a factory that also handles
// object pooling, wire pre-allocation, and the like.
type ResponseMessageFactory interface {
	NewExecutionReport() *ExecutionReport
	NewOrderCancelReject() *OrderCancelReject
}

// DefaultFactory is the plain, allocation-per-call implementation used
// when no pooling/wire concerns apply (tests, the cmd/ demos).
type DefaultFactory struct{}

func (DefaultFactory) NewExecutionReport() *ExecutionReport {
	return &ExecutionReport{}
}

func (DefaultFactory) NewOrderCancelReject() *OrderCancelReject {
	return &OrderCancelReject{}
}
