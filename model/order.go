package model

import (
	"time"

	"github.com/shopspring/decimal"

	"matchcore/errs"
)

// WorkingOrder is the central entity of the matching core: the engine's
// view of one inbound order from acceptance through its terminal state.
// Identity (OrderID) and entry time are assigned once at construction and
// never change afterward; quantities only ever move in the direction
// execute() drives them (cumQty up, leavesQty down) until the order is
// closed.
type WorkingOrder struct {
	OrderID  string // engine-assigned, "O<n>"
	ClOrdID  string // client-assigned, opaque
	Source   string // originator identity, opaque
	Symbol   string
	Side     Side
	OrdType  OrdType
	Price    decimal.Decimal // meaningful only when OrdType == Limit

	orderQty  int64
	cumQty    int64
	leavesQty int64

	entryTime time.Time
	open      bool

	// RestingElement/RestingLevel are set by the orderbook package while
	// an order is resting, giving O(1) removal from its price level's
	// FIFO queue. Nil when the order is not currently resting. Typed as
	// interface{} and exported for the same reason teacher's
	// domain.Order.ListElement is: orderbook lives in a different package
	// and casts them back to its own *list.Element / *level types.
	RestingElement interface{}
	RestingLevel   interface{}
}

// NewWorkingOrder snapshots an inbound order into a fresh WorkingOrder.
// orderID and entryTime are assigned by the caller (matching.Engine),
// which owns the sequence counter and the clock.
func NewWorkingOrder(orderID, clOrdID, source, symbol string, side Side, ordType OrdType, price decimal.Decimal, orderQty int64, entryTime time.Time) *WorkingOrder {
	return &WorkingOrder{
		OrderID:   orderID,
		ClOrdID:   clOrdID,
		Source:    source,
		Symbol:    symbol,
		Side:      side,
		OrdType:   ordType,
		Price:     price,
		orderQty:  orderQty,
		cumQty:    0,
		leavesQty: orderQty,
		entryTime: entryTime,
		open:      true,
	}
}

func (o *WorkingOrder) OrderQty() int64     { return o.orderQty }
func (o *WorkingOrder) CumQty() int64       { return o.cumQty }
func (o *WorkingOrder) LeavesQty() int64    { return o.leavesQty }
func (o *WorkingOrder) EntryTime() time.Time { return o.entryTime }
func (o *WorkingOrder) Open() bool          { return o.open }

// IsFilled reports whether the order has no leaves quantity left.
func (o *WorkingOrder) IsFilled() bool {
	return o.leavesQty == 0
}

// Execute applies a fill of qty against this order.
// Precondition: open && 0 < qty <= leavesQty (spec.md §4.1).
func (o *WorkingOrder) Execute(qty int64) error {
	if !o.open {
		return errs.Wrap(errs.ErrInvalidState, "execute on closed order "+o.OrderID)
	}
	if qty <= 0 || qty > o.leavesQty {
		return errs.Wrap(errs.ErrInvalidState, "execute quantity out of range for order "+o.OrderID)
	}
	o.cumQty += qty
	o.leavesQty -= qty
	return nil
}

// Close flips open to false. The engine never calls this twice on the
// same order.
func (o *WorkingOrder) Close() {
	o.open = false
}

// Status derives the current OrdStatus from cumQty/leavesQty/open. This
// is a pure function of state, not stored, so it can never drift from the
// invariant cumQty+leavesQty==orderQty.
func (o *WorkingOrder) Status() OrdStatus {
	switch {
	case !o.open && o.leavesQty > 0:
		return Canceled
	case o.leavesQty == 0:
		return Filled
	case o.cumQty == 0:
		return New
	default:
		return PartiallyFilled
	}
}

// BetterThan reports whether o has strictly better book priority than
// other on the given side: better price first, then earlier entry time,
// then lower OrderID (spec.md §3). Both orders must be on the same side.
func (o *WorkingOrder) BetterThan(other *WorkingOrder, side Side) bool {
	cmp := o.Price.Cmp(other.Price)
	if cmp != 0 {
		if side == Buy {
			return cmp > 0
		}
		return cmp < 0
	}
	if !o.entryTime.Equal(other.entryTime) {
		return o.entryTime.Before(other.entryTime)
	}
	return o.OrderID < other.OrderID
}
