package orderbook

import (
	"container/list"

	"github.com/shopspring/decimal"
)

// level holds every currently resting order at one price, in arrival
// (time-priority) order. Grounded on teacher's PriceLevel_
// (orderbook/price_tree.go), minus the NextPrice/PrevPrice linked-list
// pointers: those existed so teacher could walk price levels in sorted
// order without re-consulting its tree; here the red-black tree's own
// Iterator already yields levels in sorted order, so a second, parallel
// linked list of levels would just be redundant bookkeeping.
type level struct {
	price  decimal.Decimal
	orders *list.List // FIFO of *model.WorkingOrder
	volume int64
}

func newLevel(price decimal.Decimal) *level {
	return &level{price: price, orders: list.New()}
}

// DepthLevel is the read-only view of one price level, returned by
// Book.Depth. Grounded on teacher's exported PriceLevel (orderbook/orderbook.go).
type DepthLevel struct {
	Price  decimal.Decimal
	Volume int64
	Orders int
}
