// Package orderbook implements the per-symbol priority book: price/time
// ordered bids and asks, add/remove of resting orders, and the eligible
// counter-side match lookup the matching engine drains. Grounded on
// teacher's orderbook package (orderbook.go, price_tree*.go).
package orderbook

import (
	"github.com/shopspring/decimal"

	"matchcore/errs"
	"matchcore/model"
)

// Book is the order book for one symbol: two priority-ordered sides.
// Grounded on teacher's OrderBook (orderbook/orderbook.go).
type Book struct {
	Symbol string
	bids   *side
	asks   *side
}

// New creates an empty book for symbol.
func New(symbol string) *Book {
	return &Book{
		Symbol: symbol,
		bids:   newSide(true),
		asks:   newSide(false),
	}
}

func (b *Book) sideFor(s model.Side) *side {
	if s == model.Buy {
		return b.bids
	}
	return b.asks
}

// AddOrder rests o on its side. Precondition (spec.md §4.2): o is Limit,
// o.LeavesQty() > 0, and o.Open().
func (b *Book) AddOrder(o *model.WorkingOrder) error {
	if o.OrdType != model.Limit || o.LeavesQty() <= 0 || !o.Open() {
		return errs.Wrap(errs.ErrInvalidState, "addOrder precondition violated for order "+o.OrderID)
	}
	b.sideFor(o.Side).insert(o)
	return nil
}

// RemoveOrder removes and returns the open order on side whose
// (clOrdID, source) matches, picking the best-priority match if more
// than one open order qualifies (spec.md §4.2).
func (b *Book) RemoveOrder(s model.Side, clOrdID, source string) (*model.WorkingOrder, bool) {
	return b.sideFor(s).removeBestPriority(clOrdID, source, s)
}

// Remove takes a resting order out of the book directly, used by the
// matching engine once a resting order's leaves quantity reaches zero
// during a match (spec.md §4.5 step 4f).
func (b *Book) Remove(o *model.WorkingOrder) {
	b.sideFor(o.Side).remove(o)
}

// FindMatches returns the resting orders on the opposite side eligible to
// trade against incoming, in execution order (spec.md §4.2): best price
// first, then earliest entry time within a price. The result is a
// snapshot — removal happens via Remove, called by the engine as it
// drains each returned order's leaves quantity to zero (spec.md §4.2's
// "live, ordered view ... plus a back-reference callback" alternative).
func (b *Book) FindMatches(incoming *model.WorkingOrder) []*model.WorkingOrder {
	opposite := b.sideFor(incoming.Side.Opposite())

	if incoming.OrdType == model.Market {
		return opposite.eligible(func(decimal.Decimal) bool { return true })
	}

	if incoming.Side == model.Buy {
		// incoming Buy limit sweeps asks priced at or below its limit.
		return opposite.eligible(func(askPrice decimal.Decimal) bool {
			return askPrice.Cmp(incoming.Price) <= 0
		})
	}
	// incoming Sell limit sweeps bids priced at or above its limit.
	return opposite.eligible(func(bidPrice decimal.Decimal) bool {
		return bidPrice.Cmp(incoming.Price) >= 0
	})
}

// BestBid returns the best resting bid price, or (zero, false) if empty.
func (b *Book) BestBid() (decimal.Decimal, bool) { return b.bids.bestPrice() }

// BestAsk returns the best resting ask price, or (zero, false) if empty.
func (b *Book) BestAsk() (decimal.Decimal, bool) { return b.asks.bestPrice() }

// Depth returns up to levels price levels per side, best first. Kept
// from teacher's OrderBook.GetDepth — spec.md §5 permits a read-only
// inspection view of the book, and the teacher treats depth as a
// first-class responsibility.
func (b *Book) Depth(levels int) (bids, asks []DepthLevel) {
	return b.bids.depth(levels), b.asks.depth(levels)
}
