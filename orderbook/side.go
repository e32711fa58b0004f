package orderbook

import (
	"container/list"

	rbt "github.com/emirpasic/gods/v2/trees/redblacktree"
	"github.com/shopspring/decimal"

	"matchcore/model"
)

// side is one half (bids or asks) of a symbol's order book. Grounded on
// teacher's ShardedPriceTree (orderbook/price_tree_sharded.go): a
// red-black tree from github.com/emirpasic/gods/v2 keyed by price, with a
// side-specific comparator, minus the bucket-sharding layer (see
// DESIGN.md — decimal prices can't be bit-masked into fixed buckets the
// way teacher's int64 prices were).
type side struct {
	tree *rbt.Tree[decimal.Decimal, *level]
	// index speeds up RemoveOrder's (clOrdID, source) lookup: without it,
	// a cancel would need to walk every level on this side. Grounded on
	// teacher's flat `orders map[string]*domain.Order` in
	// orderbook/orderbook.go, reshaped to a multi-map because spec.md's
	// cancel key (clOrdID, source) is not unique the way teacher's
	// orderID is.
	index map[string][]*model.WorkingOrder
}

func newSide(buySide bool) *side {
	var cmp func(a, b decimal.Decimal) int
	if buySide {
		// Bids: higher price is better, so the tree's "ascending" order
		// (what Iterator/Left follow) is descending by price.
		cmp = func(a, b decimal.Decimal) int { return b.Cmp(a) }
	} else {
		cmp = func(a, b decimal.Decimal) int { return a.Cmp(b) }
	}
	return &side{
		tree:  rbt.NewWith[decimal.Decimal, *level](cmp),
		index: make(map[string][]*model.WorkingOrder),
	}
}

// insert adds a resting order into its price level, creating the level
// if this is the first order at that price.
func (s *side) insert(o *model.WorkingOrder) {
	lvl, found := s.tree.Get(o.Price)
	if !found {
		lvl = newLevel(o.Price)
		s.tree.Put(o.Price, lvl)
	}

	elem := lvl.orders.PushBack(o)
	o.RestingElement = elem
	o.RestingLevel = lvl
	lvl.volume += o.LeavesQty()

	s.index[o.ClOrdID] = append(s.index[o.ClOrdID], o)
}

// remove takes o out of its price level in O(1) using its stored
// back-pointers, and drops the level entirely once it's empty.
func (s *side) remove(o *model.WorkingOrder) {
	lvl, ok := o.RestingLevel.(*level)
	if !ok || lvl == nil {
		return
	}
	if elem, ok := o.RestingElement.(*list.Element); ok && elem != nil {
		lvl.orders.Remove(elem)
		lvl.volume -= o.LeavesQty()
	}
	o.RestingElement = nil
	o.RestingLevel = nil

	if lvl.orders.Len() == 0 {
		s.tree.Remove(lvl.price)
	}

	s.removeFromIndex(o)
}

func (s *side) removeFromIndex(o *model.WorkingOrder) {
	bucket := s.index[o.ClOrdID]
	for i, candidate := range bucket {
		if candidate == o {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(s.index, o.ClOrdID)
	} else {
		s.index[o.ClOrdID] = bucket
	}
}

// removeBestPriority finds every resting order matching (clOrdID,
// source), removes the one with the best book priority, and returns it.
// Resolves spec.md §9's open question in favor of best-priority removal.
func (s *side) removeBestPriority(clOrdID, source string, sideEnum model.Side) (*model.WorkingOrder, bool) {
	candidates := s.index[clOrdID]
	var best *model.WorkingOrder
	for _, candidate := range candidates {
		if candidate.Source != source {
			continue
		}
		if best == nil || candidate.BetterThan(best, sideEnum) {
			best = candidate
		}
	}
	if best == nil {
		return nil, false
	}
	s.remove(best)
	return best, true
}

// bestPrice returns the best resting price on this side and whether the
// side is non-empty.
func (s *side) bestPrice() (decimal.Decimal, bool) {
	node := s.tree.Left()
	if node == nil {
		return decimal.Zero, false
	}
	return node.Value.price, true
}

// depth returns up to maxLevels price levels, best first.
func (s *side) depth(maxLevels int) []DepthLevel {
	if maxLevels <= 0 {
		return nil
	}
	out := make([]DepthLevel, 0, maxLevels)
	it := s.tree.Iterator()
	for it.Next() && len(out) < maxLevels {
		lvl := it.Value()
		// Sum leaves quantities here: resting orders are partially filled
		// through WorkingOrder.Execute, which never touches lvl.volume.
		var volume int64
		for e := lvl.orders.Front(); e != nil; e = e.Next() {
			volume += e.Value.(*model.WorkingOrder).LeavesQty()
		}
		out = append(out, DepthLevel{Price: lvl.price, Volume: volume, Orders: lvl.orders.Len()})
	}
	return out
}

// eligible appends every resting order across levels that satisfy pred,
// stopping at the first ineligible level: levels are visited best-first,
// and eligibility is monotone in price, so once a level fails pred every
// worse level fails it too.
func (s *side) eligible(pred func(levelPrice decimal.Decimal) bool) []*model.WorkingOrder {
	var out []*model.WorkingOrder
	it := s.tree.Iterator()
	for it.Next() {
		lvl := it.Value()
		if !pred(lvl.price) {
			break
		}
		for e := lvl.orders.Front(); e != nil; e = e.Next() {
			out = append(out, e.Value.(*model.WorkingOrder))
		}
	}
	return out
}
