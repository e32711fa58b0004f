package orderbook

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"matchcore/model"
)

func limitOrder(id, clOrdID, source string, side model.Side, price int64, qty int64, entry time.Time) *model.WorkingOrder {
	return model.NewWorkingOrder(id, clOrdID, source, "BTCUSDT", side, model.Limit, decimal.NewFromInt(price), qty, entry)
}

func TestAddOrderAndBestPrice(t *testing.T) {
	book := New("BTCUSDT")
	now := time.Unix(0, 0)

	sell := limitOrder("O1", "cl1", "user1", model.Sell, 50000, 100000000, now)
	if err := book.AddOrder(sell); err != nil {
		t.Fatalf("AddOrder: %v", err)
	}

	bestAsk, ok := book.BestAsk()
	if !ok || !bestAsk.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("expected best ask 50000, got %v (ok=%v)", bestAsk, ok)
	}

	buy := limitOrder("O2", "cl2", "user2", model.Buy, 49000, 100000000, now)
	if err := book.AddOrder(buy); err != nil {
		t.Fatalf("AddOrder: %v", err)
	}

	bestBid, ok := book.BestBid()
	if !ok || !bestBid.Equal(decimal.NewFromInt(49000)) {
		t.Errorf("expected best bid 49000, got %v (ok=%v)", bestBid, ok)
	}
}

func TestRemoveOrderClearsLevel(t *testing.T) {
	book := New("BTCUSDT")
	now := time.Unix(0, 0)

	order := limitOrder("O1", "cl1", "user1", model.Sell, 50000, 100000000, now)
	if err := book.AddOrder(order); err != nil {
		t.Fatalf("AddOrder: %v", err)
	}

	removed, ok := book.RemoveOrder(model.Sell, "cl1", "user1")
	if !ok || removed != order {
		t.Fatalf("expected RemoveOrder to return the order, got %v, %v", removed, ok)
	}

	if _, ok := book.BestAsk(); ok {
		t.Error("expected asks to be empty after removal")
	}
}

func TestRemoveOrderWrongSourceLeavesOrderResting(t *testing.T) {
	book := New("BTCUSDT")
	now := time.Unix(0, 0)

	order := limitOrder("O1", "cl1", "user1", model.Sell, 50000, 100000000, now)
	if err := book.AddOrder(order); err != nil {
		t.Fatalf("AddOrder: %v", err)
	}

	if _, ok := book.RemoveOrder(model.Sell, "cl1", "someone-else"); ok {
		t.Fatal("expected cancel from the wrong source to fail")
	}
	if _, ok := book.BestAsk(); !ok {
		t.Error("expected the order to still be resting")
	}
}

func TestPricePriority(t *testing.T) {
	book := New("BTCUSDT")
	now := time.Unix(0, 0)

	must := func(o *model.WorkingOrder) {
		if err := book.AddOrder(o); err != nil {
			t.Fatalf("AddOrder: %v", err)
		}
	}
	must(limitOrder("O1", "cl1", "u1", model.Sell, 51000, 100000000, now))
	must(limitOrder("O2", "cl2", "u2", model.Sell, 50000, 100000000, now)) // best
	must(limitOrder("O3", "cl3", "u3", model.Sell, 52000, 100000000, now))

	bestAsk, ok := book.BestAsk()
	if !ok || !bestAsk.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("expected best ask 50000, got %v", bestAsk)
	}
}

func TestFindMatchesMarketOrderSweepsAllEligibleLevels(t *testing.T) {
	book := New("BTCUSDT")
	now := time.Unix(0, 0)

	must := func(o *model.WorkingOrder) {
		if err := book.AddOrder(o); err != nil {
			t.Fatalf("AddOrder: %v", err)
		}
	}
	must(limitOrder("O1", "cl1", "u1", model.Sell, 50000, 10, now))
	must(limitOrder("O2", "cl2", "u2", model.Sell, 50100, 10, now))

	incoming := model.NewWorkingOrder("O3", "cl3", "u3", "BTCUSDT", model.Buy, model.Market, decimal.Zero, 100, now)
	matches := book.FindMatches(incoming)
	if len(matches) != 2 {
		t.Fatalf("expected 2 eligible resting orders, got %d", len(matches))
	}
	if matches[0].OrderID != "O1" {
		t.Errorf("expected best price level (O1) first, got %s", matches[0].OrderID)
	}
}

func TestFindMatchesLimitOrderRespectsPriceBound(t *testing.T) {
	book := New("BTCUSDT")
	now := time.Unix(0, 0)

	must := func(o *model.WorkingOrder) {
		if err := book.AddOrder(o); err != nil {
			t.Fatalf("AddOrder: %v", err)
		}
	}
	must(limitOrder("O1", "cl1", "u1", model.Sell, 50000, 10, now))
	must(limitOrder("O2", "cl2", "u2", model.Sell, 51000, 10, now)) // above incoming's limit

	incoming := limitOrder("O3", "cl3", "u3", model.Buy, 50000, 10, now)
	matches := book.FindMatches(incoming)
	if len(matches) != 1 || matches[0].OrderID != "O1" {
		t.Fatalf("expected only O1 eligible, got %v", matches)
	}
}

func TestTimePriorityWithinLevel(t *testing.T) {
	book := New("BTCUSDT")
	t0 := time.Unix(0, 0)
	t1 := t0.Add(time.Millisecond)

	first := limitOrder("O1", "cl1", "u1", model.Sell, 50000, 10, t0)
	second := limitOrder("O2", "cl2", "u2", model.Sell, 50000, 10, t1)
	if err := book.AddOrder(first); err != nil {
		t.Fatalf("AddOrder: %v", err)
	}
	if err := book.AddOrder(second); err != nil {
		t.Fatalf("AddOrder: %v", err)
	}

	incoming := model.NewWorkingOrder("O3", "cl3", "u3", "BTCUSDT", model.Buy, model.Market, decimal.Zero, 5, t1)
	matches := book.FindMatches(incoming)
	if len(matches) != 2 || matches[0].OrderID != "O1" {
		t.Fatalf("expected time priority to put O1 first, got %v", matches)
	}
}

func TestAddOrderRejectsMarketOrLeaveless(t *testing.T) {
	book := New("BTCUSDT")
	now := time.Unix(0, 0)

	market := model.NewWorkingOrder("O1", "cl1", "u1", "BTCUSDT", model.Buy, model.Market, decimal.Zero, 10, now)
	if err := book.AddOrder(market); err == nil {
		t.Error("expected AddOrder to reject a market order")
	}

	exhausted := limitOrder("O2", "cl2", "u2", model.Buy, 50000, 10, now)
	exhausted.Execute(10)
	if err := book.AddOrder(exhausted); err == nil {
		t.Error("expected AddOrder to reject an order with zero leaves qty")
	}
}
