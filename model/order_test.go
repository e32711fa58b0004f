package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestExecuteAccumulatesAndDrainsLeaves(t *testing.T) {
	o := NewWorkingOrder("O1", "C1", "U1", "ABC", Buy, Limit, decimal.NewFromInt(100), 10, time.Unix(0, 0))

	if err := o.Execute(4); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if o.CumQty() != 4 || o.LeavesQty() != 6 {
		t.Fatalf("unexpected quantities after partial fill: cumQty=%d leavesQty=%d", o.CumQty(), o.LeavesQty())
	}
	if o.Status() != PartiallyFilled {
		t.Errorf("expected PartiallyFilled, got %v", o.Status())
	}

	if err := o.Execute(6); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !o.IsFilled() {
		t.Error("expected order to be filled")
	}
	if o.Status() != Filled {
		t.Errorf("expected Filled, got %v", o.Status())
	}
}

func TestExecuteRejectsOverfill(t *testing.T) {
	o := NewWorkingOrder("O1", "C1", "U1", "ABC", Buy, Limit, decimal.NewFromInt(100), 10, time.Unix(0, 0))
	if err := o.Execute(11); err == nil {
		t.Error("expected Execute to reject a quantity exceeding leavesQty")
	}
}

func TestExecuteRejectsOnClosedOrder(t *testing.T) {
	o := NewWorkingOrder("O1", "C1", "U1", "ABC", Buy, Limit, decimal.NewFromInt(100), 10, time.Unix(0, 0))
	o.Close()
	if err := o.Execute(1); err == nil {
		t.Error("expected Execute to reject on a closed order")
	}
}

func TestStatusCanceledAfterPartialFill(t *testing.T) {
	o := NewWorkingOrder("O1", "C1", "U1", "ABC", Buy, Limit, decimal.NewFromInt(100), 10, time.Unix(0, 0))
	if err := o.Execute(4); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	o.Close()
	if o.Status() != Canceled {
		t.Errorf("expected Canceled regardless of partial fill, got %v", o.Status())
	}
}

func TestBetterThanPriceThenTimeThenID(t *testing.T) {
	t0 := time.Unix(0, 0)
	t1 := t0.Add(time.Millisecond)

	betterPriceBuy := NewWorkingOrder("O1", "C1", "U1", "ABC", Buy, Limit, decimal.NewFromInt(101), 10, t0)
	worsePriceBuy := NewWorkingOrder("O2", "C2", "U1", "ABC", Buy, Limit, decimal.NewFromInt(100), 10, t0)
	if !betterPriceBuy.BetterThan(worsePriceBuy, Buy) {
		t.Error("expected higher price to win priority on the buy side")
	}

	earlier := NewWorkingOrder("O3", "C3", "U1", "ABC", Sell, Limit, decimal.NewFromInt(100), 10, t0)
	later := NewWorkingOrder("O4", "C4", "U1", "ABC", Sell, Limit, decimal.NewFromInt(100), 10, t1)
	if !earlier.BetterThan(later, Sell) {
		t.Error("expected earlier entry time to win priority at equal price")
	}

	lowerID := NewWorkingOrder("O5", "C5", "U1", "ABC", Sell, Limit, decimal.NewFromInt(100), 10, t0)
	higherID := NewWorkingOrder("O6", "C6", "U1", "ABC", Sell, Limit, decimal.NewFromInt(100), 10, t0)
	if !lowerID.BetterThan(higherID, Sell) {
		t.Error("expected lower order id to win priority as the final tiebreak")
	}
}
