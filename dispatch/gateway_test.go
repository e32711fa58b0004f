package dispatch

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"matchcore/clock"
	"matchcore/matching"
	"matchcore/messages"
	"matchcore/model"
)

func TestGatewaySubmitOrderRoundTrips(t *testing.T) {
	engine := matching.NewEngine(clock.NewManual(time.Unix(0, 0)))
	gw := NewGateway(engine, 16)
	gw.Start()
	defer gw.Stop()

	out, err := gw.SubmitOrder("U1", messages.NewOrderSingle{
		Symbol: "ABC", Side: model.Buy, OrdType: model.Limit,
		Price: decimal.NewFromInt(100), OrderQty: 10, ClOrdID: "C1",
	})
	if err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 report, got %d", len(out))
	}
	report, ok := out[0].(*messages.ExecutionReport)
	if !ok || report.OrdStatus != model.New {
		t.Fatalf("expected a New execution report, got %#v", out[0])
	}
}

func TestGatewaySubmitCancelRoundTrips(t *testing.T) {
	engine := matching.NewEngine(clock.NewManual(time.Unix(0, 0)))
	gw := NewGateway(engine, 16)
	gw.Start()
	defer gw.Stop()

	if _, err := gw.SubmitOrder("U1", messages.NewOrderSingle{
		Symbol: "ABC", Side: model.Buy, OrdType: model.Limit,
		Price: decimal.NewFromInt(100), OrderQty: 10, ClOrdID: "C1",
	}); err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}

	out := gw.SubmitCancel("U1", messages.OrderCancelRequest{Symbol: "ABC", Side: model.Buy, ClOrdID: "C1"})
	if len(out) != 1 {
		t.Fatalf("expected 1 report, got %d", len(out))
	}
	report, ok := out[0].(*messages.ExecutionReport)
	if !ok || report.OrdStatus != model.Canceled {
		t.Fatalf("expected a Canceled execution report, got %#v", out[0])
	}
}
