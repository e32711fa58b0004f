// Command gateway wires a matching.Engine behind a dispatch.Gateway and
// submits a couple of example orders, logging the resulting executions.
// Adapted from teacher's root main.go demo: matching.ExchangeEngine +
// fmt.Println is replaced with dispatch.Gateway + zerolog.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"matchcore/clock"
	"matchcore/dispatch"
	"matchcore/matching"
	"matchcore/messages"
	"matchcore/model"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	engine := matching.NewEngine(clock.System{}, matching.WithLogger(logger))
	gw := dispatch.NewGateway(engine, 1024, dispatch.WithGatewayLogger(logger))
	gw.Start()
	defer gw.Stop()

	logger.Info().Msg("gateway started")

	sell := messages.NewOrderSingle{
		Symbol:   "BTCUSDT",
		Side:     model.Sell,
		OrdType:  model.Limit,
		Price:    decimal.NewFromInt(50000),
		OrderQty: 100000000,
		ClOrdID:  "client-order-1",
	}
	out, err := gw.SubmitOrder("user-1", sell)
	if err != nil {
		logger.Error().Err(err).Msg("sell order rejected")
	}
	logReports(logger, out)

	buy := messages.NewOrderSingle{
		Symbol:   "BTCUSDT",
		Side:     model.Buy,
		OrdType:  model.Limit,
		Price:    decimal.NewFromInt(50000),
		OrderQty: 50000000,
		ClOrdID:  "client-order-2",
	}
	out, err = gw.SubmitOrder("user-2", buy)
	if err != nil {
		logger.Error().Err(err).Msg("buy order rejected")
	}
	logReports(logger, out)

	time.Sleep(10 * time.Millisecond)
}

func logReports(logger zerolog.Logger, out []messages.OutboundMessage) {
	for _, msg := range out {
		switch m := msg.(type) {
		case *messages.ExecutionReport:
			logger.Info().
				Str("cl_ord_id", m.ClOrdID).
				Str("order_id", m.OrderID).
				Str("exec_type", m.ExecType.String()).
				Str("ord_status", m.OrdStatus.String()).
				Int64("cum_qty", m.CumQty).
				Int64("leaves_qty", m.LeavesQty).
				Int("fills", len(m.Fills)).
				Msg("execution report")
		case *messages.OrderCancelReject:
			logger.Info().
				Str("cl_ord_id", m.ClOrdID).
				Str("reason", m.CxlRejReason.String()).
				Msg("order cancel reject")
		}
	}
}
