// Command benchmark drives matching.Engine.OnOrder directly in a tight
// loop and reports throughput. Adapted from teacher's cmd/benchmark:
// since the core is synchronous (spec.md §5), there is no producer
// goroutine pool or trade-consumer goroutine to benchmark around, just a
// single-threaded call loop.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"matchcore/clock"
	"matchcore/matching"
	"matchcore/messages"
	"matchcore/model"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	logger.Info().Dur("duration", 5*time.Second).Str("symbol", "BTCUSDT").Msg("starting benchmark")

	engine := matching.NewEngine(clock.System{}, matching.WithLogger(zerolog.Nop()))

	const testDuration = 5 * time.Second
	var orderCount, tradeCount int64

	start := time.Now()
	orderID := 0
	for time.Since(start) < testDuration {
		side := model.Buy
		price := int64(50000 + orderID%200)
		if orderID%2 != 0 {
			side = model.Sell
		}

		order := messages.NewOrderSingle{
			Symbol:   "BTCUSDT",
			Side:     side,
			OrdType:  model.Limit,
			Price:    decimal.NewFromInt(price),
			OrderQty: 1,
			ClOrdID:  fmt.Sprintf("bench-%d", orderID),
		}

		out, err := engine.OnOrder("bench-source", order)
		if err != nil {
			panic(err)
		}
		orderCount++
		for _, msg := range out {
			if report, ok := msg.(*messages.ExecutionReport); ok {
				tradeCount += int64(len(report.Fills))
			}
		}
		orderID++
	}

	elapsed := time.Since(start)
	qps := float64(orderCount) / elapsed.Seconds()
	tps := float64(tradeCount) / elapsed.Seconds()

	logger.Info().Int64("orders", orderCount).Int64("fills", tradeCount).Float64("orders_per_sec", qps).Msg("benchmark finished")

	fmt.Println("=== benchmark results ===")
	fmt.Printf("duration:      %v\n", elapsed)
	fmt.Printf("total orders:  %d\n", orderCount)
	fmt.Printf("total fills:   %d\n", tradeCount)
	fmt.Printf("order rate:    %.0f orders/sec\n", qps)
	fmt.Printf("fill rate:     %.0f fills/sec\n", tps)

	book, ok := engine.Book("BTCUSDT")
	if !ok {
		return
	}
	bestBid, hasBid := book.BestBid()
	bestAsk, hasAsk := book.BestAsk()
	fmt.Println("\n=== order book state ===")
	if hasBid {
		fmt.Printf("best bid: %s\n", bestBid.String())
	}
	if hasAsk {
		fmt.Printf("best ask: %s\n", bestAsk.String())
	}

	bids, asks := book.Depth(5)
	fmt.Println("\nbid depth (top 5):")
	for i, lvl := range bids {
		fmt.Printf("  %d. price: %s, volume: %d, orders: %d\n", i+1, lvl.Price.String(), lvl.Volume, lvl.Orders)
	}
	fmt.Println("\nask depth (top 5):")
	for i, lvl := range asks {
		fmt.Printf("  %d. price: %s, volume: %d, orders: %d\n", i+1, lvl.Price.String(), lvl.Volume, lvl.Orders)
	}
}
