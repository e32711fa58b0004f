// Command profile runs the same synchronous call loop as cmd/benchmark
// under a CPU profiler. Adapted from teacher's cmd/profile: the
// multi-goroutine producer/consumer rig is gone along with the
// goroutine-based engine it profiled (spec.md §5 — the core is
// single-threaded), so the profile now isolates OnOrder/matching cost
// directly.
package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/shopspring/decimal"

	"matchcore/clock"
	"matchcore/matching"
	"matchcore/messages"
	"matchcore/model"
)

func main() {
	cpuFile, err := os.Create("cpu.prof")
	if err != nil {
		panic(err)
	}
	defer cpuFile.Close()

	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		panic(err)
	}
	defer pprof.StopCPUProfile()

	fmt.Println("=== profiling started ===")
	fmt.Println("writing CPU profile to cpu.prof")

	engine := matching.NewEngine(clock.System{})

	const duration = 10 * time.Second
	var orderCount, tradeCount int64

	start := time.Now()
	orderID := 0
	for time.Since(start) < duration {
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
			ClOrdID:  fmt.Sprintf("profile-%d", orderID),
		}

		out, err := engine.OnOrder("profile-source", order)
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
	fmt.Println("\n=== profile results ===")
	fmt.Printf("total orders: %d\n", orderCount)
	fmt.Printf("total fills:  %d\n", tradeCount)
	fmt.Printf("order rate:   %.0f orders/sec\n", float64(orderCount)/elapsed.Seconds())
	fmt.Printf("fill rate:    %.0f fills/sec\n", float64(tradeCount)/elapsed.Seconds())

	fmt.Println("\nanalyze with:")
	fmt.Println("  go tool pprof -http=:8080 cpu.prof")
	fmt.Println("  or: go tool pprof cpu.prof, then: top10")
}
