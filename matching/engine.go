// Package matching implements the top-level dispatcher of spec.md §4.4/
// §4.5: Engine owns the map of symbol to orderbook.Book, the order/
// execution sequence counters, and the injected clock, and turns each
// inbound NewOrderSingle/OrderCancelRequest into a fully materialized
// sequence of outbound messages. Grounded on teacher's MatchingEngine +
// ExchangeEngine (matching/engine.go), collapsed to a single synchronous
// type per spec.md §5 — see DESIGN.md for what that drops and where it
// went instead.
package matching

import (
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"matchcore/clock"
	"matchcore/errs"
	"matchcore/messages"
	"matchcore/model"
	"matchcore/orderbook"
)

// Engine is the matching core: single-threaded, synchronous, and safe to
// call directly with no goroutines at all (spec.md §5). Concurrent
// callers must serialize externally. dispatch.Gateway runs the engine on
// one dispatch goroutine, but its Submit*/Stop methods publish into a
// single-producer ring and are not safe to call from several goroutines
// at once.
type Engine struct {
	books     map[string]*orderbook.Book
	orderIDs  *idSequence
	responses responseBuilder
	clock     clock.Clock
	logger    zerolog.Logger
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithLogger overrides the default global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithFactory overrides the default message factory (messages.DefaultFactory).
func WithFactory(f messages.ResponseMessageFactory) Option {
	return func(e *Engine) { e.responses.factory = f }
}

// NewEngine builds an Engine around the given clock. Production code
// injects clock.System{}; tests inject clock.Manual.
func NewEngine(c clock.Clock, opts ...Option) *Engine {
	e := &Engine{
		books:    make(map[string]*orderbook.Book),
		orderIDs: newIDSequence("O"),
		responses: responseBuilder{
			factory: messages.DefaultFactory{},
			execIDs: newIDSequence("E"),
		},
		clock:  c,
		logger: zlog.Logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Book returns the order book for symbol and whether one has been
// created yet. Read-only, for inspection and tests (spec.md §5).
func (e *Engine) Book(symbol string) (*orderbook.Book, bool) {
	b, ok := e.books[symbol]
	return b, ok
}

func (e *Engine) bookFor(symbol string) *orderbook.Book {
	b, ok := e.books[symbol]
	if !ok {
		b = orderbook.New(symbol)
		e.books[symbol] = b
	}
	return b
}

// OnOrder implements spec.md §4.5. It validates the inbound order,
// matches it against the resting book, optionally rests the residue, and
// returns one execution per fill plus a terminal execution for the
// incoming order. Returns an error (never a partial mutation) if the
// order is malformed — spec.md §7 treats this as a programmer error, not
// a domain reject.
func (e *Engine) OnOrder(source string, order messages.NewOrderSingle) ([]messages.OutboundMessage, error) {
	if order.OrderQty <= 0 {
		return nil, errs.Wrap(errs.ErrInvalidOrder, "orderQty must be positive")
	}
	if order.OrdType == model.Limit && order.Price.Sign() <= 0 {
		return nil, errs.Wrap(errs.ErrInvalidOrder, "limit order requires a positive price")
	}

	book := e.bookFor(order.Symbol)
	wo := model.NewWorkingOrder(e.orderIDs.next(), order.ClOrdID, source, order.Symbol, order.Side, order.OrdType, order.Price, order.OrderQty, e.clock.Instant())

	e.logger.Debug().
		Str("symbol", wo.Symbol).
		Str("order_id", wo.OrderID).
		Str("cl_ord_id", wo.ClOrdID).
		Str("side", wo.Side.String()).
		Str("ord_type", wo.OrdType.String()).
		Msg("order received")

	matches := book.FindMatches(wo)

	var out []messages.OutboundMessage
	var fillPxs []decimal.Decimal
	var fillQtys []int64

	for _, rest := range matches {
		if wo.LeavesQty() == 0 {
			break
		}

		fillQty := min(wo.LeavesQty(), rest.LeavesQty())
		fillPx := rest.Price // spec.md §4.5: fill price is always the resting order's price

		if err := rest.Execute(fillQty); err != nil {
			return nil, err
		}
		if err := wo.Execute(fillQty); err != nil {
			return nil, err
		}

		fillPxs = append(fillPxs, fillPx)
		fillQtys = append(fillQtys, fillQty)

		restStatus := model.PartiallyFilled
		if rest.LeavesQty() == 0 {
			restStatus = model.Filled
		}
		out = append(out, e.responses.executionReportTrade(rest, []decimal.Decimal{fillPx}, []int64{fillQty}, restStatus))

		e.logger.Debug().
			Str("symbol", wo.Symbol).
			Str("resting_order_id", rest.OrderID).
			Str("incoming_order_id", wo.OrderID).
			Str("fill_px", fillPx.String()).
			Int64("fill_qty", fillQty).
			Msg("fill executed")

		if rest.LeavesQty() == 0 {
			book.Remove(rest)
		}
	}

	switch {
	case wo.LeavesQty() > 0 && wo.OrdType == model.Limit:
		if err := book.AddOrder(wo); err != nil {
			return nil, err
		}
		status := model.New
		if wo.CumQty() > 0 {
			status = model.PartiallyFilled
		}
		out = append(out, e.responses.executionReportTrade(wo, fillPxs, fillQtys, status))

	case wo.LeavesQty() > 0 && wo.OrdType == model.Market:
		wo.Close()
		out = append(out, e.responses.executionReportTrade(wo, fillPxs, fillQtys, model.Canceled))
		e.logger.Debug().Str("order_id", wo.OrderID).Msg("market order residue canceled, no resting liquidity")

	default: // leavesQty == 0
		out = append(out, e.responses.executionReportTrade(wo, fillPxs, fillQtys, model.Filled))
	}

	return out, nil
}

// OnCancelRequest implements spec.md §4.4. It always returns exactly one
// message: an ExecutionReport(Canceled) if a matching resting order was
// found, or an OrderCancelReject(UnknownOrder) otherwise.
func (e *Engine) OnCancelRequest(source string, cancel messages.OrderCancelRequest) []messages.OutboundMessage {
	book, ok := e.books[cancel.Symbol]
	if !ok {
		e.logger.Debug().Str("symbol", cancel.Symbol).Str("cl_ord_id", cancel.ClOrdID).Msg("cancel rejected: unknown symbol")
		return []messages.OutboundMessage{e.responses.cancelReject(source, cancel)}
	}

	order, found := book.RemoveOrder(cancel.Side, cancel.ClOrdID, source)
	if !found {
		e.logger.Debug().Str("symbol", cancel.Symbol).Str("cl_ord_id", cancel.ClOrdID).Msg("cancel rejected: unknown order")
		return []messages.OutboundMessage{e.responses.cancelReject(source, cancel)}
	}

	order.Close()
	e.logger.Debug().Str("symbol", cancel.Symbol).Str("order_id", order.OrderID).Str("cl_ord_id", cancel.ClOrdID).Msg("order canceled")
	return []messages.OutboundMessage{e.responses.executionReportCanceled(source, order)}
}
