package dispatch

import (
	"runtime"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"matchcore/matching"
	"matchcore/messages"
)

// inboundEnvelope carries exactly one of order/cancel plus the channel
// the dispatch goroutine replies on. Exactly one producer populates
// order xor cancel; Gateway itself guarantees that invariant.
type inboundEnvelope struct {
	source string
	order  *messages.NewOrderSingle
	cancel *messages.OrderCancelRequest
	result chan envelopeResult
}

type envelopeResult struct {
	out []messages.OutboundMessage
	err error
}

// Gateway is the single dispatch thread spec.md §5 describes feeding a
// synchronous matching.Engine inbound messages in arrival order.
// Grounded on teacher's MatchingEngine.Start/SubmitOrder: one goroutine
// locked to its OS thread, draining a Ring via batch Consume, except
// here it wraps a multi-symbol Engine directly instead of one
// MatchingEngine per symbol, since matching.Engine already dispatches on
// symbol internally (see DESIGN.md).
type Gateway struct {
	engine   *matching.Engine
	inbound  *Ring[*inboundEnvelope]
	consumer *Consumer[*inboundEnvelope]
	done     chan struct{}
	logger   zerolog.Logger
}

// GatewayOption configures a Gateway at construction.
type GatewayOption func(*Gateway)

// WithGatewayLogger overrides the default global zerolog logger.
func WithGatewayLogger(l zerolog.Logger) GatewayOption {
	return func(g *Gateway) { g.logger = l }
}

// NewGateway wraps engine with a dispatch goroutine fed through a ring
// buffer of the given size (must be a power of two).
func NewGateway(engine *matching.Engine, ringSize int, opts ...GatewayOption) *Gateway {
	ring := NewRing[*inboundEnvelope](ringSize)
	g := &Gateway{
		engine:   engine,
		inbound:  ring,
		consumer: NewConsumer(ring),
		done:     make(chan struct{}),
		logger:   zlog.Logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Start launches the dispatch goroutine. Call Stop to shut it down.
func (g *Gateway) Start() {
	go g.run()
}

func (g *Gateway) run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(g.done)

	for {
		env := g.consumer.Consume()
		if env == nil {
			return // poison value pushed by Stop
		}
		if env.order != nil {
			out, err := g.engine.OnOrder(env.source, *env.order)
			env.result <- envelopeResult{out: out, err: err}
			continue
		}
		out := g.engine.OnCancelRequest(env.source, *env.cancel)
		env.result <- envelopeResult{out: out}
	}
}

// Stop pushes a poison value through the ring so the dispatch goroutine
// exits after draining everything published ahead of it, then waits for
// it to do so.
func (g *Gateway) Stop() {
	g.inbound.Publish(nil)
	<-g.done
}

// SubmitOrder enqueues order for dispatch and blocks for its response
// sequence, preserving spec.md §5's "runs to completion synchronously"
// contract from the submitter's point of view even though the work now
// happens on the dispatch goroutine.
func (g *Gateway) SubmitOrder(source string, order messages.NewOrderSingle) ([]messages.OutboundMessage, error) {
	env := &inboundEnvelope{source: source, order: &order, result: make(chan envelopeResult, 1)}
	g.inbound.Publish(env)
	res := <-env.result
	return res.out, res.err
}

// SubmitCancel enqueues cancel for dispatch and blocks for its response.
func (g *Gateway) SubmitCancel(source string, cancel messages.OrderCancelRequest) []messages.OutboundMessage {
	env := &inboundEnvelope{source: source, cancel: &cancel, result: make(chan envelopeResult, 1)}
	g.inbound.Publish(env)
	res := <-env.result
	return res.out
}
