// Package dispatch is the transport-adjacent shell spec.md §1 and §5
// describe but place out of scope for the matching core itself: a
// single dispatch goroutine feeding a synchronous matching.Engine
// inbound messages in arrival order, and fanning its outbound messages
// back out. Grounded on teacher's matching/disruptor_semaphore_batch_safe.go
// and matching/trade_ringbuffer_batch_safe.go, generalized with Go
// generics into one type instead of two structurally-identical ones.
package dispatch

import (
	"sync/atomic"
	_ "unsafe" // for go:linkname
)

//go:linkname semacquire sync.runtime_Semacquire
func semacquire(s *uint32)

//go:linkname semrelease sync.runtime_Semrelease
func semrelease(s *uint32, handoff bool, skipframes int)

// Ring is a single-producer/single-consumer ring buffer of capacity
// (a power of two), synchronized purely with semaphores (no CAS on the
// hot path) exactly as teacher's RingBufferSemaphoreBatchSafe /
// TradeRingBufferBatchSafe do. Generic over element type, where teacher
// needed a dedicated type per element (*domain.Order vs *domain.Trade).
// Gateway uses it only for the inbound envelope stream; responses go back
// over each envelope's own reply channel.
type Ring[T any] struct {
	buffer     []T
	mask       int64
	writeSeq   atomic.Int64
	readSeq    atomic.Int64
	emptySlots uint32
	fullSlots  uint32
}

// NewRing creates a Ring of the given size, which must be a power of two.
func NewRing[T any](size int) *Ring[T] {
	if size&(size-1) != 0 {
		panic("dispatch: ring size must be a power of 2")
	}

	r := &Ring[T]{
		buffer: make([]T, size),
		mask:   int64(size - 1),
	}
	for i := 0; i < size; i++ {
		semrelease(&r.emptySlots, false, 0)
	}
	return r
}

// Publish appends v, blocking if the ring is full. Safe for exactly one
// producer goroutine at a time.
func (r *Ring[T]) Publish(v T) {
	semacquire(&r.emptySlots)

	seq := r.writeSeq.Add(1) - 1
	index := seq & r.mask
	r.buffer[index] = v

	semrelease(&r.fullSlots, false, 0)
}

// Consumer is a batch-caching reader over a Ring. Safe for exactly one
// consumer goroutine at a time.
type Consumer[T any] struct {
	r          *Ring[T]
	localCache [128]T
	cacheStart int
	cacheEnd   int
}

// NewConsumer creates a Consumer reading from r.
func NewConsumer[T any](r *Ring[T]) *Consumer[T] {
	return &Consumer[T]{r: r}
}

// Consume blocks until a value is available and returns it. Refills its
// local cache in batches of up to 128 to amortize semaphore overhead,
// exactly as teacher's fillCacheSafe does.
func (c *Consumer[T]) Consume() T {
	if c.cacheStart < c.cacheEnd {
		v := c.localCache[c.cacheStart]
		c.cacheStart++
		return v
	}
	c.fillCache()
	v := c.localCache[c.cacheStart]
	c.cacheStart++
	return v
}

func (c *Consumer[T]) fillCache() {
	r := c.r

	// First element: block until at least one is available.
	semacquire(&r.fullSlots)
	seq := r.readSeq.Add(1) - 1
	index := seq & r.mask
	c.localCache[0] = r.buffer[index]
	semrelease(&r.emptySlots, false, 0)
	acquired := 1

	const maxBatch = 128
	currentWrite := r.writeSeq.Load()
	currentRead := r.readSeq.Load()
	available := int(currentWrite - currentRead)
	if available > maxBatch-1 {
		available = maxBatch - 1
	}

	for i := 0; i < available; i++ {
		semacquire(&r.fullSlots)
		seq := r.readSeq.Add(1) - 1
		index := seq & r.mask
		c.localCache[acquired] = r.buffer[index]
		semrelease(&r.emptySlots, false, 0)
		acquired++
	}

	c.cacheStart = 0
	c.cacheEnd = acquired
}

// TryConsume is a non-blocking read for a caller that polls rather than
// dedicating a goroutine. Grounded on teacher's TradeConsumerBatchSafe.TryConsume/tryFillCache.
func (c *Consumer[T]) TryConsume() (T, bool) {
	var zero T
	if c.cacheStart < c.cacheEnd {
		v := c.localCache[c.cacheStart]
		c.cacheStart++
		return v, true
	}
	if !c.tryFillCache() {
		return zero, false
	}
	v := c.localCache[c.cacheStart]
	c.cacheStart++
	return v, true
}

func (c *Consumer[T]) tryFillCache() bool {
	r := c.r

	currentWrite := r.writeSeq.Load()
	currentRead := r.readSeq.Load()
	available := int(currentWrite - currentRead)
	if available == 0 {
		return false
	}

	const maxBatch = 128
	if available > maxBatch {
		available = maxBatch
	}

	acquired := 0
	for i := 0; i < available; i++ {
		slots := atomic.LoadUint32(&r.fullSlots)
		if slots == 0 {
			break
		}
		if !atomic.CompareAndSwapUint32(&r.fullSlots, slots, slots-1) {
			continue
		}
		seq := r.readSeq.Add(1) - 1
		index := seq & r.mask
		c.localCache[acquired] = r.buffer[index]
		semrelease(&r.emptySlots, false, 0)
		acquired++
	}

	if acquired == 0 {
		return false
	}
	c.cacheStart = 0
	c.cacheEnd = acquired
	return true
}
