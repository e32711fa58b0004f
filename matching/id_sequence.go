package matching

import (
	"strconv"
	"strings"
	"sync"
)

// idSequence generates the engine's monotone, pre-incremented "<prefix><n>"
// identifiers (spec.md §4.3/§9: orderId uses "O<n>", execId uses "E<n>",
// first emitted value is <prefix>1). Grounded on teacher's IDGenerator
// (matching/id_generator.go): strings.Builder + sync.Pool instead of
// fmt.Sprintf, strconv instead of fmt for the number itself. The engine
// is single-threaded per spec.md §5, so the counter itself needs no
// atomic operations; only the builder pool is kept from teacher's design.
type idSequence struct {
	prefix      string
	counter     uint32
	builderPool sync.Pool
}

func newIDSequence(prefix string) *idSequence {
	return &idSequence{
		prefix: prefix,
		builderPool: sync.Pool{
			New: func() any {
				b := &strings.Builder{}
				b.Grow(16)
				return b
			},
		},
	}
}

// next pre-increments the counter and formats "<prefix><n>".
func (g *idSequence) next() string {
	g.counter++

	b := g.builderPool.Get().(*strings.Builder)
	defer func() {
		b.Reset()
		g.builderPool.Put(b)
	}()

	b.WriteString(g.prefix)
	b.WriteString(strconv.FormatUint(uint64(g.counter), 10))
	return b.String()
}
