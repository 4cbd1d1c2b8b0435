package crack

import (
	"context"
	"fmt"

	"vigcrack/internal/logging"

	"go.uber.org/zap"
)

// Collector drains the result channel into a slice it alone writes to.
// The slice is handed out by Wait once the channel is closed and empty.
type Collector struct {
	done  chan struct{}
	pairs []Pair
}

// StartCollector starts the collector goroutine reading from in.
func StartCollector(in <-chan Pair) *Collector {
	c := &Collector{done: make(chan struct{})}
	go c.run(in)
	return c
}

func (c *Collector) run(in <-chan Pair) {
	defer close(c.done)
	log := logging.Get(logging.CategoryCollector)
	for p := range in {
		c.pairs = append(c.pairs, p)
		log.Debug("result collected", zap.String("key", p.Key), zap.Int("total", len(c.pairs)))
	}
	log.Debug("result channel drained", zap.Int("total", len(c.pairs)))
}

// Done is closed when the collector goroutine has exited.
func (c *Collector) Done() <-chan struct{} { return c.done }

// Wait blocks until the collector exits and returns the pairs in arrival order.
func (c *Collector) Wait() []Pair {
	<-c.done
	return c.pairs
}

// send delivers p to out, blocking while the channel is full. It fails if
// the collector has exited or ctx is cancelled first.
func send(ctx context.Context, out chan<- Pair, stopped <-chan struct{}, p Pair) error {
	select {
	case out <- p:
		return nil
	case <-stopped:
		return fmt.Errorf("%w: dropping key %s", ErrCollectorStopped, p.Key)
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrCollectorStopped, ctx.Err())
	}
}
