package crack

import (
	"context"
	"fmt"
	"sync/atomic"

	"vigcrack/internal/cipher"
	"vigcrack/internal/keyspace"
	"vigcrack/internal/logging"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Dispatcher drives candidate keys through DecryptFirstWord.
//
// Keys are pulled from the enumerator in batches of batchSize. Each batch
// gets its own goroutine and every key inside it is validated in its own
// goroutine. At most workers batches are in flight, so no more than
// workers*batchSize validations exist at any time.
type Dispatcher struct {
	ciphertext      string
	firstWordLength int
	words           cipher.Lookup
	workers         int
	batchSize       int
	progress        func(keys int)

	tested   atomic.Uint64
	accepted atomic.Uint64
	log      *zap.Logger
}

// NewDispatcher creates a Dispatcher from opts. opts must already carry defaults.
func NewDispatcher(opts Options) *Dispatcher {
	return &Dispatcher{
		ciphertext:      opts.Ciphertext,
		firstWordLength: opts.FirstWordLength,
		words:           opts.Words,
		workers:         opts.Workers,
		batchSize:       opts.BatchSize,
		progress:        opts.Progress,
		log:             logging.Get(logging.CategoryDispatch),
	}
}

// Tested is the number of keys validated so far.
func (d *Dispatcher) Tested() uint64 { return d.tested.Load() }

// Accepted is the number of keys that passed validation so far.
func (d *Dispatcher) Accepted() uint64 { return d.accepted.Load() }

// Dispatch validates every key left in keys and sends each accepted pair to
// out. It returns once all batches have finished. Errors wrap
// ErrCollectorStopped: a send failed, or ctx ended before the keys ran out.
func (d *Dispatcher) Dispatch(ctx context.Context, keys *keyspace.Enumerator, out chan<- Pair, stopped <-chan struct{}) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	batches := 0
	for gctx.Err() == nil {
		batch := keys.Batch(d.batchSize)
		if len(batch) == 0 {
			break
		}
		batches++
		g.Go(func() error {
			return d.runBatch(gctx, batch, out, stopped)
		})
	}

	if err := g.Wait(); err != nil {
		d.log.Error("dispatch aborted",
			zap.Error(err),
			zap.Uint64("tested", d.Tested()),
			zap.Uint64("accepted", d.Accepted()))
		return err
	}
	if err := ctx.Err(); err != nil && keys.Remaining() > 0 {
		return fmt.Errorf("%w: interrupted with %d keys left: %w", ErrCollectorStopped, keys.Remaining(), err)
	}

	d.log.Info("dispatch complete",
		zap.Int("batches", batches),
		zap.Uint64("tested", d.Tested()),
		zap.Uint64("accepted", d.Accepted()))
	return nil
}

func (d *Dispatcher) runBatch(ctx context.Context, batch []string, out chan<- Pair, stopped <-chan struct{}) error {
	var g errgroup.Group
	for _, key := range batch {
		key := key
		g.Go(func() error {
			plaintext, ok := cipher.DecryptFirstWord(key, d.ciphertext, d.firstWordLength, d.words)
			d.tested.Add(1)
			if !ok {
				return nil
			}
			d.accepted.Add(1)
			d.log.Debug("candidate accepted", zap.String("key", key))
			return send(ctx, out, stopped, Pair{Key: key, Plaintext: plaintext})
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if d.progress != nil {
		d.progress(len(batch))
	}
	return nil
}
