package crack

import (
	"context"
	"fmt"
	"time"

	"vigcrack/internal/cipher"
	"vigcrack/internal/keyspace"
	"vigcrack/internal/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Run searches the whole key space for opts.KeyLength and returns every key
// whose decryption starts with a dictionary word. It always runs to
// exhaustion; ctx only aborts a run whose results can no longer be delivered.
func Run(ctx context.Context, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := logging.Get(logging.CategoryKeyspace).With(zap.String("run_id", runID))

	results := make(chan Pair, opts.BufferSize)
	collector := StartCollector(results)

	start := time.Now()
	keys, err := keyspace.New(cipher.Alphabet, opts.KeyLength)
	if err != nil {
		close(results)
		collector.Wait()
		return nil, fmt.Errorf("failed to build key space: %w", err)
	}
	keyGen := time.Since(start)
	log.Info("key space ready",
		zap.Uint64("keys", keys.Size()),
		zap.Int("key_length", opts.KeyLength),
		zap.Duration("elapsed", keyGen))
	if opts.OnGenerated != nil {
		opts.OnGenerated(keys.Size(), keyGen)
	}

	d := NewDispatcher(opts)
	d.log = d.log.With(zap.String("run_id", runID))
	dispatchErr := d.Dispatch(ctx, keys, results, collector.Done())

	// Every sender has returned; closing lets the collector finish draining.
	close(results)
	pairs := collector.Wait()

	if dispatchErr != nil {
		return nil, fmt.Errorf("crack run %s failed: %w", runID, dispatchErr)
	}

	return &Result{
		RunID:         runID,
		Ciphertext:    opts.Ciphertext,
		KeyLength:     opts.KeyLength,
		KeySpace:      keys.Size(),
		Tested:        d.Tested(),
		Pairs:         pairs,
		KeyGenElapsed: keyGen,
		Elapsed:       time.Since(start),
	}, nil
}
