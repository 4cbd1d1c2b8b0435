// Package crack runs the exhaustive key search: keys are generated lazily,
// fanned out in batches to concurrent validators, and every accepted
// (key, plaintext) pair is handed through a small channel to a single
// collector goroutine.
package crack

import (
	"errors"
	"fmt"
	"time"

	"vigcrack/internal/cipher"
)

const (
	// DefaultWorkers bounds the number of batches validated at once.
	DefaultWorkers = 16
	// DefaultBatchSize is the number of keys handed to one batch goroutine.
	DefaultBatchSize = 64
	// DefaultBufferSize is the capacity of the result channel.
	DefaultBufferSize = 1
)

var (
	// ErrCollectorStopped is returned when a result cannot be delivered
	// because the collector is gone or the run was cancelled.
	ErrCollectorStopped = errors.New("result collector stopped")
	// ErrInvalidOptions wraps every Options validation failure.
	ErrInvalidOptions = errors.New("invalid crack options")
)

// Pair is one accepted candidate.
type Pair struct {
	Key       string `json:"key" yaml:"key"`
	Plaintext string `json:"plaintext" yaml:"plaintext"`
}

// Options configures a Run. Zero Workers, BatchSize and BufferSize take the defaults.
type Options struct {
	Ciphertext      string
	KeyLength       int
	FirstWordLength int
	Words           cipher.Lookup

	Workers    int
	BatchSize  int
	BufferSize int

	// OnGenerated is called once the key space is ready, before dispatch starts.
	OnGenerated func(size uint64, elapsed time.Duration)
	// Progress is called after each finished batch with the number of keys it
	// held. It is called from many goroutines at once.
	Progress func(keys int)
}

func (o Options) withDefaults() Options {
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.BatchSize == 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.BufferSize == 0 {
		o.BufferSize = DefaultBufferSize
	}
	return o
}

// Validate checks Options after defaults have been applied.
func (o Options) Validate() error {
	switch {
	case o.KeyLength < 1:
		return fmt.Errorf("%w: key length must be positive, got %d", ErrInvalidOptions, o.KeyLength)
	case o.FirstWordLength < 1:
		return fmt.Errorf("%w: first word length must be positive, got %d", ErrInvalidOptions, o.FirstWordLength)
	case o.Words == nil:
		return fmt.Errorf("%w: no dictionary", ErrInvalidOptions)
	case o.Workers < 1:
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidOptions, o.Workers)
	case o.BatchSize < 1:
		return fmt.Errorf("%w: batch size must be positive, got %d", ErrInvalidOptions, o.BatchSize)
	case o.BufferSize < 1:
		return fmt.Errorf("%w: buffer size must be positive, got %d", ErrInvalidOptions, o.BufferSize)
	}
	return nil
}

// Result is the outcome of a completed run.
type Result struct {
	RunID         string        `json:"run_id" yaml:"run_id"`
	Ciphertext    string        `json:"ciphertext" yaml:"ciphertext"`
	KeyLength     int           `json:"key_length" yaml:"key_length"`
	KeySpace      uint64        `json:"key_space" yaml:"key_space"`
	Tested        uint64        `json:"tested" yaml:"tested"`
	Pairs         []Pair        `json:"pairs" yaml:"pairs"`
	KeyGenElapsed time.Duration `json:"keygen_elapsed" yaml:"keygen_elapsed"`
	Elapsed       time.Duration `json:"elapsed" yaml:"elapsed"`
}
