// Package keyspace enumerates every fixed-length string over an alphabet.
//
// Keys are produced lazily in mixed-radix order: the i-th key is built by
// repeatedly taking i mod A to select a symbol and dividing i by A, filling
// positions left to right. An Enumerator walks indices 0 .. A^L-1 once and
// cannot be rewound.
package keyspace

import (
	"errors"
	"fmt"
	"math/bits"
)

var (
	// ErrEmptyAlphabet is returned when the alphabet has no symbols.
	ErrEmptyAlphabet = errors.New("keyspace: alphabet is empty")
	// ErrInvalidLength is returned for key lengths below one.
	ErrInvalidLength = errors.New("keyspace: key length must be positive")
	// ErrKeySpaceTooLarge is returned when A^L does not fit in a uint64.
	ErrKeySpaceTooLarge = errors.New("keyspace: key space overflows uint64")
)

// Enumerator is a single-pass iterator over the key space.
// It is not safe for concurrent use.
type Enumerator struct {
	alphabet []rune
	length   int
	size     uint64
	next     uint64
}

// New returns an Enumerator over all strings of the given length drawn from alphabet.
func New(alphabet []rune, length int) (*Enumerator, error) {
	if len(alphabet) == 0 {
		return nil, ErrEmptyAlphabet
	}
	if length < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLength, length)
	}
	size, err := Size(len(alphabet), length)
	if err != nil {
		return nil, err
	}

	symbols := make([]rune, len(alphabet))
	copy(symbols, alphabet)

	return &Enumerator{
		alphabet: symbols,
		length:   length,
		size:     size,
	}, nil
}

// Size returns alphabetSize^length, or ErrKeySpaceTooLarge on overflow.
func Size(alphabetSize, length int) (uint64, error) {
	if alphabetSize < 1 {
		return 0, ErrEmptyAlphabet
	}
	if length < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidLength, length)
	}
	total := uint64(1)
	for i := 0; i < length; i++ {
		hi, lo := bits.Mul64(total, uint64(alphabetSize))
		if hi != 0 {
			return 0, fmt.Errorf("%w: %d^%d", ErrKeySpaceTooLarge, alphabetSize, length)
		}
		total = lo
	}
	return total, nil
}

// Size is the total number of keys, A^L.
func (e *Enumerator) Size() uint64 { return e.size }

// Length is the length of every key produced.
func (e *Enumerator) Length() int { return e.length }

// Remaining is the number of keys not yet produced.
func (e *Enumerator) Remaining() uint64 { return e.size - e.next }

// Next returns the next key. ok is false once the space is exhausted,
// and stays false on every later call.
func (e *Enumerator) Next() (key string, ok bool) {
	if e.next >= e.size {
		return "", false
	}
	key = e.KeyAt(e.next)
	e.next++
	return key, true
}

// Batch returns up to n further keys. An empty slice means exhaustion.
func (e *Enumerator) Batch(n int) []string {
	if n < 1 {
		return nil
	}
	if rem := e.Remaining(); uint64(n) > rem {
		n = int(rem)
	}
	keys := make([]string, 0, n)
	for len(keys) < n {
		key, ok := e.Next()
		if !ok {
			break
		}
		keys = append(keys, key)
	}
	return keys
}

// KeyAt computes the i-th key of the enumeration without advancing the iterator.
// i must be below Size.
func (e *Enumerator) KeyAt(i uint64) string {
	radix := uint64(len(e.alphabet))
	key := make([]rune, e.length)
	for pos := range key {
		key[pos] = e.alphabet[i%radix]
		i /= radix
	}
	return string(key)
}
