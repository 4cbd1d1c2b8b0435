// Package dictionary loads the word list used to validate candidate
// decryptions. A Set is built once and then only read, so it can be shared
// by any number of goroutines without locking.
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"vigcrack/internal/logging"

	"go.uber.org/zap"
)

// DefaultPath is the word list used when none is given.
const DefaultPath = "dict.txt"

// maxLineSize bounds a single dictionary line.
const maxLineSize = 1 << 20

// Set is an immutable set of upper-cased words.
type Set struct {
	words map[string]struct{}
}

// New builds a Set from words, upper-casing each and skipping empty ones.
func New(words ...string) *Set {
	s := &Set{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		s.add(w)
	}
	return s
}

func (s *Set) add(word string) {
	if word == "" {
		return
	}
	s.words[strings.ToUpper(word)] = struct{}{}
}

// Contains reports whether word is in the set. The lookup is exact after
// upper-casing word.
func (s *Set) Contains(word string) bool {
	if _, ok := s.words[word]; ok {
		return true
	}
	upper := strings.ToUpper(word)
	if upper == word {
		return false
	}
	_, ok := s.words[upper]
	return ok
}

// Len returns the number of distinct words.
func (s *Set) Len() int { return len(s.words) }

// Load reads a newline-delimited word list from path.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer f.Close()

	set, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary %s: %w", path, err)
	}

	logging.Get(logging.CategoryDictionary).Info("dictionary loaded",
		zap.String("path", path),
		zap.Int("words", set.Len()))
	return set, nil
}

// Read builds a Set from r, one word per line. Empty lines are skipped and a
// trailing carriage return is dropped.
func Read(r io.Reader) (*Set, error) {
	set := New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		set.add(strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return set, nil
}
