// Package cipher implements the Vigenère-style substitution used by the
// cracker: per-character modular shifts over the 26-letter Latin alphabet
// with a cyclically repeated key. Non-letters pass through unchanged.
package cipher

import "strings"

// AlphabetSize is the number of symbols in Alphabet.
const AlphabetSize = 26

// Alphabet is the ordered key alphabet, 'A' through 'Z'.
var Alphabet = func() []rune {
	letters := make([]rune, AlphabetSize)
	for i := range letters {
		letters[i] = rune('A' + i)
	}
	return letters
}()

// IsLetter reports whether r is an ASCII letter.
func IsLetter(r rune) bool {
	return ('A' <= r && r <= 'Z') || ('a' <= r && r <= 'z')
}

func toUpper(r rune) rune {
	if 'a' <= r && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

// shift maps a key character to its offset in [0, 26).
func shift(k rune) int {
	s := int(toUpper(k)-'A') % AlphabetSize
	if s < 0 {
		s += AlphabetSize
	}
	return s
}

// DecryptChar decrypts a single ciphertext character c under key character k.
// Letters come back upper-cased; anything else is returned as is.
func DecryptChar(c, k rune) rune {
	if !IsLetter(c) {
		return c
	}
	p := (int(toUpper(c)-'A') - shift(k) + AlphabetSize) % AlphabetSize
	return rune('A' + p)
}

// EncryptChar is the inverse of DecryptChar.
func EncryptChar(c, k rune) rune {
	if !IsLetter(c) {
		return c
	}
	p := (int(toUpper(c)-'A') + shift(k)) % AlphabetSize
	return rune('A' + p)
}

// Decrypt applies DecryptChar to every character of text, cycling through key.
// The key position advances on every character, letters or not.
func Decrypt(key, text string) string {
	return apply(key, text, DecryptChar)
}

// Encrypt applies EncryptChar to every character of text, cycling through key.
func Encrypt(key, text string) string {
	return apply(key, text, EncryptChar)
}

func apply(key, text string, op func(c, k rune) rune) string {
	k := []rune(key)
	if len(k) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	i := 0
	for _, c := range text {
		b.WriteRune(op(c, k[i%len(k)]))
		i++
	}
	return b.String()
}
