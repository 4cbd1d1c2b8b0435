package cipher

// Lookup is the read-only word membership test used during validation.
// Implementations must be safe for concurrent use.
type Lookup interface {
	Contains(word string) bool
}

// DecryptFirstWord decrypts text with key and accepts the result only if its
// first firstWordLength characters form a word known to words. On a hit the
// full decryption is returned with ok set to true.
func DecryptFirstWord(key, text string, firstWordLength int, words Lookup) (plaintext string, ok bool) {
	decrypted := Decrypt(key, text)
	if words.Contains(prefix(decrypted, firstWordLength)) {
		return decrypted, true
	}
	return "", false
}

// prefix returns the first n characters of s, or all of s when shorter.
func prefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
