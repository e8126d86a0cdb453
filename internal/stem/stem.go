// Package stem reduces Portuguese word tokens to their stems, the last
// step before a token becomes an index or query term.
package stem

import "github.com/kljensen/snowball/portuguese"

// Word stems a single lowercase Portuguese token.
func Word(tok string) string {
	return portuguese.Stem(tok, true)
}
