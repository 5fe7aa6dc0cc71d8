// Package text implements the word normalization shared by vocabulary
// fitting and sequence encoding. Both stages must tokenize through the
// same function, otherwise lookups silently degrade to the OOV sentinel.
package text

import (
	"strings"
	"unicode"
)

// Tokens is a slice of normalized word tokens.
type Tokens []string

// Tokenize lowercases s and splits it on every run of non-alphanumeric
// runes. Punctuation is removed entirely.
// Examples:
// "It's GREAT!!" -> {"it", "s", "great"}
func Tokenize(s string) Tokens {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(fields) == 0 {
		return nil
	}
	return Tokens(fields)
}

// TokenizeKeepPunct lowercases s and splits it into alphanumeric words and
// single-rune punctuation tokens. Whitespace is dropped.
// Examples:
// "Good, not bad." -> {"good", ",", "not", "bad", "."}
func TokenizeKeepPunct(s string) Tokens {
	var tokens Tokens
	var word []rune
	flush := func() {
		if len(word) > 0 {
			tokens = append(tokens, string(word))
			word = word[:0]
		}
	}
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			word = append(word, r)
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			tokens = append(tokens, string(r))
		}
	}
	flush()
	return tokens
}
