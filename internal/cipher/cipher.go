// Package cipher implements the classical cipher primitives cifra works
// with: shift (Caesar), affine, multiplicative, monoalphabetic
// substitution, columnar transposition and Vigenere, plus the trivial
// reverse encoding.
//
// Offset-style ciphers substitute over a lowercase charset: input
// characters are matched case-insensitively, substituted, and the original
// case restored on output. Characters outside the charset pass through
// unchanged, so punctuation and spacing survive a round trip.
package cipher

import (
	"errors"
	"strings"
	"unicode"
)

// DefaultCharset is the substitution domain used when callers do not
// provide their own. Texts in other languages need a charset carrying
// their extra letters (for Spanish, "ñ").
const DefaultCharset = "abcdefghijklmnopqrstuvwxyz"

// ErrInvalidKey tags every key validation failure, so callers can detect
// the whole family with errors.Is and downgrade it to a zero score during
// attacks.
var ErrInvalidKey = errors.New("invalid key")

// charsetRunes returns the charset as a rune slice plus a first-occurrence
// position index.
func charsetRunes(charset string) ([]rune, map[rune]int) {
	runes := []rune(charset)
	index := make(map[rune]int, len(runes))
	for i, r := range runes {
		if _, ok := index[r]; !ok {
			index[r] = i
		}
	}
	return runes, index
}

// offsetText rewrites every charset character of text through transform,
// which maps a charset position to another (possibly out-of-range)
// position; the result is reduced modulo the charset length.
func offsetText(text, charset string, transform func(position int) int) string {
	runes, index := charsetRunes(charset)
	n := len(runes)
	var b strings.Builder
	b.Grow(len(text))
	for _, ch := range text {
		position, ok := index[unicode.ToLower(ch)]
		if !ok {
			b.WriteRune(ch)
			continue
		}
		out := runes[mod(transform(position), n)]
		if unicode.IsUpper(ch) {
			out = unicode.ToUpper(out)
		}
		b.WriteRune(out)
	}
	return b.String()
}

// substituteText maps every character of text found in from to the
// character at the same position of to, preserving case.
func substituteText(text, from, to string) string {
	toRunes := []rune(to)
	_, index := charsetRunes(from)
	var b strings.Builder
	b.Grow(len(text))
	for _, ch := range text {
		position, ok := index[unicode.ToLower(ch)]
		if !ok {
			b.WriteRune(ch)
			continue
		}
		out := toRunes[position]
		if unicode.IsUpper(ch) {
			out = unicode.ToUpper(out)
		}
		b.WriteRune(out)
	}
	return b.String()
}

// mod reduces a into [0, n), unlike the % operator which keeps the sign
// of its dividend.
func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}

// floorDiv divides rounding toward negative infinity, so key splitting
// behaves consistently for negative keys too.
func floorDiv(a, n int) int {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}
