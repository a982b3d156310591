// Package keygen produces random keys for every cipher family.
package keygen

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/dante-signal31/cifra/internal/cipher"
	"github.com/dante-signal31/cifra/internal/dictionary"
)

// Generator produces random cipher keys.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Generator drawing from src, for reproducible
// runs.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Caesar returns a key uniform in [1, len(charset)).
func (g *Generator) Caesar(charset string) (int, error) {
	n := len([]rune(charset))
	if n < 2 {
		return 0, fmt.Errorf("charset with %d letters leaves no caesar keys", n)
	}
	return 1 + g.rnd.Intn(n-1), nil
}

// Affine draws packed keys until one validates. Getting a valid affine
// key by hand is cumbersome because of the coprimality rule, so this
// automates it.
func (g *Generator) Affine(charset string) (int, error) {
	n := len([]rune(charset))
	if n < 3 {
		return 0, fmt.Errorf("charset with %d letters leaves no affine keys", n)
	}
	for {
		multiplying := 2 + g.rnd.Intn(n-2)
		adding := g.rnd.Intn(n)
		key := multiplying*n + adding
		if err := cipher.ValidateAffineKey(key, n); err == nil {
			return key, nil
		}
	}
}

// Substitution returns a random permutation of the charset.
func (g *Generator) Substitution(charset string) (string, error) {
	if charset == "" {
		return "", fmt.Errorf("empty charset leaves no substitution keys")
	}
	runes := []rune(charset)
	g.rnd.Shuffle(len(runes), func(i, j int) {
		runes[i], runes[j] = runes[j], runes[i]
	})
	return string(runes), nil
}

// Transposition returns a key uniform in [1, textLength).
func (g *Generator) Transposition(textLength int) (int, error) {
	if textLength < 2 {
		return 0, fmt.Errorf("text with %d characters leaves no transposition keys", textLength)
	}
	return 1 + g.rnd.Intn(textLength-1), nil
}

// Vigenere concatenates random dictionary words of a language into a
// key. Words carrying letters outside the charset are skipped so the
// key always validates.
func (g *Generator) Vigenere(corpus *dictionary.Corpus, language, charset string, words int) (string, error) {
	if words < 1 {
		words = 1
	}
	members := make(map[rune]bool, len(charset))
	for _, r := range charset {
		members[r] = true
	}
	var usable []string
	for _, word := range corpus.AllWords(language) {
		fits := true
		for _, r := range word {
			if !members[r] {
				fits = false
				break
			}
		}
		if fits {
			usable = append(usable, word)
		}
	}
	if len(usable) == 0 {
		return "", fmt.Errorf("%q: no words usable as a vigenere key", language)
	}
	var key strings.Builder
	for i := 0; i < words; i++ {
		key.WriteString(usable[g.rnd.Intn(len(usable))])
	}
	return key.String(), nil
}
