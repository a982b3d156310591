package attack

import (
	"iter"

	"github.com/dante-signal31/cifra/internal/dictionary"
)

// IntegerKeys yields every integer of [low, high) in ascending order.
func IntegerKeys(low, high int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for key := low; key < high; key++ {
			if !yield(key) {
				return
			}
		}
	}
}

// CorpusWordKeys yields every corpus word once: languages in registration
// order, words in dictionary insertion order, duplicates across languages
// skipped on first sight.
func CorpusWordKeys(corpus *dictionary.Corpus) iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]bool)
		for _, language := range corpus.Languages() {
			for _, word := range corpus.AllWords(language) {
				if seen[word] {
					continue
				}
				seen[word] = true
				if !yield(word) {
					return
				}
			}
		}
	}
}

// StringKeys yields a fixed candidate list in order.
func StringKeys(keys []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, key := range keys {
			if !yield(key) {
				return
			}
		}
	}
}
