// Package dictionary implements the language side of cifra: word
// extraction and pattern fingerprints, per-language dictionaries backed
// by the sqlite store, the language identification oracle and an
// immutable in-memory corpus snapshot for attacks.
package dictionary

import (
	"context"
	"fmt"

	"github.com/dante-signal31/cifra/internal/store"
)

// Dictionary is a per-language handle over the shared store. It borrows
// the store; closing remains the caller's job.
type Dictionary struct {
	language string
	store    *store.Store
}

// OpenDictionary binds a handle to one language dictionary. When the
// language is not registered yet it errors with store.ErrLanguageNotFound
// unless create is set, in which case it registers it empty.
func OpenDictionary(ctx context.Context, st *store.Store, language string, create bool) (*Dictionary, error) {
	exists, err := st.HasLanguage(ctx, language)
	if err != nil {
		return nil, err
	}
	if !exists {
		if !create {
			return nil, fmt.Errorf("%q: %w", language, store.ErrLanguageNotFound)
		}
		if err := st.CreateLanguage(ctx, language); err != nil {
			return nil, err
		}
	}
	return &Dictionary{language: language, store: st}, nil
}

// Language returns the language this handle is bound to.
func (d *Dictionary) Language() string {
	return d.language
}

// AddWords normalizes and inserts words, computing their patterns.
func (d *Dictionary) AddWords(ctx context.Context, words []string) error {
	entries := make([]store.Word, 0, len(words))
	for _, word := range words {
		entries = append(entries, store.Word{Text: word, Pattern: WordPattern(word)})
	}
	return d.store.AddWords(ctx, d.language, entries)
}

// RemoveWord deletes one word from the dictionary.
func (d *Dictionary) RemoveWord(ctx context.Context, word string) error {
	return d.store.RemoveWord(ctx, d.language, word)
}

// WordExists reports whether the dictionary contains word.
func (d *Dictionary) WordExists(ctx context.Context, word string) (bool, error) {
	return d.store.WordExists(ctx, d.language, word)
}

// WordsWithPattern returns the dictionary words sharing a pattern.
func (d *Dictionary) WordsWithPattern(ctx context.Context, pattern string) ([]string, error) {
	return d.store.WordsWithPattern(ctx, d.language, pattern)
}

// AllWords returns every dictionary word in insertion order.
func (d *Dictionary) AllWords(ctx context.Context) ([]string, error) {
	return d.store.AllWords(ctx, d.language)
}

// WordCount returns how many words the dictionary holds.
func (d *Dictionary) WordCount(ctx context.Context) (int, error) {
	return d.store.WordCount(ctx, d.language)
}

// Populate extracts the words of a text file into the dictionary.
func (d *Dictionary) Populate(ctx context.Context, path string) (int, error) {
	words, err := ExtractWordsFromFile(path)
	if err != nil {
		return 0, err
	}
	if err := d.AddWords(ctx, words); err != nil {
		return 0, err
	}
	return len(words), nil
}

// WordsPresence returns the ratio of words present in the dictionary,
// 0.0 for an empty slice.
func (d *Dictionary) WordsPresence(ctx context.Context, words []string) (float64, error) {
	if len(words) == 0 {
		return 0, nil
	}
	found := 0
	for _, word := range words {
		exists, err := d.WordExists(ctx, word)
		if err != nil {
			return 0, err
		}
		if exists {
			found++
		}
	}
	return float64(found) / float64(len(words)), nil
}
