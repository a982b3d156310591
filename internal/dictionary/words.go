package dictionary

import (
	"os"
	"strconv"
	"strings"
	"unicode"
)

// NormalizeWords lowercases text and splits it into letter runs, keeping
// duplicates and order. Digits, punctuation and line breaks only act as
// separators.
func NormalizeWords(text string) []string {
	var words []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	for _, ch := range text {
		if unicode.IsLetter(ch) {
			current.WriteRune(unicode.ToLower(ch))
			continue
		}
		flush()
	}
	flush()
	return words
}

// ExtractWords returns the distinct normalized words of text in first
// appearance order.
func ExtractWords(text string) []string {
	var words []string
	seen := make(map[string]bool)
	for _, word := range NormalizeWords(text) {
		if seen[word] {
			continue
		}
		seen[word] = true
		words = append(words, word)
	}
	return words
}

// ExtractWordsFromFile reads a text file and extracts its distinct words.
func ExtractWordsFromFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ExtractWords(string(content)), nil
}

// WordPattern fingerprints the letter-repetition structure of a word:
// every character is replaced by the index of its first occurrence and
// the indexes joined by dots, so "HGHHU" becomes "0.1.0.0.2". Words
// sharing a pattern are substitution-cipher images of each other.
func WordPattern(word string) string {
	indexes := make(map[rune]int)
	var parts []string
	for _, ch := range word {
		index, ok := indexes[ch]
		if !ok {
			index = len(indexes)
			indexes[ch] = index
		}
		parts = append(parts, strconv.Itoa(index))
	}
	return strings.Join(parts, ".")
}
