// Package frequency implements letter statistics and the Kasiski
// examination the statistical Vigenere attack builds on.
package frequency

import (
	"sort"
	"unicode"
)

// DefaultMatchingWidth is how many extremal letters Top and Bottom keep
// when callers do not configure a width.
const DefaultMatchingWidth = 6

// LetterHistogram holds letter counts over a charset with a stable
// ordering: descending count, ties broken by ascending letter. Every
// charset letter is present, possibly with a zero count.
type LetterHistogram struct {
	counts  map[rune]int
	ordered []rune
	total   int
	width   int
}

// letterStream lowercases text and drops every rune outside the charset.
func letterStream(text, charset string) []rune {
	members := make(map[rune]bool, len(charset))
	for _, r := range charset {
		members[r] = true
	}
	stream := make([]rune, 0, len(text))
	for _, r := range text {
		r = unicode.ToLower(r)
		if members[r] {
			stream = append(stream, r)
		}
	}
	return stream
}

// NewLetterHistogram counts the charset letters of text. A width of zero
// or less falls back to DefaultMatchingWidth.
func NewLetterHistogram(text, charset string, width int) *LetterHistogram {
	counts := make(map[rune]int)
	for _, r := range letterStream(text, charset) {
		counts[r]++
	}
	return NewLetterHistogramFromCounts(counts, charset, width)
}

// NewLetterHistogramFromCounts builds a histogram from precomputed
// counts. Counts for runes outside the charset are ignored.
func NewLetterHistogramFromCounts(counts map[rune]int, charset string, width int) *LetterHistogram {
	h := &LetterHistogram{counts: make(map[rune]int)}
	for _, r := range charset {
		if _, ok := h.counts[r]; ok {
			continue
		}
		h.counts[r] = counts[r]
		h.ordered = append(h.ordered, r)
		h.total += counts[r]
	}
	sort.SliceStable(h.ordered, func(i, j int) bool {
		a, b := h.ordered[i], h.ordered[j]
		if h.counts[a] != h.counts[b] {
			return h.counts[a] > h.counts[b]
		}
		return a < b
	})
	if width <= 0 {
		width = DefaultMatchingWidth
	}
	if width > len(h.ordered) {
		width = len(h.ordered)
	}
	h.width = width
	return h
}

// Count returns how many times letter appeared.
func (h *LetterHistogram) Count(letter rune) int {
	return h.counts[letter]
}

// Frequency returns the relative frequency of letter, 0.0 on an empty
// histogram.
func (h *LetterHistogram) Frequency(letter rune) float64 {
	if h.total == 0 {
		return 0
	}
	return float64(h.counts[letter]) / float64(h.total)
}

// Letters returns every charset letter in histogram order.
func (h *LetterHistogram) Letters() []rune {
	return h.ordered
}

// Top returns the most frequent letters, as many as the matching width.
func (h *LetterHistogram) Top() []rune {
	return h.ordered[:h.width]
}

// Bottom returns the least frequent letters, as many as the matching
// width.
func (h *LetterHistogram) Bottom() []rune {
	return h.ordered[len(h.ordered)-h.width:]
}

// MatchScore counts how many letters both histograms share in their Top
// lists plus how many they share in their Bottom lists. Identical letter
// distributions over a 26-letter charset with the default width score 12.
func (h *LetterHistogram) MatchScore(other *LetterHistogram) int {
	score := 0
	score += intersectionSize(h.Top(), other.Top())
	score += intersectionSize(h.Bottom(), other.Bottom())
	return score
}

func intersectionSize(a, b []rune) int {
	members := make(map[rune]bool, len(a))
	for _, r := range a {
		members[r] = true
	}
	size := 0
	for _, r := range b {
		if members[r] {
			size++
		}
	}
	return size
}
