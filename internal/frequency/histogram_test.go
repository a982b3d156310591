package frequency

import (
	"reflect"
	"testing"

	"github.com/dante-signal31/cifra/internal/cipher"
)

func TestLetterHistogramFrequencies(t *testing.T) {
	h := NewLetterHistogram("Aaaa bb, c, da-a. efg\r\nggg", cipher.DefaultCharset, 0)

	if got := h.Count('a'); got != 6 {
		t.Fatalf("expected 6 a's, got %d", got)
	}
	if got := h.Frequency('a'); got != 0.375 {
		t.Fatalf("expected frequency 0.375, got %v", got)
	}
	if got := h.Frequency('g'); got != 0.25 {
		t.Fatalf("expected frequency 0.25, got %v", got)
	}
	if got := h.Frequency('z'); got != 0 {
		t.Fatalf("expected frequency 0, got %v", got)
	}

	total := 0.0
	for _, letter := range h.Letters() {
		total += h.Frequency(letter)
	}
	if total < 0.999 || total > 1.001 {
		t.Fatalf("expected frequencies to sum to 1.0, got %v", total)
	}
}

func TestLetterHistogramOrdering(t *testing.T) {
	h := NewLetterHistogram("Aaaa bb, c, da-a. efg\r\nggg", cipher.DefaultCharset, 0)

	letters := h.Letters()
	if len(letters) != 26 {
		t.Fatalf("expected every charset letter, got %d", len(letters))
	}
	if !reflect.DeepEqual(letters[:3], []rune{'a', 'g', 'b'}) {
		t.Fatalf("unexpected ordering head: %q", string(letters[:3]))
	}
	if !reflect.DeepEqual(h.Top(), []rune("agbcde")) {
		t.Fatalf("unexpected top letters: %q", string(h.Top()))
	}
	if !reflect.DeepEqual(h.Bottom(), []rune("uvwxyz")) {
		t.Fatalf("unexpected bottom letters: %q", string(h.Bottom()))
	}
}

func TestLetterHistogramWidth(t *testing.T) {
	h := NewLetterHistogram("aaab", cipher.DefaultCharset, 2)
	if len(h.Top()) != 2 || len(h.Bottom()) != 2 {
		t.Fatalf("expected width 2 extremes, got %d and %d", len(h.Top()), len(h.Bottom()))
	}
}

func TestLetterHistogramFromCountsIgnoresForeignRunes(t *testing.T) {
	h := NewLetterHistogramFromCounts(map[rune]int{'a': 3, 'ñ': 5}, cipher.DefaultCharset, 0)
	if got := h.Frequency('a'); got != 1.0 {
		t.Fatalf("expected frequency 1.0, got %v", got)
	}
}

func TestMatchScore(t *testing.T) {
	a := NewLetterHistogram("aaabbbcccdddeeefff", cipher.DefaultCharset, 0)
	if got := a.MatchScore(a); got != 12 {
		t.Fatalf("expected self score 12, got %d", got)
	}
	b := NewLetterHistogram("uuuvvvwwwxxxyyyzzz", cipher.DefaultCharset, 0)
	if got := a.MatchScore(b); got != 0 {
		t.Fatalf("expected score 0 for disjoint extremes, got %d", got)
	}
}
