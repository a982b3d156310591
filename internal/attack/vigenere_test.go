package attack

import (
	"context"
	"testing"

	"github.com/dante-signal31/cifra/internal/cipher"
)

func TestBruteForceVigenereRecoversKey(t *testing.T) {
	corpus := testCorpus(t, []string{"english"}, map[string][]string{
		"english": {"common", "sense", "is", "not", "so", "pizza"},
	})
	ciphered, err := cipher.Vigenere("Common sense is not so common.", "pizza", cipher.DefaultCharset)
	if err != nil {
		t.Fatalf("cipher: %v", err)
	}

	result, err := BruteForceVigenere(context.Background(), ciphered, corpus, cipher.DefaultCharset, nil)
	if err != nil {
		t.Fatalf("attack: %v", err)
	}
	if result.Key != "pizza" {
		t.Fatalf("expected key %q, got %q", "pizza", result.Key)
	}
	if result.Identified.Winner != "english" || result.Identified.WinnerProbability != 1.0 {
		t.Fatalf("unexpected identification: %+v", result.Identified)
	}
}

func TestBruteForceVigenereParallelRecoversKey(t *testing.T) {
	corpus := testCorpus(t, []string{"english"}, map[string][]string{
		"english": {"common", "sense", "is", "not", "so", "pizza"},
	})
	ciphered, err := cipher.Vigenere("Common sense is not so common.", "pizza", cipher.DefaultCharset)
	if err != nil {
		t.Fatalf("cipher: %v", err)
	}

	result, err := BruteForceVigenereParallel(context.Background(), ciphered, corpus, cipher.DefaultCharset, 4, nil)
	if err != nil {
		t.Fatalf("attack: %v", err)
	}
	if result.Key != "pizza" {
		t.Fatalf("expected key %q, got %q", "pizza", result.Key)
	}
	deciphered, err := cipher.DecipherVigenere(ciphered, result.Key, cipher.DefaultCharset)
	if err != nil {
		t.Fatalf("decipher: %v", err)
	}
	if deciphered != "Common sense is not so common." {
		t.Fatalf("unexpected deciphered text: %q", deciphered)
	}
}

// TestStatisticalVigenereRecoversKey works a small charset where the
// whole statistical pipeline is easy to follow by hand. With charset
// "abcd" and the text "abba abba abba abba" under key "ba", the
// repeated trigram separations are all multiples of two, every subkey
// candidate ties on histogram score, and the Cartesian expansion over
// the two best letters per position reaches "ba" as its third
// candidate, where the search stops.
func TestStatisticalVigenereRecoversKey(t *testing.T) {
	const charset = "abcd"
	corpus := testCorpus(t, []string{"toy"}, map[string][]string{
		"toy": {"abba"},
	})
	ciphered, err := cipher.Vigenere("abba abba abba abba", "ba", charset)
	if err != nil {
		t.Fatalf("cipher: %v", err)
	}
	if ciphered != "bbca bbca bbca bbca" {
		t.Fatalf("unexpected ciphered text: %q", ciphered)
	}

	assessed := 0
	progress := func(done int) { assessed = done }
	result, err := StatisticalVigenere(context.Background(), ciphered, corpus, charset, 3, 2, progress)
	if err != nil {
		t.Fatalf("attack: %v", err)
	}
	if result.Key != "ba" {
		t.Fatalf("expected key %q, got %q", "ba", result.Key)
	}
	if result.Identified.Winner != "toy" || result.Identified.WinnerProbability != 1.0 {
		t.Fatalf("unexpected identification: %+v", result.Identified)
	}
	if assessed != 3 {
		t.Fatalf("expected early exit after 3 keys, got %d", assessed)
	}
}

func TestStatisticalVigenereEmptyKeySpace(t *testing.T) {
	corpus := testCorpus(t, nil, nil)
	_, err := StatisticalVigenere(context.Background(), "abc", corpus, cipher.DefaultCharset, 0, 0, nil)
	if err != ErrEmptyKeySpace {
		t.Fatalf("expected ErrEmptyKeySpace, got %v", err)
	}
}
