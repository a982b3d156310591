package attack

import (
	"context"
	"testing"

	"github.com/dante-signal31/cifra/internal/cipher"
)

func TestBruteForceTranspositionRecoversKey(t *testing.T) {
	corpus := testCorpus(t, []string{"english"}, map[string][]string{
		"english": {"common", "sense", "is", "not", "so"},
	})
	ciphered, err := cipher.Transposition("Common sense is not so common.", 8)
	if err != nil {
		t.Fatalf("cipher: %v", err)
	}

	result, err := BruteForceTransposition(context.Background(), ciphered, corpus, nil)
	if err != nil {
		t.Fatalf("attack: %v", err)
	}
	if result.Key != 8 {
		t.Fatalf("expected key 8, got %d", result.Key)
	}
	if result.Identified.Winner != "english" || result.Identified.WinnerProbability != 1.0 {
		t.Fatalf("unexpected identification: %+v", result.Identified)
	}
}

func TestBruteForceTranspositionParallelRecoversKey(t *testing.T) {
	corpus := testCorpus(t, []string{"english"}, map[string][]string{
		"english": {"common", "sense", "is", "not", "so"},
	})
	ciphered, err := cipher.Transposition("Common sense is not so common.", 8)
	if err != nil {
		t.Fatalf("cipher: %v", err)
	}

	result, err := BruteForceTranspositionParallel(context.Background(), ciphered, corpus, 4, nil)
	if err != nil {
		t.Fatalf("attack: %v", err)
	}
	if result.Key != 8 {
		t.Fatalf("expected key 8, got %d", result.Key)
	}
	deciphered, err := cipher.DecipherTransposition(ciphered, result.Key)
	if err != nil {
		t.Fatalf("decipher: %v", err)
	}
	if deciphered != "Common sense is not so common." {
		t.Fatalf("unexpected deciphered text: %q", deciphered)
	}
}
