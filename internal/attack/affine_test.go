package attack

import (
	"context"
	"testing"

	"github.com/dante-signal31/cifra/internal/cipher"
)

func TestBruteForceAffineRecoversKey(t *testing.T) {
	corpus := testCorpus(t, []string{"english"}, map[string][]string{
		"english": {"this", "is", "my", "secret", "message"},
	})
	ciphered, err := cipher.Affine("This is my secret message.", 79, cipher.DefaultCharset)
	if err != nil {
		t.Fatalf("cipher: %v", err)
	}

	result, err := BruteForceAffine(context.Background(), ciphered, corpus, cipher.DefaultCharset, nil)
	if err != nil {
		t.Fatalf("attack: %v", err)
	}
	if result.Key != 79 {
		t.Fatalf("expected key 79, got %d", result.Key)
	}
	if result.Identified.WinnerProbability != 1.0 {
		t.Fatalf("unexpected probability: %v", result.Identified.WinnerProbability)
	}
}

func TestBruteForceAffineParallelRecoversKey(t *testing.T) {
	corpus := testCorpus(t, []string{"english"}, map[string][]string{
		"english": {"this", "is", "my", "secret", "message"},
	})
	ciphered, err := cipher.Affine("This is my secret message.", 79, cipher.DefaultCharset)
	if err != nil {
		t.Fatalf("cipher: %v", err)
	}

	result, err := BruteForceAffineParallel(context.Background(), ciphered, corpus, cipher.DefaultCharset, 8, nil)
	if err != nil {
		t.Fatalf("attack: %v", err)
	}
	if result.Key != 79 {
		t.Fatalf("expected key 79, got %d", result.Key)
	}
}
