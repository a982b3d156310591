package cipher

import (
	"errors"
	"testing"
)

func TestTranspositionCipher(t *testing.T) {
	ciphered, err := Transposition("Common sense is not so common.", 8)
	if err != nil {
		t.Fatalf("cipher: %v", err)
	}
	if ciphered != "Cenoonommstmme oo snnio. s s c" {
		t.Fatalf("unexpected ciphered text: %q", ciphered)
	}
}

func TestTranspositionDecipher(t *testing.T) {
	deciphered, err := DecipherTransposition("Cenoonommstmme oo snnio. s s c", 8)
	if err != nil {
		t.Fatalf("decipher: %v", err)
	}
	if deciphered != "Common sense is not so common." {
		t.Fatalf("unexpected deciphered text: %q", deciphered)
	}
}

func TestTranspositionRoundTrips(t *testing.T) {
	texts := []string{
		"",
		"a",
		"short",
		"a text whose length is not a multiple of the key",
	}
	for _, text := range texts {
		for key := 1; key <= 12; key++ {
			ciphered, err := Transposition(text, key)
			if err != nil {
				t.Fatalf("cipher %q key %d: %v", text, key, err)
			}
			deciphered, err := DecipherTransposition(ciphered, key)
			if err != nil {
				t.Fatalf("decipher %q key %d: %v", text, key, err)
			}
			if deciphered != text {
				t.Fatalf("round trip of %q with key %d gave %q", text, key, deciphered)
			}
		}
	}
}

func TestTranspositionRejectsNonPositiveKeys(t *testing.T) {
	if _, err := Transposition("abc", 0); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
	if _, err := DecipherTransposition("abc", -2); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}
