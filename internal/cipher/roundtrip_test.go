package cipher

import "testing"

// Round-trip coverage across the offset and substitution families with
// a text mixing cases, punctuation and out-of-charset symbols.
func TestCipherRoundTrips(t *testing.T) {
	const text = "Attack at dawn! Bring 3 horses; keep QUIET... (ok?)"

	t.Run("caesar", func(t *testing.T) {
		for key := 1; key < len(DefaultCharset); key++ {
			if got := DecipherCaesar(Caesar(text, key, DefaultCharset), key, DefaultCharset); got != text {
				t.Fatalf("key %d gave %q", key, got)
			}
		}
	})

	t.Run("affine", func(t *testing.T) {
		n := len(DefaultCharset)
		tried := 0
		for key := 1; key < n*n; key++ {
			if ValidateAffineKey(key, n) != nil {
				continue
			}
			tried++
			ciphered, err := Affine(text, key, DefaultCharset)
			if err != nil {
				t.Fatalf("cipher with key %d: %v", key, err)
			}
			got, err := DecipherAffine(ciphered, key, DefaultCharset)
			if err != nil {
				t.Fatalf("decipher with key %d: %v", key, err)
			}
			if got != text {
				t.Fatalf("key %d gave %q", key, got)
			}
		}
		if tried == 0 {
			t.Fatalf("no valid affine keys tried")
		}
	})

	t.Run("substitution", func(t *testing.T) {
		ciphered, err := Substitution(text, substitutionTestKey, DefaultCharset)
		if err != nil {
			t.Fatalf("cipher: %v", err)
		}
		got, err := DecipherSubstitution(ciphered, substitutionTestKey, DefaultCharset)
		if err != nil {
			t.Fatalf("decipher: %v", err)
		}
		if got != text {
			t.Fatalf("round trip gave %q", got)
		}
	})

	t.Run("vigenere", func(t *testing.T) {
		for _, key := range []string{"a", "snake", "zz"} {
			ciphered, err := Vigenere(text, key, DefaultCharset)
			if err != nil {
				t.Fatalf("cipher with key %q: %v", key, err)
			}
			got, err := DecipherVigenere(ciphered, key, DefaultCharset)
			if err != nil {
				t.Fatalf("decipher with key %q: %v", key, err)
			}
			if got != text {
				t.Fatalf("key %q gave %q", key, got)
			}
		}
	})

	t.Run("multiplicative", func(t *testing.T) {
		n := len([]rune(DefaultMultiplicativeCharset))
		for key := 1; key < n; key++ {
			if GCD(key, n) != 1 {
				continue
			}
			got, err := DecipherMultiplicative(Multiplicative(text, key, DefaultMultiplicativeCharset), key, DefaultMultiplicativeCharset)
			if err != nil {
				t.Fatalf("decipher with key %d: %v", key, err)
			}
			if got != text {
				t.Fatalf("key %d gave %q", key, got)
			}
		}
	})
}
