package cipher

import "testing"

func TestCaesarCipher(t *testing.T) {
	ciphered := Caesar("This is my secret message.", 13, DefaultCharset)
	if ciphered != "Guvf vf zl frperg zrffntr." {
		t.Fatalf("unexpected ciphered text: %q", ciphered)
	}
}

func TestCaesarDecipher(t *testing.T) {
	deciphered := DecipherCaesar("Guvf vf zl frperg zrffntr.", 13, DefaultCharset)
	if deciphered != "This is my secret message." {
		t.Fatalf("unexpected deciphered text: %q", deciphered)
	}
}

func TestCaesarWrapsLargeKeys(t *testing.T) {
	if got := Caesar("abc", 26, DefaultCharset); got != "abc" {
		t.Fatalf("expected full-turn key to leave text unchanged, got %q", got)
	}
	if got := DecipherCaesar("abc", 27, DefaultCharset); got != "zab" {
		t.Fatalf("unexpected deciphered text: %q", got)
	}
}
