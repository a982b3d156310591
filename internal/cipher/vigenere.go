package cipher

import (
	"fmt"
	"unicode"
)

// Vigenere ciphers text advancing every charset character by the charset
// position of the current key character. The key cursor only advances on
// characters that belong to the charset, so punctuation does not desync
// the key stream.
func Vigenere(text, key, charset string) (string, error) {
	return vigenereText(text, key, charset, false)
}

// DecipherVigenere reverses Vigenere for the same key and charset.
func DecipherVigenere(text, key, charset string) (string, error) {
	return vigenereText(text, key, charset, true)
}

func vigenereText(text, key, charset string, backwards bool) (string, error) {
	runes, index := charsetRunes(charset)
	n := len(runes)
	keyRunes := []rune(key)
	if len(keyRunes) == 0 {
		return "", fmt.Errorf("vigenere key must not be empty: %w", ErrInvalidKey)
	}
	offsets := make([]int, len(keyRunes))
	for i, r := range keyRunes {
		position, ok := index[r]
		if !ok {
			return "", fmt.Errorf("vigenere key character %q is not in the charset: %w", r, ErrInvalidKey)
		}
		offsets[i] = position
	}
	out := make([]rune, 0, len(text))
	ciphered := 0
	for _, ch := range text {
		position, ok := index[unicode.ToLower(ch)]
		if !ok {
			out = append(out, ch)
			continue
		}
		offset := offsets[ciphered%len(offsets)]
		if backwards {
			offset = -offset
		}
		substitute := runes[mod(position+offset, n)]
		if unicode.IsUpper(ch) {
			substitute = unicode.ToUpper(substitute)
		}
		out = append(out, substitute)
		ciphered++
	}
	return string(out), nil
}
