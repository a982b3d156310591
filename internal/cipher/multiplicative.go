package cipher

import "fmt"

// DefaultMultiplicativeCharset is the wider symbol set the multiplicative
// cipher traditionally runs over. Both letter cases are distinct symbols
// here, so the cipher matches them exactly instead of folding case.
const DefaultMultiplicativeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"abcdefghijklmnopqrstuvwxyz1234567890 !?."

// Multiplicative ciphers text by multiplying every charset position by
// key, modulo the charset length. Characters outside the charset pass
// through unchanged.
func Multiplicative(text string, key int, charset string) string {
	runes, index := charsetRunes(charset)
	n := len(runes)
	out := make([]rune, 0, len(text))
	for _, ch := range text {
		position, ok := index[ch]
		if !ok {
			out = append(out, ch)
			continue
		}
		out = append(out, runes[mod(position*key, n)])
	}
	return string(out)
}

// DecipherMultiplicative reverses Multiplicative by multiplying with the
// modular inverse of key. Keys sharing a factor with the charset length
// have no inverse and are rejected.
func DecipherMultiplicative(text string, key int, charset string) (string, error) {
	runes, index := charsetRunes(charset)
	n := len(runes)
	inverse, ok := ModInverse(key, n)
	if !ok {
		return "", fmt.Errorf("multiplicative key %d and charset length %d are not relatively prime: %w",
			key, n, ErrInvalidKey)
	}
	out := make([]rune, 0, len(text))
	for _, ch := range text {
		position, ok := index[ch]
		if !ok {
			out = append(out, ch)
			continue
		}
		out = append(out, runes[mod(position*inverse, n)])
	}
	return string(out), nil
}
