package cipher

// ReverseText returns text with its characters in reverse order. The
// encoding is its own inverse, so it doubles as the decoder.
func ReverseText(text string) string {
	runes := []rune(text)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
