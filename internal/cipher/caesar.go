package cipher

// Caesar ciphers text by advancing every charset character key positions,
// wrapping around the charset end.
func Caesar(text string, key int, charset string) string {
	return offsetText(text, charset, func(position int) int {
		return position + key
	})
}

// DecipherCaesar reverses Caesar for the same key and charset.
func DecipherCaesar(text string, key int, charset string) string {
	return offsetText(text, charset, func(position int) int {
		return position - key
	})
}
