package cipher

import "fmt"

// validateTranspositionKey rejects keys that cannot index any column.
func validateTranspositionKey(key int) error {
	if key < 1 {
		return fmt.Errorf("transposition key %d must be at least 1: %w", key, ErrInvalidKey)
	}
	return nil
}

// Transposition ciphers text writing it into key columns row by row and
// reading the result column by column.
func Transposition(text string, key int) (string, error) {
	if err := validateTranspositionKey(key); err != nil {
		return "", err
	}
	runes := []rune(text)
	out := make([]rune, 0, len(runes))
	for column := 0; column < key; column++ {
		for i := column; i < len(runes); i += key {
			out = append(out, runes[i])
		}
	}
	return string(out), nil
}

// DecipherTransposition reverses Transposition by rebuilding the matrix
// the ciphering pass read from. The matrix has key rows and
// ceil(len/key) columns, with the bottom-right cells left unused when the
// text does not fill it completely.
func DecipherTransposition(text string, key int) (string, error) {
	if err := validateTranspositionKey(key); err != nil {
		return "", err
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return "", nil
	}
	columns := (len(runes) + key - 1) / key
	rows := key
	unused := rows*columns - len(runes)
	// Unused cells sit in the last column of the bottom rows.
	skipped := func(row, column int) bool {
		return column == columns-1 && row >= rows-unused
	}
	grid := make([]rune, rows*columns)
	position := 0
	for _, ch := range runes {
		for skipped(position/columns, position%columns) {
			position++
		}
		grid[position] = ch
		position++
	}
	out := make([]rune, 0, len(runes))
	for column := 0; column < columns; column++ {
		for row := 0; row < rows; row++ {
			if skipped(row, column) {
				continue
			}
			out = append(out, grid[row*columns+column])
		}
	}
	return string(out), nil
}
