package frequency

import (
	"sort"

	"github.com/dante-signal31/cifra/internal/cipher"
)

// FindRepeatedSequences locates every window of the given length that
// appears more than once in the charset-letter stream of text. For each
// sequence it returns the separations between its occurrences: the
// adjacent gaps first, then the sums of every run of two or more
// consecutive gaps, which together cover all pairwise separations.
func FindRepeatedSequences(text, charset string, length int) map[string][]int {
	stream := letterStream(text, charset)
	if length < 1 || len(stream) < length {
		return map[string][]int{}
	}
	positions := make(map[string][]int)
	for i := 0; i+length <= len(stream); i++ {
		sequence := string(stream[i : i+length])
		positions[sequence] = append(positions[sequence], i)
	}
	separations := make(map[string][]int)
	for sequence, found := range positions {
		if len(found) < 2 {
			continue
		}
		gaps := make([]int, 0, len(found)-1)
		for i := 1; i < len(found); i++ {
			gaps = append(gaps, found[i]-found[i-1])
		}
		all := append([]int{}, gaps...)
		for i := 0; i < len(gaps); i++ {
			running := gaps[i]
			for j := i + 1; j < len(gaps); j++ {
				running += gaps[j]
				all = append(all, running)
			}
		}
		separations[sequence] = all
	}
	return separations
}

// LikelyKeyLengths ranks candidate key lengths from separation distances:
// every divisor between 2 and maxLength (the separation itself included)
// votes once per separation, and lengths come out by descending vote
// count, ties by ascending length.
func LikelyKeyLengths(separations []int, maxLength int) []int {
	votes := make(map[int]int)
	for _, separation := range separations {
		for divisor := 2; divisor <= maxLength; divisor++ {
			if separation > 0 && separation%divisor == 0 {
				votes[divisor]++
			}
		}
	}
	lengths := make([]int, 0, len(votes))
	for length := range votes {
		lengths = append(lengths, length)
	}
	sort.Slice(lengths, func(i, j int) bool {
		if votes[lengths[i]] != votes[lengths[j]] {
			return votes[lengths[i]] > votes[lengths[j]]
		}
		return lengths[i] < lengths[j]
	})
	return lengths
}

// Substrings splits the charset-letter stream of text into step
// interleaved subsequences, one per key position.
func Substrings(text, charset string, step int) []string {
	stream := letterStream(text, charset)
	if step < 1 {
		return nil
	}
	parts := make([]string, step)
	for offset := 0; offset < step; offset++ {
		sub := make([]rune, 0, (len(stream)+step-1)/step)
		for i := offset; i < len(stream); i += step {
			sub = append(sub, stream[i])
		}
		parts[offset] = string(sub)
	}
	return parts
}

// LikelySubkeys tries every charset letter as the Vigenere subkey of one
// substring, scores the resulting deciphering against a reference
// histogram, keeps the amount best candidates (score descending, ties by
// ascending letter) and returns them in ascending order.
func LikelySubkeys(substring string, reference *LetterHistogram, charset string, width, amount int) []rune {
	type candidate struct {
		letter rune
		score  int
	}
	seen := make(map[rune]bool, len(charset))
	var candidates []candidate
	for _, letter := range charset {
		if seen[letter] {
			continue
		}
		seen[letter] = true
		deciphered, err := cipher.DecipherVigenere(substring, string(letter), charset)
		if err != nil {
			continue
		}
		h := NewLetterHistogram(deciphered, charset, width)
		candidates = append(candidates, candidate{letter: letter, score: reference.MatchScore(h)})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].letter < candidates[j].letter
	})
	if amount > len(candidates) {
		amount = len(candidates)
	}
	subkeys := make([]rune, 0, amount)
	for _, c := range candidates[:amount] {
		subkeys = append(subkeys, c.letter)
	}
	sort.Slice(subkeys, func(i, j int) bool { return subkeys[i] < subkeys[j] })
	return subkeys
}
