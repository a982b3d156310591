package attack

import (
	"context"
	"errors"
	"iter"
	"strings"

	"github.com/dante-signal31/cifra/internal/cipher"
	"github.com/dante-signal31/cifra/internal/dictionary"
	"github.com/dante-signal31/cifra/internal/frequency"
	"github.com/dante-signal31/cifra/internal/logging"
)

const (
	// kasiskiSequenceLength is the repeated-window size of the Kasiski
	// examination.
	kasiskiSequenceLength = 3
	// DefaultMaxKeyLength bounds the key lengths the statistical attack
	// considers.
	DefaultMaxKeyLength = 12
	// DefaultSubkeysPerPosition is how many candidate letters every key
	// position contributes to the Cartesian key product.
	DefaultSubkeysPerPosition = 3
)

func assessVigenere(ciphered string, corpus *dictionary.Corpus, charset string) AssessFunc[string] {
	return func(_ context.Context, key string) (Result[string], error) {
		deciphered, err := cipher.DecipherVigenere(ciphered, key, charset)
		if err != nil {
			if errors.Is(err, cipher.ErrInvalidKey) {
				// Corpus words may carry letters outside the charset.
				return Result[string]{Key: key}, nil
			}
			return Result[string]{}, err
		}
		return Result[string]{Key: key, Identified: corpus.IdentifyText(deciphered)}, nil
	}
}

// BruteForceVigenere tries every corpus word as the key.
func BruteForceVigenere(ctx context.Context, ciphered string, corpus *dictionary.Corpus, charset string, progress func(done int)) (Result[string], error) {
	return BruteForce(ctx, CorpusWordKeys(corpus), assessVigenere(ciphered, corpus, charset), progress)
}

// BruteForceVigenereParallel is BruteForceVigenere on a worker pool.
func BruteForceVigenereParallel(ctx context.Context, ciphered string, corpus *dictionary.Corpus, charset string, workers int, progress func(done int)) (Result[string], error) {
	return BruteForceParallel(ctx, CorpusWordKeys(corpus), assessVigenere(ciphered, corpus, charset), workers, progress)
}

// StatisticalVigenere attacks without assuming the key is a dictionary
// word: the Kasiski examination ranks likely key lengths from repeated
// trigram separations, letter statistics pick the likeliest subkeys per
// key position against each language's reference histogram, and the
// resulting Cartesian key product is brute-forced lazily. Non-positive
// parameters fall back to the package defaults.
func StatisticalVigenere(ctx context.Context, ciphered string, corpus *dictionary.Corpus, charset string, maxKeyLength, subkeysPerPosition int, progress func(done int)) (Result[string], error) {
	if maxKeyLength <= 0 {
		maxKeyLength = DefaultMaxKeyLength
	}
	if subkeysPerPosition <= 0 {
		subkeysPerPosition = DefaultSubkeysPerPosition
	}
	separations := frequency.FindRepeatedSequences(ciphered, charset, kasiskiSequenceLength)
	var all []int
	for _, gaps := range separations {
		all = append(all, gaps...)
	}
	lengths := frequency.LikelyKeyLengths(all, maxKeyLength)
	logging.Debug().
		Int("repeated_sequences", len(separations)).
		Ints("likely_key_lengths", lengths).
		Msg("kasiski examination")
	keys := vigenereKeyCandidates(ciphered, corpus, charset, lengths, subkeysPerPosition)
	return BruteForce(ctx, keys, assessVigenere(ciphered, corpus, charset), progress)
}

// vigenereKeyCandidates lazily yields candidate keys for every language
// and likely length, deduplicated in generation order. Laziness matters:
// the early exit of the sequential harness stops the Cartesian expansion
// as soon as a key is good enough.
func vigenereKeyCandidates(ciphered string, corpus *dictionary.Corpus, charset string, lengths []int, subkeysPerPosition int) iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]bool)
		for _, language := range corpus.Languages() {
			reference := frequency.NewLetterHistogram(
				strings.Join(corpus.AllWords(language), " "), charset, frequency.DefaultMatchingWidth)
			for _, length := range lengths {
				positions := likelyPositions(ciphered, reference, charset, length, subkeysPerPosition)
				if positions == nil {
					continue
				}
				counters := make([]int, len(positions))
				for {
					keyRunes := make([]rune, len(positions))
					for i, c := range counters {
						keyRunes[i] = positions[i][c]
					}
					key := string(keyRunes)
					if !seen[key] {
						seen[key] = true
						if !yield(key) {
							return
						}
					}
					i := len(counters) - 1
					for ; i >= 0; i-- {
						counters[i]++
						if counters[i] < len(positions[i]) {
							break
						}
						counters[i] = 0
					}
					if i < 0 {
						break
					}
				}
			}
		}
	}
}

// likelyPositions returns the candidate subkeys of every key position,
// or nil when some position has none.
func likelyPositions(ciphered string, reference *frequency.LetterHistogram, charset string, length, subkeysPerPosition int) [][]rune {
	substrings := frequency.Substrings(ciphered, charset, length)
	positions := make([][]rune, 0, length)
	for _, substring := range substrings {
		subkeys := frequency.LikelySubkeys(substring, reference, charset,
			frequency.DefaultMatchingWidth, subkeysPerPosition)
		if len(subkeys) == 0 {
			return nil
		}
		positions = append(positions, subkeys)
	}
	return positions
}
